package req

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"papochat/internal/pkg/errs"
)

func newFormRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/cadastrar", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestParseForm(t *testing.T) {
	form := url.Values{"username": {"ana"}, "nickname": {"aninha"}}
	r := newFormRequest(form.Encode())

	customErr := ParseForm(httptest.NewRecorder(), r)
	require.Nil(t, customErr)

	assert.Equal(t, "ana", PostValue(r, "username"))
	assert.Equal(t, "aninha", PostValue(r, "nickname"))
	assert.Equal(t, "", PostValue(r, "data"))
}

func TestParseFormTooLarge(t *testing.T) {
	r := newFormRequest("message=" + strings.Repeat("a", int(MaxFormBytes)+1))

	customErr := ParseForm(httptest.NewRecorder(), r)
	require.NotNil(t, customErr)

	assert.Equal(t, errs.ErrRequestEntityTooLarge, customErr.Code)
}

func TestParseFormMalformed(t *testing.T) {
	r := newFormRequest("username=%zz")

	customErr := ParseForm(httptest.NewRecorder(), r)
	require.NotNil(t, customErr)

	assert.Equal(t, errs.ErrFormParseFailed, customErr.Code)
}
