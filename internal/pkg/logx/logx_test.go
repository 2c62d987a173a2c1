package logx

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnonymizeIP(t *testing.T) {
	tests := map[string]string{
		"203.0.113.57:4312":         "203.0.113.0",
		"203.0.113.57":              "203.0.113.0",
		"127.0.0.1:9000":            "127.0.0.1",
		"[2001:db8:1:2:3:4:5:6]:80": "2001:db8:1:2::",
		"not-an-ip":                 "unknown_ip",
	}

	for in, want := range tests {
		assert.Equal(t, want, anonymizeIP(in), in)
	}
}

func TestHelpersWriteJSONFields(t *testing.T) {
	var buf bytes.Buffer
	initLogger(&buf, false)

	Info("registered user", "username", "ana")
	Error(errors.New("boom"), "store failed", "op", "destroy")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "info", first["level"])
	assert.Equal(t, "ana", first["username"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "error", second["level"])
	assert.Equal(t, "boom", second["error"])
	assert.Equal(t, "destroy", second["op"])
}

func TestOddFieldsAreDropped(t *testing.T) {
	var buf bytes.Buffer
	initLogger(&buf, false)

	Info("odd", "lonely")

	assert.Contains(t, buf.String(), "odd number of fields")
	assert.NotContains(t, buf.String(), `"lonely":`)
}

func TestRequestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	initLogger(&buf, false)

	handler := RequestLogger("/public/")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/entrar", http.StatusFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, float64(http.StatusFound), entry["status"])
	assert.Equal(t, "/entrar", entry["location"])
	assert.Equal(t, "http", entry["component"])
}
