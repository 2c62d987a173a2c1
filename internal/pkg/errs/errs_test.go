package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewErrorKnownCode(t *testing.T) {
	err := NewError(ErrLogoutFailed)

	assert.Equal(t, ErrLogoutFailed, err.Code)
	assert.Equal(t, "Erro ao sair", err.Message)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Nil(t, errors.Unwrap(err))
}

func TestNewErrorUnknownCodeFallsBack(t *testing.T) {
	err := NewError(424242)

	assert.Equal(t, ErrUnknown, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestNewErrorKeepsCause(t *testing.T) {
	cause := errors.New("redis: connection refused")

	err := NewError(ErrSessionStore, cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NotContains(t, err.Message, "connection refused")
}

func TestNewErrorIgnoresDetailsWithoutPlaceholder(t *testing.T) {
	err := NewError(ErrFormParseFailed, "username")

	assert.Equal(t, "Não foi possível ler o formulário.", err.Message)
}
