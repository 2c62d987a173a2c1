/*
Package resp provides helpers for writing HTML pages, plain-text errors and redirects.
*/
package resp

import (
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"papochat/internal/pkg/errs"
)

// RespondHTML writes a complete HTML document with the given status.
func RespondHTML(w http.ResponseWriter, r *http.Request, httpStatus int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(httpStatus)

	if _, err := io.WriteString(w, body); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Failed to write HTML response")
	}
}

// RespondPage sends a rendered page with HTTP 200 OK.
func RespondPage(w http.ResponseWriter, r *http.Request, body string) {
	RespondHTML(w, r, http.StatusOK, body)
}

// RespondError sends the user-facing message of customErr as plain text.
// The underlying cause, if any, is logged on the request logger.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	event := zerolog.Ctx(r.Context()).Warn()
	if customErr.Status >= http.StatusInternalServerError {
		event = zerolog.Ctx(r.Context()).Error()
	}
	event.Err(customErr.Unwrap()).
		Int("code", customErr.Code).
		Msg(customErr.Message)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(customErr.Status)
	io.WriteString(w, customErr.Message)
}

// Redirect sends a 302 Found to location.
func Redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusFound)
}
