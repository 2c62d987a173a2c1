/*
Package req provides helpers for reading URL-encoded form submissions.
*/
package req

import (
	"errors"
	"net/http"

	"papochat/internal/pkg/errs"
)

// MaxFormBytes caps the size of a form body.
const MaxFormBytes int64 = 64 << 10 // 64 KB

// ParseForm limits the request body to MaxFormBytes and parses the form.
func ParseForm(w http.ResponseWriter, r *http.Request) *errs.CustomError {
	r.Body = http.MaxBytesReader(w, r.Body, MaxFormBytes)

	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errs.NewError(errs.ErrRequestEntityTooLarge, err)
		}

		return errs.NewError(errs.ErrFormParseFailed, err)
	}

	return nil
}

// PostValue returns the named field of the request body, or "" when absent.
func PostValue(r *http.Request, key string) string {
	return r.PostForm.Get(key)
}
