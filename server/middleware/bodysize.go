package middleware

import (
	"net/http"

	apperrors "github.com/kbukum/pronounce/errors"
	"github.com/kbukum/pronounce/util"
)

// DefaultMaxBodySize applies when the configured size does not parse.
const DefaultMaxBodySize = 10 * 1024 * 1024

// BodySizeLimit caps the request body at maxSize ("10MB", "512KB").
// Readers past the limit get *http.MaxBytesError; handlers map it to 413.
func BodySizeLimit(maxSize string) Middleware {
	size := util.ParseSize(maxSize, DefaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > size {
				writeError(w, apperrors.TooLarge(size))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, size)
			next.ServeHTTP(w, r)
		})
	}
}
