package middleware

import (
	"net/http"
	"strings"

	"emprecords/internal/transport/http/api"
)

// BodyLimit caps write bodies at maxBytes. Bodies declared larger than the
// cap and writes that are not JSON are rejected before the handlers run.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !carriesBody(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			requestID := GetRequestID(r.Context())
			if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(strings.ToLower(ct), "application/json") {
				api.Fail(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "request body must be application/json", requestID)
				return
			}
			if maxBytes > 0 {
				if r.ContentLength > maxBytes {
					api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", requestID)
					return
				}
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func carriesBody(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}
