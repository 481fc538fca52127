package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"emprecords/internal/requestctx"
)

const maxRequestIDLen = 128

// RequestID propagates the caller's X-Request-ID, or assigns a fresh one
// when it is missing or unusable, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(requestctx.Header)
		if !usableRequestID(reqID) {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestctx.Header, reqID)
		next.ServeHTTP(w, r.WithContext(requestctx.WithRequestID(r.Context(), reqID)))
	})
}

func GetRequestID(ctx context.Context) string {
	return requestctx.GetRequestID(ctx)
}

func usableRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
