package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/pkg/ctxutil"
)

// RequestIDHeader carries the correlation id in both directions. Offline
// clients reuse one id for a whole sync attempt so retries can be matched in
// the logs.
const RequestIDHeader = "X-Request-Id"

const maxRequestIDLen = 64

// RequestID stores the caller's request id in the context, or a fresh uuid
// when the header is missing or not a safe log value.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctxutil.WithRequestID(r.Context(), id)))
	})
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if c < 0x21 || c > 0x7e {
			return false
		}
	}
	return true
}
