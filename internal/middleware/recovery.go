package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"tracker-backend/pkg/utils"
)

// PanicRecovery converts a panicking handler into a localized 500. The
// panic value and stack stay in the server log only.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[Recovery] panic on %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				utils.Error(w, http.StatusInternalServerError, "terjadi kesalahan server")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
