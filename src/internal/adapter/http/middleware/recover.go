package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/api-sage/core-banking/src/internal/logger"
)

func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("http handler panic", fmt.Errorf("%v", rec), logger.Fields{
					"requestId": RequestIDFrom(r.Context()),
					"method":    r.Method,
					"path":      r.URL.Path,
					"stack":     string(debug.Stack()),
				})
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
