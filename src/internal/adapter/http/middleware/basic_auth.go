package middleware

import (
	"crypto/subtle"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/api-sage/core-banking/src/internal/logger"
)

// BasicAuth admits requests carrying the channel credentials. When
// channelKeyHash is set the key is checked against that bcrypt hash and
// channelKey is ignored.
func BasicAuth(channelID, channelKey, channelKeyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if channelID == "" || (channelKey == "" && channelKeyHash == "") {
				logger.Error("basic auth middleware missing server configuration", nil, logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				http.Error(w, "server auth configuration is missing", http.StatusInternalServerError)
				return
			}

			id, key, ok := r.BasicAuth()
			if !ok || !secureEqual(id, channelID) || !keyMatches(key, channelKey, channelKeyHash) {
				logger.Info("basic auth middleware unauthorized request", logger.Fields{
					"requestId":   RequestIDFrom(r.Context()),
					"method":      r.Method,
					"path":        r.URL.Path,
					"credentials": "invalid_or_missing",
				})
				w.Header().Set("WWW-Authenticate", `Basic realm="core-banking"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func keyMatches(key, channelKey, channelKeyHash string) bool {
	if channelKeyHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(channelKeyHash), []byte(key)) == nil
	}
	return secureEqual(key, channelKey)
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
