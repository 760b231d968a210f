package middleware

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func basicRequest(id, key string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(id+":"+key)))
	return req
}

func TestBasicAuthAllowsValidCredentials(t *testing.T) {
	rr := httptest.NewRecorder()
	BasicAuth("CoreBankingApp", "CoreBankingKey001", "")(okHandler).ServeHTTP(rr, basicRequest("CoreBankingApp", "CoreBankingKey001"))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestBasicAuthRejectsInvalidCredentials(t *testing.T) {
	mw := BasicAuth("CoreBankingApp", "CoreBankingKey001", "")

	rr := httptest.NewRecorder()
	mw(okHandler).ServeHTTP(rr, basicRequest("CoreBankingApp", "WrongKey"))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))

	rr = httptest.NewRecorder()
	mw(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestBasicAuthChecksBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	mw := BasicAuth("CoreBankingApp", "", string(hash))

	rr := httptest.NewRecorder()
	mw(okHandler).ServeHTTP(rr, basicRequest("CoreBankingApp", "s3cret"))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	mw(okHandler).ServeHTTP(rr, basicRequest("CoreBankingApp", "S3cret"))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestBasicAuthWithoutConfiguration(t *testing.T) {
	rr := httptest.NewRecorder()
	BasicAuth("", "", "")(okHandler).ServeHTTP(rr, basicRequest("a", "b"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestRequestIDAssignsAndPropagates(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", seen)
}

func TestRecoverTurnsPanicIntoServerError(t *testing.T) {
	handler := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
