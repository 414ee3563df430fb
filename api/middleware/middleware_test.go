package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercantile-labs/wishlists-backend/pkg/config"
)

func TestRequestIDGeneratesAndEchoes(t *testing.T) {
	var seen string
	handler := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get("X-Request-Id"))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-Id", "req-123")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, "req-123", seen)
}

func TestRecovererConvertsPanics(t *testing.T) {
	handler := Recoverer(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func signToken(t *testing.T, secret, issuer string, customerID int64) string {
	t.Helper()
	claims := customerClaims{
		CustomerID: customerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestCustomerDefaultsWithoutCredentials(t *testing.T) {
	var seen int64
	handler := Customer(config.JWTConfig{}, config.CustomerConfig{DefaultID: 1001}, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = CustomerIDFromContext(r.Context())
		}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, int64(1001), seen)
}

func TestCustomerUsesTokenClaim(t *testing.T) {
	jwtCfg := config.JWTConfig{Secret: "sekrit", Issuer: "wishlists"}
	var seen int64
	handler := Customer(jwtCfg, config.CustomerConfig{DefaultID: 1001}, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = CustomerIDFromContext(r.Context())
		}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, "sekrit", "wishlists", 2002))
	handler.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, int64(2002), seen)
}

func TestCustomerRejectsBadToken(t *testing.T) {
	jwtCfg := config.JWTConfig{Secret: "sekrit", Issuer: "wishlists"}
	handler := Customer(jwtCfg, config.CustomerConfig{DefaultID: 1001}, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, "wrong-secret", "wishlists", 2002))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCustomerRejectsTokenWithoutClaim(t *testing.T) {
	jwtCfg := config.JWTConfig{Secret: "sekrit", Issuer: "wishlists"}
	handler := Customer(jwtCfg, config.CustomerConfig{DefaultID: 1001}, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, "sekrit", "wishlists", 0))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
