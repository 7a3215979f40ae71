package handler

import (
	"go-user-api/config"
	"go-user-api/model"
	"go-user-api/service"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testCodec() *service.TokenCodec {
	return service.NewTokenCodec(config.JWTConfig{
		AccessSecret:         "access-secret",
		RefreshSecret:        "refresh-secret",
		EmailVerifySecret:    "email-verify-secret",
		ForgotPasswordSecret: "forgot-password-secret",
		AccessLifetime:       15 * time.Minute,
		RefreshLifetime:      720 * time.Hour,
		EmailVerifyLifetime:  24 * time.Hour,
		ForgotPwLifetime:     24 * time.Hour,
		Leeway:               30 * time.Second,
	})
}

func TestAuthMiddleware(t *testing.T) {
	codec := testCodec()
	middleware := AuthMiddleware(codec)

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value(UserIDKey).(string)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing header", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/", nil)
		rr := httptest.NewRecorder()

		middleware(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Token abc")
		rr := httptest.NewRecorder()

		middleware(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("valid access token", func(t *testing.T) {
		token, err := codec.Sign("user-1", model.KindAccess)
		assert.NoError(t, err)

		req, _ := http.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		middleware(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "user-1", gotUserID)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		token, err := codec.Sign("user-1", model.KindRefresh)
		assert.NoError(t, err)

		req, _ := http.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		middleware(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
