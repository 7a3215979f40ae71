package handler

import (
	"context"
	"go-user-api/common"
	"go-user-api/model"
	"go-user-api/service"
	"net/http"
	"strings"
)

type contextKey string

const UserIDKey contextKey = "userID"

// AuthMiddleware verifies the bearer access token with the codec and puts the
// subject user id into the request context.
func AuthMiddleware(codec *service.TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				err := common.NewAuthError("Authorization header is required", nil)
				err.Send(w)
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				err := common.NewAuthError("Invalid authorization header format", nil)
				err.Send(w)
				return
			}

			claims, err := codec.Verify(headerParts[1], model.KindAccess)
			if err != nil {
				appErr := common.NewAuthError("Invalid access token", err)
				appErr.Send(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
