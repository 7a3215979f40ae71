package router

import (
	"go-user-api/handler"
	"go-user-api/service"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "go-user-api/docs" // generated swagger docs
)

func NewRouter(authHandler *handler.AuthHandler, verificationHandler *handler.VerificationHandler, profileHandler *handler.ProfileHandler, codec *service.TokenCodec) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Public endpoints.
	mux.Handle("POST /users/register", handler.ErrorHandlingMiddleware(authHandler.Register))
	mux.Handle("POST /users/login", handler.ErrorHandlingMiddleware(authHandler.Login))
	mux.Handle("POST /users/refresh_token", handler.ErrorHandlingMiddleware(authHandler.RefreshToken))
	mux.Handle("POST /users/verify_email", handler.ErrorHandlingMiddleware(verificationHandler.VerifyEmail))
	mux.Handle("POST /users/forgot_password", handler.ErrorHandlingMiddleware(verificationHandler.ForgotPassword))
	mux.Handle("POST /users/verify_forgot_password", handler.ErrorHandlingMiddleware(verificationHandler.VerifyForgotPassword))
	mux.Handle("POST /users/reset_password", handler.ErrorHandlingMiddleware(verificationHandler.ResetPassword))
	mux.Handle("POST /users/change_password", handler.ErrorHandlingMiddleware(verificationHandler.ChangePassword))

	// Endpoints behind the access-token check.
	auth := handler.AuthMiddleware(codec)
	mux.Handle("POST /users/logout", auth(handler.ErrorHandlingMiddleware(authHandler.Logout)))
	mux.Handle("POST /users/resend_verify_email", auth(handler.ErrorHandlingMiddleware(verificationHandler.ResendVerifyEmail)))
	mux.Handle("GET /users/profile/{user_id}", auth(handler.ErrorHandlingMiddleware(profileHandler.GetProfile)))
	mux.Handle("PATCH /users/profile/{user_id}", auth(handler.ErrorHandlingMiddleware(profileHandler.UpdateProfile)))
	mux.Handle("PUT /users/follower", auth(handler.ErrorHandlingMiddleware(profileHandler.Follow)))

	return mux
}
