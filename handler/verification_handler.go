package handler

import (
	"errors"
	"go-user-api/common"
	"go-user-api/model"
	"go-user-api/service"
	"net/http"
)

// VerificationHandler exposes the email-verification and password-reset endpoints.
type VerificationHandler struct {
	service *service.VerificationService
}

func NewVerificationHandler(service *service.VerificationService) *VerificationHandler {
	return &VerificationHandler{service: service}
}

// VerifyEmail godoc
// @Summary      Verify email address
// @Description  consumes the email verify token and returns a fresh session
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body  model.VerifyEmailRequest  true  "email verify token"
// @Success      200  {object}  service.TokenPair
// @Failure      401  {object}  common.AppError
// @Failure      409  {object}  common.AppError
// @Router       /users/verify_email [post]
func (h *VerificationHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.VerifyEmailRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	pair, err := h.service.VerifyEmail(req.EmailVerifyToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmailVerifyToken):
			return common.NewAuthError(service.ErrInvalidEmailVerifyToken.Error(), nil)
		case errors.Is(err, service.ErrEmailAlreadyVerified):
			return common.NewConflictError(service.ErrEmailAlreadyVerified.Error(), nil)
		}
		return common.NewDependencyError("Could not verify email", err)
	}

	writeJSON(w, http.StatusOK, pair)
	return nil
}

// ResendVerifyEmail godoc
// @Summary      Resend the email verify token
// @Tags         users
// @Success      204
// @Security     BearerAuth
// @Router       /users/resend_verify_email [post]
func (h *VerificationHandler) ResendVerifyEmail(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return common.NewAuthError("Invalid user ID in token", nil)
	}

	if err := h.service.ResendVerifyEmail(userID); err != nil {
		return common.NewDependencyError("Could not resend verify email", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// ForgotPassword godoc
// @Summary      Start the password reset flow
// @Tags         users
// @Accept       json
// @Param        request  body  model.ForgotPasswordRequest  true  "account email"
// @Success      204
// @Failure      404  {object}  common.AppError
// @Router       /users/forgot_password [post]
func (h *VerificationHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.ForgotPasswordRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if err := h.service.ForgotPassword(req.Email); err != nil {
		if errors.Is(err, service.ErrEmailNotFound) {
			return common.NewNotFoundError(service.ErrEmailNotFound.Error(), nil)
		}
		return common.NewDependencyError("Could not start password reset", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// VerifyForgotPassword godoc
// @Summary      Pre-flight check of a forgot password token
// @Description  validates the token without consuming it
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body  model.VerifyForgotPasswordRequest  true  "forgot password token"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  common.AppError
// @Router       /users/verify_forgot_password [post]
func (h *VerificationHandler) VerifyForgotPassword(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.VerifyForgotPasswordRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if err := h.service.VerifyForgotPasswordToken(req.ForgotPasswordToken); err != nil {
		if errors.Is(err, service.ErrInvalidForgotPasswordToken) {
			return common.NewAuthError(service.ErrInvalidForgotPasswordToken.Error(), nil)
		}
		return common.NewDependencyError("Could not verify forgot password token", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Verified successfully"})
	return nil
}

// ResetPassword godoc
// @Summary      Reset password with a forgot password token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body  model.ResetPasswordRequest  true  "reset payload"
// @Success      200  {object}  service.TokenPair
// @Failure      401  {object}  common.AppError
// @Router       /users/reset_password [post]
func (h *VerificationHandler) ResetPassword(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.ResetPasswordRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	pair, err := h.service.ResetPassword(req.ForgotPasswordToken, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidForgotPasswordToken) {
			return common.NewAuthError(service.ErrInvalidForgotPasswordToken.Error(), nil)
		}
		return common.NewDependencyError("Could not reset password", err)
	}

	writeJSON(w, http.StatusOK, pair)
	return nil
}

// ChangePassword godoc
// @Summary      Change password
// @Tags         users
// @Accept       json
// @Param        request  body  model.ChangePasswordRequest  true  "change payload"
// @Success      204
// @Failure      404  {object}  common.AppError
// @Router       /users/change_password [post]
func (h *VerificationHandler) ChangePassword(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.ChangePasswordRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if err := h.service.ChangePassword(req.Email, req.OldPassword, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailNotFound):
			return common.NewNotFoundError(service.ErrEmailNotFound.Error(), nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			return common.NewNotFoundError(service.ErrInvalidCredentials.Error(), nil)
		}
		return common.NewDependencyError("Could not change password", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
