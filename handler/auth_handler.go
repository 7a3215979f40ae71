package handler

import (
	"encoding/json"
	"errors"
	"go-user-api/common"
	"go-user-api/logger"
	"go-user-api/model"
	"go-user-api/service"
	"net/http"
)

// AuthHandler exposes the session lifecycle endpoints.
type AuthHandler struct {
	authService *service.AuthService
	codec       *service.TokenCodec
}

func NewAuthHandler(authService *service.AuthService, codec *service.TokenCodec) *AuthHandler {
	return &AuthHandler{authService: authService, codec: codec}
}

// Register godoc
// @Summary      Register a new user
// @Description  creates the user and returns an access/refresh token pair
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body  model.RegisterRequest  true  "registration payload"
// @Success      201  {object}  service.TokenPair
// @Failure      400  {object}  common.AppError
// @Router       /users/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	pair, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExist) {
			return common.NewAppError(http.StatusBadRequest, service.ErrEmailAlreadyExist.Error(), nil)
		}
		return common.NewDependencyError("Could not register user", err)
	}

	logger.Log.WithField("email", req.Email).Info("Register request succeeded")
	writeJSON(w, http.StatusCreated, pair)
	return nil
}

// Login godoc
// @Summary      Login a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body  model.LoginRequest  true  "credentials"
// @Success      200  {object}  service.TokenPair
// @Failure      404  {object}  common.AppError
// @Router       /users/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	pair, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Not-found semantics; one message for both unknown email and wrong password.
			return common.NewNotFoundError(service.ErrInvalidCredentials.Error(), nil)
		}
		return common.NewDependencyError("Could not log in", err)
	}

	writeJSON(w, http.StatusOK, pair)
	return nil
}

// Logout godoc
// @Summary      Logout a user
// @Tags         users
// @Accept       json
// @Param        request  body  model.RefreshTokenRequest  true  "refresh token"
// @Success      204
// @Security     BearerAuth
// @Router       /users/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RefreshTokenRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if _, err := h.codec.Verify(req.RefreshToken, model.KindRefresh); err != nil {
		return common.NewAuthError(service.ErrInvalidRefreshToken.Error(), err)
	}

	if err := h.authService.Logout(req.RefreshToken); err != nil {
		return common.NewDependencyError("Could not log out", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// RefreshToken godoc
// @Summary      Rotate a refresh token
// @Description  exchanges a valid refresh token for a new access/refresh pair
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body  model.RefreshTokenRequest  true  "refresh token"
// @Success      200  {object}  service.TokenPair
// @Failure      401  {object}  common.AppError
// @Router       /users/refresh_token [post]
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RefreshTokenRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	claims, err := h.codec.Verify(req.RefreshToken, model.KindRefresh)
	if err != nil {
		return common.NewAuthError(service.ErrInvalidRefreshToken.Error(), err)
	}

	pair, err := h.authService.RefreshRotate(claims, req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			return common.NewAuthError(service.ErrInvalidRefreshToken.Error(), nil)
		}
		return common.NewDependencyError("Could not rotate refresh token", err)
	}

	writeJSON(w, http.StatusOK, pair)
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
