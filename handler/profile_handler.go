package handler

import (
	"database/sql"
	"errors"
	"go-user-api/common"
	"go-user-api/model"
	"go-user-api/service"
	"net/http"
)

// ProfileHandler exposes profile CRUD and follower endpoints.
type ProfileHandler struct {
	service *service.ProfileService
}

func NewProfileHandler(service *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// GetProfile godoc
// @Summary      Get a user profile
// @Tags         users
// @Produce      json
// @Param        user_id  path  string  true  "user id"
// @Success      200  {object}  model.User
// @Failure      404  {object}  common.AppError
// @Security     BearerAuth
// @Router       /users/profile/{user_id} [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID := r.PathValue("user_id")

	user, err := h.service.GetProfile(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewNotFoundError("User not found", nil)
		}
		return common.NewDependencyError("Could not retrieve profile", err)
	}

	writeJSON(w, http.StatusOK, user)
	return nil
}

// UpdateProfile godoc
// @Summary      Update the authenticated user's profile
// @Tags         users
// @Accept       json
// @Param        request  body  model.UpdateProfileRequest  true  "profile fields"
// @Success      204
// @Security     BearerAuth
// @Router       /users/profile/{user_id} [patch]
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.UpdateProfileRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return common.NewAuthError("Invalid user ID in token", nil)
	}

	if err := h.service.UpdateProfile(userID, &req); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewNotFoundError("User not found", nil)
		}
		return common.NewDependencyError("Could not update profile", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// Follow godoc
// @Summary      Follow another user
// @Tags         users
// @Accept       json
// @Param        request  body  model.FollowRequest  true  "user to follow"
// @Success      204
// @Security     BearerAuth
// @Router       /users/follower [put]
func (h *ProfileHandler) Follow(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.FollowRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return common.NewAuthError("Invalid user ID in token", nil)
	}

	if err := h.service.Follow(userID, req.FollowerUserID); err != nil {
		return common.NewDependencyError("Could not add follower", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
