package model

// RegisterRequest defines the payload for creating a new user.
// It includes validation tags to ensure data integrity at the entry point.
type RegisterRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=255"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	DateOfBirth     string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest is shared by the logout and refresh endpoints.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// VerifyEmailRequest carries the single-use email verification token.
type VerifyEmailRequest struct {
	EmailVerifyToken string `json:"email_verify_token" validate:"required"`
}

// ForgotPasswordRequest starts the password reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyForgotPasswordRequest is the pre-flight check before showing a reset form.
type VerifyForgotPasswordRequest struct {
	ForgotPasswordToken string `json:"forgot_password_token" validate:"required"`
}

// ResetPasswordRequest consumes a forgot-password token and sets a new password.
type ResetPasswordRequest struct {
	ForgotPasswordToken string `json:"forgot_password_token" validate:"required"`
	Password            string `json:"password" validate:"required,min=8"`
	ConfirmPassword     string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// ChangePasswordRequest rotates a password for a caller who knows the old one.
type ChangePasswordRequest struct {
	Email           string `json:"email" validate:"required,email"`
	OldPassword     string `json:"old_password" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// UpdateProfileRequest carries the mutable profile attributes. All fields are
// optional; only non-nil fields are written.
type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	DateOfBirth *string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Bio         *string `json:"bio,omitempty"`
	Location    *string `json:"location,omitempty"`
	Website     *string `json:"website,omitempty"`
	UserName    *string `json:"user_name,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
	CoverPhoto  *string `json:"cover_photo,omitempty"`
}

// FollowRequest adds a follower edge for the authenticated user.
type FollowRequest struct {
	FollowerUserID string `json:"follower_user_id" validate:"required,uuid4"`
}
