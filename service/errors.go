package service

import "errors"

// Sentinel errors for the expected failure modes of the auth and verification
// flows. Handlers translate these into client errors; anything else is a
// dependency failure and surfaces as a server error.
var (
	ErrInvalidCredentials         = errors.New("Invalid email or password")
	ErrEmailAlreadyExist          = errors.New("Email already exist")
	ErrEmailNotFound              = errors.New("Email not found")
	ErrEmailAlreadyVerified       = errors.New("Email already verified")
	ErrInvalidRefreshToken        = errors.New("Invalid refresh token")
	ErrInvalidEmailVerifyToken    = errors.New("Invalid email verify token")
	ErrInvalidForgotPasswordToken = errors.New("Invalid forgot password token")
)
