package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"go-user-api/logger"
	"go-user-api/model"
	"go-user-api/repository"
)

// VerificationService orchestrates the email-verification and password-reset
// flows: issuing and consuming the single-use tokens stored on user records.
type VerificationService struct {
	userRepo repository.IUserRepository
	codec    *TokenCodec
	hasher   *Hasher
	sessions *AuthService
	cache    ICacheClient
}

func NewVerificationService(userRepo repository.IUserRepository, codec *TokenCodec, hasher *Hasher, sessions *AuthService, cache ICacheClient) *VerificationService {
	return &VerificationService{
		userRepo: userRepo,
		codec:    codec,
		hasher:   hasher,
		sessions: sessions,
		cache:    cache,
	}
}

// VerifyEmail consumes a pending email-verify token: the user is looked up by
// the exact token value, flipped to Verified, and the token field cleared so
// the same token can never match again. A fresh session is issued so the
// client can continue without re-login.
func (s *VerificationService) VerifyEmail(token string) (*TokenPair, error) {
	claims, err := s.codec.Verify(token, model.KindEmailVerify)
	if err != nil {
		return nil, ErrInvalidEmailVerifyToken
	}

	user, err := s.userRepo.GetUserByEmailVerifyToken(token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidEmailVerifyToken
		}
		return nil, fmt.Errorf("failed to look up verify token: %w", err)
	}
	if user.ID != claims.UserID {
		return nil, ErrInvalidEmailVerifyToken
	}
	// The token field is cleared on consumption, so a verified user can never
	// match by token again. The status check guards against a stale copy
	// replayed before the clear commits.
	if user.Verify == model.StatusVerified {
		return nil, ErrEmailAlreadyVerified
	}

	if err := s.userRepo.SetVerified(user.ID); err != nil {
		return nil, fmt.Errorf("failed to mark user verified: %w", err)
	}
	s.invalidateProfile(user.ID)

	logger.Log.WithField("user_id", user.ID).Info("Email verified")
	return s.sessions.IssueTokens(user.ID)
}

// ResendVerifyEmail mints a new verify token and overwrites the pending one,
// invalidating whatever was issued before.
func (s *VerificationService) ResendVerifyEmail(userID string) error {
	token, err := s.codec.Sign(userID, model.KindEmailVerify)
	if err != nil {
		return err
	}
	if err := s.userRepo.SetEmailVerifyToken(userID, token); err != nil {
		return fmt.Errorf("failed to store verify token: %w", err)
	}
	return nil
}

// ForgotPassword starts the reset flow for a known email.
func (s *VerificationService) ForgotPassword(email string) error {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEmailNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	token, err := s.codec.Sign(user.ID, model.KindForgotPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.SetForgotPasswordToken(user.ID, token); err != nil {
		return fmt.Errorf("failed to store forgot password token: %w", err)
	}

	logger.Log.WithField("user_id", user.ID).Info("Forgot password token issued")
	return nil
}

// VerifyForgotPasswordToken is the pre-flight check before showing a reset
// form: signature plus pending-token existence. It does not consume the token.
func (s *VerificationService) VerifyForgotPasswordToken(token string) error {
	if _, err := s.codec.Verify(token, model.KindForgotPassword); err != nil {
		return ErrInvalidForgotPasswordToken
	}
	if _, err := s.userRepo.GetUserByForgotPasswordToken(token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvalidForgotPasswordToken
		}
		return fmt.Errorf("failed to look up forgot password token: %w", err)
	}
	return nil
}

// ResetPassword consumes a forgot-password token: the digest is overwritten,
// the pending token cleared, and a fresh session issued.
func (s *VerificationService) ResetPassword(token, newPassword string) (*TokenPair, error) {
	claims, err := s.codec.Verify(token, model.KindForgotPassword)
	if err != nil {
		return nil, ErrInvalidForgotPasswordToken
	}

	user, err := s.userRepo.GetUserByForgotPasswordToken(token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidForgotPasswordToken
		}
		return nil, fmt.Errorf("failed to look up forgot password token: %w", err)
	}
	if user.ID != claims.UserID {
		return nil, ErrInvalidForgotPasswordToken
	}

	if err := s.userRepo.ResetPassword(user.ID, s.hasher.HashPassword(newPassword)); err != nil {
		return nil, fmt.Errorf("failed to reset password: %w", err)
	}

	logger.Log.WithField("user_id", user.ID).Info("Password reset")
	return s.sessions.IssueTokens(user.ID)
}

// ChangePassword rotates the digest for a caller who can produce the old
// password. No tokens are minted; the caller already holds a session.
func (s *VerificationService) ChangePassword(email, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEmailNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if s.hasher.HashPassword(oldPassword) != user.Password {
		return ErrInvalidCredentials
	}

	if err := s.userRepo.UpdatePassword(user.ID, s.hasher.HashPassword(newPassword)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	logger.Log.WithField("user_id", user.ID).Info("Password changed")
	return nil
}

func (s *VerificationService) invalidateProfile(userID string) {
	if s.cache == nil {
		return
	}
	s.cache.Del(context.Background(), fmt.Sprintf("profile:%s", userID))
}
