package service

import (
	"database/sql"
	"errors"
	"fmt"
	"go-user-api/logger"
	"go-user-api/model"
	"go-user-api/repository"
	"time"

	"github.com/google/uuid"
)

// TokenPair is the success payload of every token-minting operation. The JSON
// field names are the wire contract with existing clients.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService orchestrates the session lifecycle: login, registration, logout
// and refresh-token rotation.
type AuthService struct {
	userRepo  repository.IUserRepository
	tokenRepo repository.ITokenRepository
	codec     *TokenCodec
	hasher    *Hasher
}

func NewAuthService(userRepo repository.IUserRepository, tokenRepo repository.ITokenRepository, codec *TokenCodec, hasher *Hasher) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		codec:     codec,
		hasher:    hasher,
	}
}

// IssueTokens mints an access/refresh pair for the user and records the
// refresh token in the store. Every issuance is paired with an insert.
func (s *AuthService) IssueTokens(userID string) (*TokenPair, error) {
	accessToken, err := s.codec.Sign(userID, model.KindAccess)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.codec.Sign(userID, model.KindRefresh)
	if err != nil {
		return nil, err
	}
	if err := s.tokenRepo.Insert(refreshToken, userID); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Login authenticates by (email, digest) pair. A miss returns
// ErrInvalidCredentials whether the email is unknown or the password wrong;
// the caller must not be able to enumerate accounts.
func (s *AuthService) Login(email, password string) (*TokenPair, error) {
	digest := s.hasher.HashPassword(password)

	user, err := s.userRepo.GetUserByEmailAndPassword(email, digest)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	logger.Log.WithField("user_id", user.ID).Info("User logged in")
	return s.IssueTokens(user.ID)
}

// Register creates the user with a pending email-verify token and immediately
// issues a session. Verification is advisory; it never gates login.
func (s *AuthService) Register(req *model.RegisterRequest) (*TokenPair, error) {
	_, err := s.userRepo.GetUserByEmail(req.Email)
	if err == nil {
		return nil, ErrEmailAlreadyExist
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	// The id is assigned up front because the verify token is signed with it.
	userID := uuid.NewString()

	verifyToken, err := s.codec.Sign(userID, model.KindEmailVerify)
	if err != nil {
		return nil, err
	}

	dateOfBirth, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("invalid date of birth: %w", err)
	}

	user := &model.User{
		ID:               userID,
		Name:             req.Name,
		Email:            req.Email,
		DateOfBirth:      dateOfBirth,
		Password:         s.hasher.HashPassword(req.Password),
		EmailVerifyToken: sql.NullString{String: verifyToken, Valid: true},
		Verify:           model.StatusUnverified,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Log.WithField("user_id", userID).Info("User registered")
	return s.IssueTokens(userID)
}

// Logout deletes the refresh token record unconditionally. Logging out with a
// token that has no record is not an error.
func (s *AuthService) Logout(refreshToken string) error {
	return s.tokenRepo.DeleteByValue(refreshToken)
}

// RefreshRotate exchanges a valid refresh token for a new access/refresh pair.
// The old record is deleted before the new pair is minted, so a crash mid-way
// leaves the session revoked rather than doubled. The new refresh token
// inherits the original expiry; rotation never extends the session's life.
//
// Two concurrent rotations of the same token are not serialized: the last
// insert wins and the loser's tokens fail later validation. Degraded but safe.
func (s *AuthService) RefreshRotate(claims *model.AppClaims, refreshToken string) (*TokenPair, error) {
	exists, err := s.tokenRepo.Exists(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if !exists {
		return nil, ErrInvalidRefreshToken
	}

	if err := s.tokenRepo.DeleteByValue(refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	accessToken, err := s.codec.Sign(claims.UserID, model.KindAccess)
	if err != nil {
		return nil, err
	}
	newRefreshToken, err := s.codec.SignWithExpiry(claims.UserID, model.KindRefresh, claims.ExpiresAt.Time)
	if err != nil {
		return nil, err
	}
	if err := s.tokenRepo.Insert(newRefreshToken, claims.UserID); err != nil {
		return nil, fmt.Errorf("failed to persist rotated refresh token: %w", err)
	}

	logger.Log.WithField("user_id", claims.UserID).Info("Refresh token rotated")
	return &TokenPair{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}
