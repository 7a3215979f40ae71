package service

import (
	"fmt"
	"go-user-api/config"
	"go-user-api/logger"
	"go-user-api/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// kindSpec is the per-kind signing policy: which secret signs the kind and how
// long a freshly minted token lives.
type kindSpec struct {
	secret   []byte
	lifetime time.Duration
}

// TokenCodec signs and verifies the four token kinds. Each kind has its own
// secret, so a token minted for one purpose can never pass verification for
// another. The mapping is closed at construction and never mutated.
type TokenCodec struct {
	kinds  map[model.TokenKind]kindSpec
	leeway time.Duration
}

func NewTokenCodec(cfg config.JWTConfig) *TokenCodec {
	return &TokenCodec{
		kinds: map[model.TokenKind]kindSpec{
			model.KindAccess:         {secret: []byte(cfg.AccessSecret), lifetime: cfg.AccessLifetime},
			model.KindRefresh:        {secret: []byte(cfg.RefreshSecret), lifetime: cfg.RefreshLifetime},
			model.KindEmailVerify:    {secret: []byte(cfg.EmailVerifySecret), lifetime: cfg.EmailVerifyLifetime},
			model.KindForgotPassword: {secret: []byte(cfg.ForgotPasswordSecret), lifetime: cfg.ForgotPwLifetime},
		},
		leeway: cfg.Leeway,
	}
}

// Sign mints a token of the given kind with the kind's default lifetime.
func (c *TokenCodec) Sign(userID string, kind model.TokenKind) (string, error) {
	spec, ok := c.kinds[kind]
	if !ok {
		return "", fmt.Errorf("unknown token kind %d", kind)
	}
	return c.sign(userID, kind, spec, time.Now().Add(spec.lifetime))
}

// SignWithExpiry mints a token with an explicit expiry. Refresh rotation uses
// this to carry the original grant's expiry forward instead of extending it.
func (c *TokenCodec) SignWithExpiry(userID string, kind model.TokenKind, expiresAt time.Time) (string, error) {
	spec, ok := c.kinds[kind]
	if !ok {
		return "", fmt.Errorf("unknown token kind %d", kind)
	}
	return c.sign(userID, kind, spec, expiresAt)
}

func (c *TokenCodec) sign(userID string, kind model.TokenKind, spec kindSpec, expiresAt time.Time) (string, error) {
	claims := &model.AppClaims{
		UserID:    userID,
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(spec.secret)
	if err != nil {
		// Signing only fails on broken configuration; treated as fatal-unexpected.
		logger.Log.WithError(err).WithField("token_type", kind.String()).Error("Failed to sign token")
		return "", fmt.Errorf("failed to sign %s token: %w", kind.String(), err)
	}

	return tokenString, nil
}

// Verify parses and validates a token against the secret of the given kind.
// It rejects bad signatures, malformed input, expired tokens (with a small
// configured leeway) and tokens whose embedded kind does not match.
func (c *TokenCodec) Verify(tokenString string, kind model.TokenKind) (*model.AppClaims, error) {
	spec, ok := c.kinds[kind]
	if !ok {
		return nil, fmt.Errorf("unknown token kind %d", kind)
	}

	claims := &model.AppClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return spec.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(c.leeway),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid %s token: %w", kind.String(), err)
	}
	if !token.Valid || claims.TokenType != kind {
		return nil, fmt.Errorf("invalid %s token: kind mismatch", kind.String())
	}

	return claims, nil
}
