package model

import "github.com/golang-jwt/jwt/v5"

// TokenKind discriminates the four token purposes. Each kind signs and
// verifies with its own secret.
type TokenKind int

const (
	KindAccess TokenKind = iota
	KindRefresh
	KindEmailVerify
	KindForgotPassword
)

func (k TokenKind) String() string {
	switch k {
	case KindAccess:
		return "access"
	case KindRefresh:
		return "refresh"
	case KindEmailVerify:
		return "email_verify"
	case KindForgotPassword:
		return "forgot_password"
	}
	return "unknown"
}

// AppClaims is the signed token payload. The JSON field names (user_id,
// token_type, iat, exp) are the wire contract with existing clients.
type AppClaims struct {
	UserID    string    `json:"user_id"`
	TokenType TokenKind `json:"token_type"`
	jwt.RegisteredClaims
}
