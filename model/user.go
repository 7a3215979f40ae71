package model

import (
	"database/sql"
	"time"
)

// VerifyStatus tracks whether a user has confirmed their email address.
type VerifyStatus int

const (
	StatusUnverified VerifyStatus = iota
	StatusVerified
	StatusBanned
)

// User is the identity record. The pending single-use tokens are nullable
// columns rather than empty strings so "no pending token" is unambiguous.
type User struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Email               string         `json:"email"`
	DateOfBirth         time.Time      `json:"date_of_birth"`
	Password            string         `json:"-"`
	EmailVerifyToken    sql.NullString `json:"-"`
	ForgotPasswordToken sql.NullString `json:"-"`
	Verify              VerifyStatus   `json:"verify"`
	Bio                 string         `json:"bio"`
	Location            string         `json:"location"`
	Website             string         `json:"website"`
	UserName            string         `json:"user_name"`
	Avatar              string         `json:"avatar"`
	CoverPhoto          string         `json:"cover_photo"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// Follower records that user_id is followed by follower_user_id.
type Follower struct {
	UserID         string    `json:"user_id"`
	FollowerUserID string    `json:"follower_user_id"`
	CreatedAt      time.Time `json:"created_at"`
}
