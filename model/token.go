package model

import "time"

// RefreshToken is the server-side record proving a refresh token string is
// still valid for a user. The signed claims alone are necessary but not
// sufficient: without a matching row the token is dead.
type RefreshToken struct {
	ID        int       `json:"id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"-"` // The raw token is not exposed in JSON responses.
	CreatedAt time.Time `json:"created_at"`
}
