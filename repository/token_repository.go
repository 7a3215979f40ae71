package repository

import (
	"database/sql"
	"go-user-api/logger"
	"go-user-api/model"
)

// ITokenRepository defines the contract for refresh token database operations.
// A refresh token authenticates if and only if a matching row exists here.
type ITokenRepository interface {
	Exists(token string) (bool, error)
	Insert(token, userID string) error
	DeleteByValue(token string) error
}

// TokenRepository implements ITokenRepository.
type TokenRepository struct {
	DB *sql.DB
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{DB: db}
}

// Exists reports whether the exact token string has an active record.
func (r *TokenRepository) Exists(token string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM refresh_tokens WHERE token = $1)`
	err := r.DB.QueryRow(query, token).Scan(&exists)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute refresh token existence query")
		return false, err
	}
	return exists, nil
}

// Insert records a freshly issued refresh token for a user.
func (r *TokenRepository) Insert(token, userID string) error {
	logger.Log.WithField("user_id", userID).Info("Executing query to create a new refresh token")

	record := &model.RefreshToken{}
	query := `INSERT INTO refresh_tokens (token, user_id) VALUES ($1, $2) RETURNING id, created_at`
	err := r.DB.QueryRow(query, token, userID).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute create refresh token query")
		return err
	}
	return nil
}

// DeleteByValue removes the record for the exact token string. Deleting a
// token that is already gone is not an error; logout must stay idempotent.
func (r *TokenRepository) DeleteByValue(token string) error {
	query := `DELETE FROM refresh_tokens WHERE token = $1`
	_, err := r.DB.Exec(query, token)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute delete refresh token query")
		return err
	}
	return nil
}
