package repository

import (
	"database/sql"
	"go-user-api/logger"

	"github.com/sirupsen/logrus"
)

// IFollowerRepository defines the contract for follower edge mutations.
type IFollowerRepository interface {
	Follow(userID, followerUserID string) error
}

// FollowerRepository implements IFollowerRepository.
type FollowerRepository struct {
	DB *sql.DB
}

func NewFollowerRepository(db *sql.DB) *FollowerRepository {
	return &FollowerRepository{DB: db}
}

// Follow records that followerUserID follows userID. Following someone twice
// is a no-op.
func (r *FollowerRepository) Follow(userID, followerUserID string) error {
	logger.Log.WithFields(logrus.Fields{
		"user_id":          userID,
		"follower_user_id": followerUserID,
	}).Info("Executing query to add follower")

	query := `INSERT INTO followers (user_id, follower_user_id) VALUES ($1, $2)
		ON CONFLICT (user_id, follower_user_id) DO NOTHING`
	_, err := r.DB.Exec(query, userID, followerUserID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute add follower query")
		return err
	}
	return nil
}
