package repository

import (
	"database/sql"
	"fmt"
	"go-user-api/logger"
	"go-user-api/model"
	"strings"
)

// IUserRepository defines the contract for the user directory.
type IUserRepository interface {
	CreateUser(user *model.User) error
	GetUserByID(id string) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByEmailAndPassword(email, passwordDigest string) (*model.User, error)
	GetUserByEmailVerifyToken(token string) (*model.User, error)
	GetUserByForgotPasswordToken(token string) (*model.User, error)
	SetEmailVerifyToken(userID, token string) error
	SetVerified(userID string) error
	SetForgotPasswordToken(userID, token string) error
	ResetPassword(userID, passwordDigest string) error
	UpdatePassword(userID, passwordDigest string) error
	UpdateProfile(userID string, req *model.UpdateProfileRequest) error
}

// UserRepository implements IUserRepository on Postgres.
type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, name, email, date_of_birth, password, email_verify_token,
	forgot_password_token, verify, bio, location, website, user_name, avatar,
	cover_photo, created_at, updated_at`

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.DateOfBirth,
		&user.Password, &user.EmailVerifyToken, &user.ForgotPasswordToken,
		&user.Verify, &user.Bio, &user.Location, &user.Website, &user.UserName,
		&user.Avatar, &user.CoverPhoto, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a new user record. The caller assigns the id beforehand
// because the pending email-verify token is signed with it.
func (r *UserRepository) CreateUser(user *model.User) error {
	logger.Log.WithField("email", user.Email).Info("Executing query to create a new user")

	query := `INSERT INTO users (id, name, email, date_of_birth, password, email_verify_token, verify)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at, updated_at`
	err := r.DB.QueryRow(query, user.ID, user.Name, user.Email, user.DateOfBirth,
		user.Password, user.EmailVerifyToken, user.Verify).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute create user query")
		return err
	}
	return nil
}

func (r *UserRepository) GetUserByID(id string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return scanUser(r.DB.QueryRow(query, id))
}

func (r *UserRepository) GetUserByEmail(email string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return scanUser(r.DB.QueryRow(query, email))
}

// GetUserByEmailAndPassword is the login lookup: the digest is part of the key,
// so a wrong password and an unknown email are indistinguishable to the caller.
func (r *UserRepository) GetUserByEmailAndPassword(email, passwordDigest string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1 AND password = $2`, userColumns)
	return scanUser(r.DB.QueryRow(query, email, passwordDigest))
}

func (r *UserRepository) GetUserByEmailVerifyToken(token string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email_verify_token = $1`, userColumns)
	return scanUser(r.DB.QueryRow(query, token))
}

func (r *UserRepository) GetUserByForgotPasswordToken(token string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE forgot_password_token = $1`, userColumns)
	return scanUser(r.DB.QueryRow(query, token))
}

// SetEmailVerifyToken overwrites the pending verification token, invalidating
// any previously issued one (lookup is by exact value).
func (r *UserRepository) SetEmailVerifyToken(userID, token string) error {
	logger.Log.WithField("user_id", userID).Info("Executing query to set email verify token")

	query := `UPDATE users SET email_verify_token = $1, updated_at = now() WHERE id = $2`
	return r.exec(query, token, userID)
}

// SetVerified marks the email confirmed and clears the consumed token.
func (r *UserRepository) SetVerified(userID string) error {
	logger.Log.WithField("user_id", userID).Info("Executing query to mark user verified")

	query := `UPDATE users SET verify = $1, email_verify_token = NULL, updated_at = now() WHERE id = $2`
	return r.exec(query, model.StatusVerified, userID)
}

func (r *UserRepository) SetForgotPasswordToken(userID, token string) error {
	logger.Log.WithField("user_id", userID).Info("Executing query to set forgot password token")

	query := `UPDATE users SET forgot_password_token = $1, updated_at = now() WHERE id = $2`
	return r.exec(query, token, userID)
}

// ResetPassword overwrites the digest and clears the consumed reset token in
// one statement so no half-consumed state is observable.
func (r *UserRepository) ResetPassword(userID, passwordDigest string) error {
	logger.Log.WithField("user_id", userID).Info("Executing query to reset password")

	query := `UPDATE users SET password = $1, forgot_password_token = NULL, updated_at = now() WHERE id = $2`
	return r.exec(query, passwordDigest, userID)
}

func (r *UserRepository) UpdatePassword(userID, passwordDigest string) error {
	logger.Log.WithField("user_id", userID).Info("Executing query to update password")

	query := `UPDATE users SET password = $1, updated_at = now() WHERE id = $2`
	return r.exec(query, passwordDigest, userID)
}

// UpdateProfile writes only the fields present in the request.
func (r *UserRepository) UpdateProfile(userID string, req *model.UpdateProfileRequest) error {
	sets := []string{}
	args := []interface{}{}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Name != nil {
		addSet("name", *req.Name)
	}
	if req.DateOfBirth != nil {
		addSet("date_of_birth", *req.DateOfBirth)
	}
	if req.Bio != nil {
		addSet("bio", *req.Bio)
	}
	if req.Location != nil {
		addSet("location", *req.Location)
	}
	if req.Website != nil {
		addSet("website", *req.Website)
	}
	if req.UserName != nil {
		addSet("user_name", *req.UserName)
	}
	if req.Avatar != nil {
		addSet("avatar", *req.Avatar)
	}
	if req.CoverPhoto != nil {
		addSet("cover_photo", *req.CoverPhoto)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, userID)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	logger.Log.WithField("user_id", userID).Info("Executing query to update profile")
	return r.exec(query, args...)
}

func (r *UserRepository) exec(query string, args ...interface{}) error {
	res, err := r.DB.Exec(query, args...)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute user update query")
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
