package service

import (
	"database/sql"
	"errors"
	"go-user-api/model"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mockUserRepo is a mock implementation of IUserRepository.
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}
func (m *mockUserRepo) GetUserByID(id string) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) GetUserByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) GetUserByEmailAndPassword(email, passwordDigest string) (*model.User, error) {
	args := m.Called(email, passwordDigest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) GetUserByEmailVerifyToken(token string) (*model.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) GetUserByForgotPasswordToken(token string) (*model.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) SetEmailVerifyToken(userID, token string) error {
	args := m.Called(userID, token)
	return args.Error(0)
}
func (m *mockUserRepo) SetVerified(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}
func (m *mockUserRepo) SetForgotPasswordToken(userID, token string) error {
	args := m.Called(userID, token)
	return args.Error(0)
}
func (m *mockUserRepo) ResetPassword(userID, passwordDigest string) error {
	args := m.Called(userID, passwordDigest)
	return args.Error(0)
}
func (m *mockUserRepo) UpdatePassword(userID, passwordDigest string) error {
	args := m.Called(userID, passwordDigest)
	return args.Error(0)
}
func (m *mockUserRepo) UpdateProfile(userID string, req *model.UpdateProfileRequest) error {
	args := m.Called(userID, req)
	return args.Error(0)
}

// mockTokenRepo is a mock implementation of ITokenRepository.
type mockTokenRepo struct{ mock.Mock }

func (m *mockTokenRepo) Exists(token string) (bool, error) {
	args := m.Called(token)
	return args.Bool(0), args.Error(1)
}
func (m *mockTokenRepo) Insert(token, userID string) error {
	args := m.Called(token, userID)
	return args.Error(0)
}
func (m *mockTokenRepo) DeleteByValue(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func newTestAuthService(userRepo *mockUserRepo, tokenRepo *mockTokenRepo) (*AuthService, *TokenCodec, *Hasher) {
	codec := NewTokenCodec(testJWTConfig())
	hasher := NewHasher("test-pepper")
	return NewAuthService(userRepo, tokenRepo, codec, hasher), codec, hasher
}

func TestAuthService_Login(t *testing.T) {
	email := "a@x.com"
	password := "password123"

	t.Run("success", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		mockTokens := new(mockTokenRepo)
		authService, codec, hasher := newTestAuthService(mockUsers, mockTokens)

		user := &model.User{ID: "user-1", Email: email, Password: hasher.HashPassword(password)}
		mockUsers.On("GetUserByEmailAndPassword", email, hasher.HashPassword(password)).Return(user, nil).Once()
		mockTokens.On("Insert", mock.AnythingOfType("string"), "user-1").Return(nil).Once()

		pair, err := authService.Login(email, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)

		claims, err := codec.Verify(pair.AccessToken, model.KindAccess)
		assert.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)

		mockUsers.AssertExpectations(t)
		mockTokens.AssertExpectations(t)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		mockTokens := new(mockTokenRepo)
		authService, _, _ := newTestAuthService(mockUsers, mockTokens)

		mockUsers.On("GetUserByEmailAndPassword", mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows).Twice()

		_, errUnknownEmail := authService.Login("nobody@x.com", password)
		_, errWrongPassword := authService.Login(email, "wrongpassword")

		assert.ErrorIs(t, errUnknownEmail, ErrInvalidCredentials)
		assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
		assert.Equal(t, errUnknownEmail.Error(), errWrongPassword.Error())
		mockTokens.AssertNotCalled(t, "Insert")
	})

	t.Run("repository failure is not a credentials failure", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		mockTokens := new(mockTokenRepo)
		authService, _, _ := newTestAuthService(mockUsers, mockTokens)

		mockUsers.On("GetUserByEmailAndPassword", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

		_, err := authService.Login(email, password)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_Register(t *testing.T) {
	req := &model.RegisterRequest{
		Name:            "Test User",
		Email:           "a@x.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		DateOfBirth:     "2000-01-15",
	}

	t.Run("success", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		mockTokens := new(mockTokenRepo)
		authService, codec, hasher := newTestAuthService(mockUsers, mockTokens)

		mockUsers.On("GetUserByEmail", req.Email).Return(nil, sql.ErrNoRows).Once()

		var createdID string
		mockUsers.On("CreateUser", mock.MatchedBy(func(u *model.User) bool {
			return u.Email == req.Email &&
				u.Verify == model.StatusUnverified &&
				u.Password == hasher.HashPassword(req.Password) &&
				u.EmailVerifyToken.Valid && u.EmailVerifyToken.String != ""
		})).Run(func(args mock.Arguments) {
			createdID = args.Get(0).(*model.User).ID
		}).Return(nil).Once()
		mockTokens.On("Insert", mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil).Once()

		pair, err := authService.Register(req)

		assert.NoError(t, err)
		assert.NotEmpty(t, createdID)

		// The returned access token must decode to the newly created user id.
		claims, err := codec.Verify(pair.AccessToken, model.KindAccess)
		assert.NoError(t, err)
		assert.Equal(t, createdID, claims.UserID)

		// The refresh token must have a store record for the same user.
		mockTokens.AssertCalled(t, "Insert", pair.RefreshToken, createdID)

		mockUsers.AssertExpectations(t)
		mockTokens.AssertExpectations(t)
	})

	t.Run("pending verify token decodes to the new user id", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		mockTokens := new(mockTokenRepo)
		authService, codec, _ := newTestAuthService(mockUsers, mockTokens)

		mockUsers.On("GetUserByEmail", req.Email).Return(nil, sql.ErrNoRows).Once()

		var created *model.User
		mockUsers.On("CreateUser", mock.Anything).Run(func(args mock.Arguments) {
			created = args.Get(0).(*model.User)
		}).Return(nil).Once()
		mockTokens.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := authService.Register(req)
		assert.NoError(t, err)

		claims, err := codec.Verify(created.EmailVerifyToken.String, model.KindEmailVerify)
		assert.NoError(t, err)
		assert.Equal(t, created.ID, claims.UserID)
	})

	t.Run("email already exists", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		mockTokens := new(mockTokenRepo)
		authService, _, _ := newTestAuthService(mockUsers, mockTokens)

		mockUsers.On("GetUserByEmail", req.Email).Return(&model.User{ID: "existing"}, nil).Once()

		_, err := authService.Register(req)

		assert.ErrorIs(t, err, ErrEmailAlreadyExist)
		mockUsers.AssertNotCalled(t, "CreateUser")
		mockTokens.AssertNotCalled(t, "Insert")
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("idempotent on absent token", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		mockTokens := new(mockTokenRepo)
		authService, _, _ := newTestAuthService(mockUsers, mockTokens)

		// DeleteByValue succeeds whether or not a record existed.
		mockTokens.On("DeleteByValue", "some-token").Return(nil).Twice()

		assert.NoError(t, authService.Logout("some-token"))
		assert.NoError(t, authService.Logout("some-token"))
		mockTokens.AssertExpectations(t)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		mockTokens := new(mockTokenRepo)
		authService, _, _ := newTestAuthService(mockUsers, mockTokens)

		mockTokens.On("DeleteByValue", "some-token").Return(errors.New("store down")).Once()

		assert.Error(t, authService.Logout("some-token"))
	})
}

func TestAuthService_RefreshRotate(t *testing.T) {
	userID := "user-1"

	refreshClaims := func(exp time.Time) *model.AppClaims {
		return &model.AppClaims{
			UserID:    userID,
			TokenType: model.KindRefresh,
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				ExpiresAt: jwt.NewNumericDate(exp),
			},
		}
	}

	t.Run("rotation inherits the original expiry", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		mockTokens := new(mockTokenRepo)
		authService, codec, _ := newTestAuthService(mockUsers, mockTokens)

		originalExp := time.Now().Add(12 * time.Hour).Truncate(time.Second)
		oldToken := "old-refresh-token"

		mockTokens.On("Exists", oldToken).Return(true, nil).Once()
		mockTokens.On("DeleteByValue", oldToken).Return(nil).Once()
		mockTokens.On("Insert", mock.AnythingOfType("string"), userID).Return(nil).Once()

		pair, err := authService.RefreshRotate(refreshClaims(originalExp), oldToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEqual(t, oldToken, pair.RefreshToken)

		newClaims, err := codec.Verify(pair.RefreshToken, model.KindRefresh)
		assert.NoError(t, err)
		assert.True(t, newClaims.ExpiresAt.Time.Equal(originalExp),
			"rotated refresh token must not outlive the original grant")

		mockTokens.AssertExpectations(t)
	})

	t.Run("token absent from store is rejected", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		mockTokens := new(mockTokenRepo)
		authService, _, _ := newTestAuthService(mockUsers, mockTokens)

		mockTokens.On("Exists", "revoked-token").Return(false, nil).Once()

		_, err := authService.RefreshRotate(refreshClaims(time.Now().Add(time.Hour)), "revoked-token")

		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
		mockTokens.AssertNotCalled(t, "DeleteByValue")
		mockTokens.AssertNotCalled(t, "Insert")
	})

	t.Run("delete failure aborts before insert", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		mockTokens := new(mockTokenRepo)
		authService, _, _ := newTestAuthService(mockUsers, mockTokens)

		mockTokens.On("Exists", "old-token").Return(true, nil).Once()
		mockTokens.On("DeleteByValue", "old-token").Return(errors.New("store down")).Once()

		_, err := authService.RefreshRotate(refreshClaims(time.Now().Add(time.Hour)), "old-token")

		assert.Error(t, err)
		mockTokens.AssertNotCalled(t, "Insert")
	})
}
