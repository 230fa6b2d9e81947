package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/recipe-hub/internal/lib/jwt"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/password"
	"github.com/magabrotheeeer/recipe-hub/internal/models"
	"github.com/magabrotheeeer/recipe-hub/internal/storage"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UserExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

func TestRegister_Success(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, jwt.NewJWTMaker("secret", time.Hour))

	repo.On("UserExistsByUsername", mock.Anything, "alice").Return(false, nil)
	repo.On("UserExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Username == "alice" &&
			u.Email == "alice@example.com" &&
			password.CompareHash(u.PasswordHash, "pw123") == nil
	})).Return("uid-123", nil)

	uid, err := svc.Register(context.Background(), "alice", "alice@example.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "uid-123", uid)
	repo.AssertExpectations(t)
}

func TestRegister_UsernameTaken(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, jwt.NewJWTMaker("secret", time.Hour))

	repo.On("UserExistsByUsername", mock.Anything, "alice").Return(true, nil)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "pw123")
	assert.ErrorIs(t, err, ErrUsernameTaken)
	repo.AssertNotCalled(t, "UserExistsByEmail", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "RegisterUser", mock.Anything, mock.Anything)
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, jwt.NewJWTMaker("secret", time.Hour))

	repo.On("UserExistsByUsername", mock.Anything, "alice").Return(false, nil)
	repo.On("UserExistsByEmail", mock.Anything, "alice@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "pw123")
	assert.ErrorIs(t, err, ErrEmailTaken)
	repo.AssertNotCalled(t, "RegisterUser", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	repo := new(MockUserRepository)
	maker := jwt.NewJWTMaker("secret", time.Hour)
	svc := NewAuthService(repo, maker)

	hash, err := password.GetHash("pw123")
	require.NoError(t, err)

	repo.On("GetUserByUsername", mock.Anything, "alice").Return(&models.User{
		UID:          "uid-123",
		Username:     "alice",
		PasswordHash: hash,
	}, nil)

	token, user, err := svc.Login(context.Background(), "alice", "pw123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "uid-123", claims.UserUID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	hash, err := password.GetHash("pw123")
	require.NoError(t, err)

	tests := []struct {
		name      string
		mockSetup func(repo *MockUserRepository)
	}{
		{
			name: "неизвестное имя пользователя",
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetUserByUsername", mock.Anything, "alice").
					Return(nil, storage.ErrUserNotFound)
			},
		},
		{
			name: "неверный пароль",
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetUserByUsername", mock.Anything, "alice").
					Return(&models.User{UID: "uid-123", Username: "alice", PasswordHash: hash}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.mockSetup(repo)
			svc := NewAuthService(repo, jwt.NewJWTMaker("secret", time.Hour))

			token, user, err := svc.Login(context.Background(), "alice", "wrongpassword")
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Empty(t, token)
			assert.Nil(t, user)
		})
	}
}

func TestDeleteUser(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, jwt.NewJWTMaker("secret", time.Hour))

	repo.On("DeleteUser", mock.Anything, "uid-123").Return(nil)

	require.NoError(t, svc.DeleteUser(context.Background(), "uid-123"))
	repo.AssertExpectations(t)
}

func TestDeleteUser_NotFound(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, jwt.NewJWTMaker("secret", time.Hour))

	repo.On("DeleteUser", mock.Anything, "missing").Return(storage.ErrUserNotFound)

	err := svc.DeleteUser(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}
