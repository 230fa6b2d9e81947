// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/recipe-hub/internal/lib/jwt"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/password"
	"github.com/magabrotheeeer/recipe-hub/internal/models"
	"github.com/magabrotheeeer/recipe-hub/internal/storage"
)

// ErrUsernameTaken возвращается при попытке регистрации с занятым именем пользователя.
var ErrUsernameTaken = errors.New("username already exists")

// ErrEmailTaken возвращается при попытке регистрации с занятой электронной почтой.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials возвращается при неуспешном входе.
// Неизвестное имя пользователя и неверный пароль не различаются.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUser возвращает пользователя по его UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	// UserExistsByUsername проверяет, занято ли имя пользователя.
	UserExistsByUsername(ctx context.Context, username string) (bool, error)

	// UserExistsByEmail проверяет, зарегистрирована ли электронная почта.
	UserExistsByEmail(ctx context.Context, email string) (bool, error)

	// DeleteUser удаляет пользователя вместе со всеми его рецептами.
	DeleteUser(ctx context.Context, userUID string) error
}

// AuthService отвечает за регистрацию, вход и удаление учётной записи.
type AuthService struct {
	users        UserRepository
	sessionMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, sessionMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:        users,
		sessionMaker: sessionMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Уникальность имени пользователя проверяется раньше уникальности почты.
func (s *AuthService) Register(ctx context.Context, username, email, rawPassword string) (string, error) {
	taken, err := s.users.UserExistsByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrUsernameTaken
	}

	taken, err = s.users.UserExistsByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrEmailTaken
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует токен сессии.
//
// Любая причина отказа сводится к ErrInvalidCredentials, чтобы по ответу
// нельзя было перечислять существующие имена пользователей.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.sessionMaker.GenerateToken(user.Username, user.UID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetUser возвращает пользователя по его UID.
func (s *AuthService) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	return s.users.GetUser(ctx, userUID)
}

// DeleteUser удаляет учётную запись вместе со всеми её рецептами.
// Каскад выполняется в одной транзакции на стороне хранилища.
func (s *AuthService) DeleteUser(ctx context.Context, userUID string) error {
	const op = "services.auth.DeleteUser"
	if err := s.users.DeleteUser(ctx, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
