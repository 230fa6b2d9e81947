package profile

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/recipe-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/recipe-hub/internal/models"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) ListByOwner(ctx context.Context, userUID string) ([]*models.Recipe, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Recipe), args.Error(1)
}

func newRequest(withSession bool) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	if withSession {
		ctx := context.WithValue(req.Context(), middlewarectx.UserUID, "uid-123")
		req = req.WithContext(ctx)
	}
	return req
}

func TestProfileHandler(t *testing.T) {
	users := new(MockUserService)
	recipes := new(MockRecipeService)

	users.On("GetUser", mock.Anything, "uid-123").Return(&models.User{
		UID:          "uid-123",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$secret",
		CreatedAt:    time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
	}, nil)
	recipes.On("ListByOwner", mock.Anything, "uid-123").
		Return([]*models.Recipe{{ID: 2, Title: "Борщ", UserUID: "uid-123"}}, nil)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	handler := New(logger, users, recipes)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, newRequest(true))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.Contains(t, w.Body.String(), `"count":1`)
	// хэш пароля не должен попадать в ответ
	assert.NotContains(t, w.Body.String(), "secret")
	users.AssertExpectations(t)
	recipes.AssertExpectations(t)
}

func TestProfileHandler_NoSession(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	handler := New(logger, new(MockUserService), new(MockRecipeService))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, newRequest(false))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"status":"Error","error":"unauthorized"}`, w.Body.String())
}

func TestProfileHandler_UserLookupFails(t *testing.T) {
	users := new(MockUserService)
	users.On("GetUser", mock.Anything, "uid-123").Return(nil, errors.New("db down"))

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	handler := New(logger, users, new(MockRecipeService))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, newRequest(true))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"status":"Error","error":"could not load profile"}`, w.Body.String())
}
