// Package profile реализует HTTP-обработчик страницы профиля.
//
// Маршрут закрыт шлюзом сессии: возвращается учётная запись пользователя
// текущей сессии и все его рецепты от новых к старым.
package profile

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/recipe-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/recipe-hub/internal/http/response"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/flash"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/sl"
	"github.com/magabrotheeeer/recipe-hub/internal/models"
)

// UserService описывает интерфейс получения учётной записи.
type UserService interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// RecipeService описывает интерфейс получения рецептов пользователя.
type RecipeService interface {
	ListByOwner(ctx context.Context, userUID string) ([]*models.Recipe, error)
}

// Handler обрабатывает запросы страницы профиля.
type Handler struct {
	log     *slog.Logger
	users   UserService
	recipes RecipeService
}

// New создает новый Handler с переданными логгером и сервисами.
func New(log *slog.Logger, users UserService, recipes RecipeService) *Handler {
	return &Handler{
		log:     log,
		users:   users,
		recipes: recipes,
	}
}

// ServeHTTP возвращает профиль пользователя сессии и его рецепты.
// Хэш пароля наружу не отдаётся.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	user, err := h.users.GetUser(r.Context(), userUID)
	if err != nil {
		log.Error("failed to get user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load profile"))
		return
	}

	recipes, err := h.recipes.ListByOwner(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list user recipes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load profile"))
		return
	}

	log.Info("profile loaded", slog.String("username", user.Username), slog.Int("count", len(recipes)))
	data := map[string]any{
		"user": map[string]any{
			"username":   user.Username,
			"email":      user.Email,
			"created_at": user.CreatedAt,
		},
		"recipes": recipes,
		"count":   len(recipes),
	}
	if notice := flash.Take(w, r); notice != nil {
		data["notice"] = notice
	}
	render.JSON(w, r, response.StatusOKWithData(data))
}
