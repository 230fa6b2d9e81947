// Package remove реализует HTTP-обработчик удаления рецепта.
//
// Маршрут закрыт шлюзом сессии; удалить рецепт может только его владелец.
// При отказе в праве ничего не удаляется, при успехе пользователь
// редиректится на свой профиль.
package remove

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	recipeservice "github.com/magabrotheeeer/recipe-hub/internal/services/recipe"

	"github.com/magabrotheeeer/recipe-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/recipe-hub/internal/http/response"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/flash"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/sl"
	"github.com/magabrotheeeer/recipe-hub/internal/storage"
)

// Service описывает интерфейс бизнес-логики удаления рецепта.
type Service interface {
	Authorize(ctx context.Context, id int, userUID string) error
	Remove(ctx context.Context, id int) (int, error)
}

// Handler обрабатывает HTTP-запросы удаления рецепта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает POST запрос на /recipe/{id}/delete.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Info("malformed recipe id", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("recipe not found"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.Authorize(r.Context(), id, userUID); err != nil {
		switch {
		case errors.Is(err, storage.ErrRecipeNotFound):
			log.Info("recipe not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("recipe not found"))
		case errors.Is(err, recipeservice.ErrNotOwner):
			log.Info("delete rejected, not the owner", slog.Int("id", id))
			flash.Set(w, flash.CategoryDanger, "You can only delete your own recipes.")
			http.Redirect(w, r, fmt.Sprintf("/recipe/%d", id), http.StatusSeeOther)
		default:
			log.Error("failed to authorize", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not read recipe"))
		}
		return
	}

	if _, err := h.service.Remove(r.Context(), id); err != nil {
		log.Error("failed to delete recipe", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete recipe"))
		return
	}

	log.Info("recipe deleted", slog.Int("id", id))
	flash.Set(w, flash.CategoryInfo, "Recipe deleted successfully.")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}
