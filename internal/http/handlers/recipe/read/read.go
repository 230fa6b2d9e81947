// Package read реализует HTTP-обработчик просмотра одного рецепта по ID.
//
// Рецепты доступны для чтения всем, включая анонимных пользователей.
// Отсутствующий или некорректный идентификатор даёт ответ 404.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/recipe-hub/internal/http/response"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/flash"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/sl"
	"github.com/magabrotheeeer/recipe-hub/internal/models"
	"github.com/magabrotheeeer/recipe-hub/internal/storage"
)

// Service описывает интерфейс бизнес-логики чтения рецепта.
type Service interface {
	Read(ctx context.Context, id int) (*models.Recipe, error)
}

// Handler обрабатывает запросы на получение рецепта по идентификатору.
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

// ServeHTTP обрабатывает HTTP-запрос на получение рецепта по ID.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.read"

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

	recipe, err := h.service.Read(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrRecipeNotFound) {
			log.Info("recipe not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("recipe not found"))
			return
		}
		log.Error("failed to read recipe", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read recipe"))
		return
	}

	log.Info("recipe read", slog.Int("id", id))
	data := map[string]any{
		"recipe": recipe,
	}
	if notice := flash.Take(w, r); notice != nil {
		data["notice"] = notice
	}
	render.JSON(w, r, response.StatusOKWithData(data))
}
