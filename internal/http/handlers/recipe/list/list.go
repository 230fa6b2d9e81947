// Package list реализует HTTP-обработчик списка всех рецептов
// с опциональным фильтром по категории.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/recipe-hub/internal/http/response"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/flash"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/sl"
	"github.com/magabrotheeeer/recipe-hub/internal/models"
)

// Service описывает интерфейс бизнес-логики списка рецептов.
type Service interface {
	List(ctx context.Context, category string) ([]*models.Recipe, error)
}

// Handler обрабатывает запросы списка рецептов.
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

// ServeHTTP возвращает все рецепты от новых к старым.
// Параметр запроса category задаёт фильтр по точному совпадению категории.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	category := r.URL.Query().Get("category")

	recipes, err := h.service.List(r.Context(), category)
	if err != nil {
		log.Error("failed to list recipes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list recipes"))
		return
	}

	log.Info("recipes listed", slog.Int("count", len(recipes)), slog.String("category", category))
	data := map[string]any{
		"recipes": recipes,
		"count":   len(recipes),
	}
	if category != "" {
		data["current_category"] = category
	}
	if notice := flash.Take(w, r); notice != nil {
		data["notice"] = notice
	}
	render.JSON(w, r, response.StatusOKWithData(data))
}
