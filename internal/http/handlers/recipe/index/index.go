// Package index реализует HTTP-обработчик главной страницы
// с последними опубликованными рецептами.
package index

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

// Service описывает интерфейс бизнес-логики главной страницы.
type Service interface {
	ListRecent(ctx context.Context) ([]*models.Recipe, error)
}

// Handler обрабатывает запросы главной страницы.
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

// ServeHTTP возвращает не более шести последних рецептов, от новых к старым.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.index"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	recipes, err := h.service.ListRecent(r.Context())
	if err != nil {
		log.Error("failed to list recent recipes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list recipes"))
		return
	}

	log.Info("recent recipes listed", slog.Int("count", len(recipes)))
	data := map[string]any{
		"recipes": recipes,
		"count":   len(recipes),
	}
	if notice := flash.Take(w, r); notice != nil {
		data["notice"] = notice
	}
	render.JSON(w, r, response.StatusOKWithData(data))
}
