// Package health реализует HTTP-обработчик проверки работоспособности сервиса.
//
// Помимо живости процесса проверяется готовность базы данных:
// если схема недоступна, сервис отвечает 503.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/recipe-hub/internal/http/response"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/sl"
)

// Service описывает проверку готовности зависимостей сервиса.
type Service interface {
	CheckDatabaseReady() error
}

// Handler обрабатывает запросы проверки работоспособности.
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.service.CheckDatabaseReady(); err != nil {
		log.Error("database is not ready", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("service unavailable"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
	}))
}
