// Package logout реализует HTTP-обработчик выхода из системы.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/recipe-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/flash"
)

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP безусловно гасит cookie сессии и редиректит на главную.
// Проверка текущей сессии не выполняется.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	middlewarectx.ClearSessionCookie(w)
	log.Info("session cleared")

	flash.Set(w, flash.CategoryInfo, "You have been logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
