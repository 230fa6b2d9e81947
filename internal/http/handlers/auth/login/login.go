// Package login реализует HTTP-обработчик входа пользователей.
//
// Handler принимает form-encoded запрос с учётными данными, делегирует
// проверку сервису аутентификации и при успехе устанавливает cookie сессии.
// Неизвестное имя пользователя и неверный пароль дают одинаковый отказ.
package login

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	authservice "github.com/magabrotheeeer/recipe-hub/internal/services/auth"

	"github.com/magabrotheeeer/recipe-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/recipe-hub/internal/http/response"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/flash"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/sl"
	"github.com/magabrotheeeer/recipe-hub/internal/models"
)

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, username, rawPassword string) (string, *models.User, error)
}

// Handler обрабатывает HTTP-запросы входа.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики аутентификации
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает GET и POST запросы на /login.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if r.Method == http.MethodGet {
		data := map[string]any{}
		if notice := flash.Take(w, r); notice != nil {
			data["notice"] = notice
		}
		render.JSON(w, r, response.StatusOKWithData(data))
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid form data"))
		return
	}

	username := r.PostFormValue("username")
	rawPassword := r.PostFormValue("password")

	token, user, err := h.service.Login(r.Context(), username, rawPassword)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			log.Info("login rejected", slog.String("username", username))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Invalid username or password."))
			return
		}
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not log in"))
		return
	}

	log.Info("login success", slog.String("username", user.Username))
	middlewarectx.SetSessionCookie(w, token)
	flash.Set(w, flash.CategorySuccess, fmt.Sprintf("Welcome back, %s!", user.Username))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
