// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Handler принимает form-encoded запрос с данными учётной записи, проверяет
// заполненность полей и совпадение паролей, делегирует создание пользователя
// сервису аутентификации и при успехе редиректит на страницу входа.
package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	authservice "github.com/magabrotheeeer/recipe-hub/internal/services/auth"

	"github.com/magabrotheeeer/recipe-hub/internal/http/response"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/flash"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/sl"
)

// Request — входные данные формы регистрации.
type Request struct {
	Username        string `validate:"required"`
	Email           string `validate:"required"`
	Password        string `validate:"required"`
	ConfirmPassword string
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, username, email, rawPassword string) (string, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики регистрации
	validate *validator.Validate // Валидатор входных данных
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP обрабатывает GET и POST запросы на /register.
//
// Порядок проверок: заполненность полей, совпадение паролей,
// занятость имени пользователя, занятость почты. При любой ошибке
// никакая запись не создаётся.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

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

	req := Request{
		Username:        r.PostFormValue("username"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("registration form incomplete", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("All fields are required."))
		return
	}

	if req.Password != req.ConfirmPassword {
		log.Info("passwords do not match")
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("Passwords do not match."))
		return
	}

	_, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrUsernameTaken):
			log.Info("username already exists", slog.String("username", req.Username))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("Username already exists."))
		case errors.Is(err, authservice.ErrEmailTaken):
			log.Info("email already registered")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("Email already registered."))
		default:
			log.Error("registration failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register user"))
		}
		return
	}

	log.Info("user registered", slog.String("username", req.Username))
	flash.Set(w, flash.CategorySuccess, "Registration successful! Please log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
