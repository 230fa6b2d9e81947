// Package create реализует HTTP-обработчик добавления нового рецепта.
//
// Маршрут закрыт шлюзом сессии: владельцем созданного рецепта становится
// пользователь текущей сессии. Обязательны название, описание, ингредиенты
// и инструкции; числовые поля опциональны и приходят строками.
package create

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	recipeservice "github.com/magabrotheeeer/recipe-hub/internal/services/recipe"

	"github.com/magabrotheeeer/recipe-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/recipe-hub/internal/http/response"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/flash"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/sl"
	"github.com/magabrotheeeer/recipe-hub/internal/models"
)

// Service описывает интерфейс бизнес-логики создания рецепта.
type Service interface {
	Create(ctx context.Context, userUID string, form models.RecipeForm) (int, error)
}

// Handler обрабатывает HTTP-запросы на добавление рецепта.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики создания рецептов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP обрабатывает GET и POST запросы на /add-recipe.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.create"

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

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid form data"))
		return
	}

	form := models.RecipeForm{
		Title:        r.PostFormValue("title"),
		Description:  r.PostFormValue("description"),
		Ingredients:  r.PostFormValue("ingredients"),
		Instructions: r.PostFormValue("instructions"),
		PrepTime:     r.PostFormValue("prep_time"),
		CookTime:     r.PostFormValue("cook_time"),
		Servings:     r.PostFormValue("servings"),
		Category:     r.PostFormValue("category"),
	}

	if err := h.validate.Struct(form); err != nil {
		log.Info("recipe form invalid", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("Please fill in all required fields."))
		return
	}

	id, err := h.service.Create(r.Context(), userUID, form)
	if err != nil {
		if errors.Is(err, recipeservice.ErrInvalidNumber) {
			log.Info("recipe form has non-numeric time or servings", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("Time and serving fields must be whole numbers."))
			return
		}
		log.Error("failed to create recipe", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create recipe"))
		return
	}

	log.Info("recipe created", slog.Int("id", id))
	flash.Set(w, flash.CategorySuccess, "Recipe added successfully!")
	http.Redirect(w, r, fmt.Sprintf("/recipe/%d", id), http.StatusSeeOther)
}
