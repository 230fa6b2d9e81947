// Package update реализует HTTP-обработчик редактирования рецепта.
//
// Маршрут закрыт шлюзом сессии; перед любым действием обработчик явно
// проверяет владение рецептом. Чужой рецепт редактировать нельзя:
// запрос завершается уведомлением и редиректом на страницу рецепта
// без какой-либо мутации.
package update

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
	"github.com/go-playground/validator"

	recipeservice "github.com/magabrotheeeer/recipe-hub/internal/services/recipe"

	"github.com/magabrotheeeer/recipe-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/recipe-hub/internal/http/response"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/flash"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/sl"
	"github.com/magabrotheeeer/recipe-hub/internal/models"
	"github.com/magabrotheeeer/recipe-hub/internal/storage"
)

// Service описывает интерфейс бизнес-логики редактирования рецепта.
type Service interface {
	Authorize(ctx context.Context, id int, userUID string) error
	Read(ctx context.Context, id int) (*models.Recipe, error)
	Update(ctx context.Context, form models.RecipeForm, id int) (int, error)
}

// Handler обрабатывает HTTP-запросы редактирования рецепта.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP обрабатывает GET и POST запросы на /recipe/{id}/edit.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.update"

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
		h.rejectUnauthorized(w, r, log, id, err)
		return
	}

	if r.Method == http.MethodGet {
		recipe, err := h.service.Read(r.Context(), id)
		if err != nil {
			log.Error("failed to read recipe", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not read recipe"))
			return
		}
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"recipe": recipe,
		}))
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

	if _, err := h.service.Update(r.Context(), form, id); err != nil {
		if errors.Is(err, recipeservice.ErrInvalidNumber) {
			log.Info("recipe form has non-numeric time or servings", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("Time and serving fields must be whole numbers."))
			return
		}
		log.Error("failed to update recipe", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update recipe"))
		return
	}

	log.Info("recipe updated", slog.Int("id", id))
	flash.Set(w, flash.CategorySuccess, "Recipe updated successfully!")
	http.Redirect(w, r, fmt.Sprintf("/recipe/%d", id), http.StatusSeeOther)
}

func (h *Handler) rejectUnauthorized(w http.ResponseWriter, r *http.Request, log *slog.Logger, id int, err error) {
	switch {
	case errors.Is(err, storage.ErrRecipeNotFound):
		log.Info("recipe not found", slog.Int("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("recipe not found"))
	case errors.Is(err, recipeservice.ErrNotOwner):
		log.Info("edit rejected, not the owner", slog.Int("id", id))
		flash.Set(w, flash.CategoryDanger, "You can only edit your own recipes.")
		http.Redirect(w, r, fmt.Sprintf("/recipe/%d", id), http.StatusSeeOther)
	default:
		log.Error("failed to authorize", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read recipe"))
	}
}
