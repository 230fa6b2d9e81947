// Package recipehub предоставляет маршруты для основного приложения.
package recipehub

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/recipe-hub/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/recipe-hub/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/recipe-hub/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/recipe-hub/internal/http/handlers/health"
	"github.com/magabrotheeeer/recipe-hub/internal/http/handlers/profile"
	"github.com/magabrotheeeer/recipe-hub/internal/http/handlers/recipe/create"
	"github.com/magabrotheeeer/recipe-hub/internal/http/handlers/recipe/index"
	"github.com/magabrotheeeer/recipe-hub/internal/http/handlers/recipe/list"
	"github.com/magabrotheeeer/recipe-hub/internal/http/handlers/recipe/read"
	"github.com/magabrotheeeer/recipe-hub/internal/http/handlers/recipe/remove"
	"github.com/magabrotheeeer/recipe-hub/internal/http/handlers/recipe/update"
	"github.com/magabrotheeeer/recipe-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/recipe-hub/internal/services/auth"
	recipeservice "github.com/magabrotheeeer/recipe-hub/internal/services/recipe"
	"github.com/magabrotheeeer/recipe-hub/internal/storage"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *storage.Storage, authService *authservice.AuthService, recipeService *recipeservice.RecipeService, sessionMaker jwt.Maker) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	registerHandler := register.New(logger, authService)
	loginHandler := login.New(logger, authService)

	r.Get("/", index.New(logger, recipeService).ServeHTTP)
	r.Get("/register", registerHandler.ServeHTTP)
	r.Post("/register", registerHandler.ServeHTTP)
	r.Get("/login", loginHandler.ServeHTTP)
	r.Post("/login", loginHandler.ServeHTTP)
	r.Get("/logout", logout.New(logger).ServeHTTP)
	r.Get("/recipes", list.New(logger, recipeService).ServeHTTP)
	r.Get("/recipe/{id}", read.New(logger, recipeService).ServeHTTP)

	// Группа, закрытая шлюзом сессии
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.SessionAuth(sessionMaker, logger))

		createHandler := create.New(logger, recipeService)
		updateHandler := update.New(logger, recipeService)

		r.Get("/add-recipe", createHandler.ServeHTTP)
		r.Post("/add-recipe", createHandler.ServeHTTP)
		r.Get("/profile", profile.New(logger, authService, recipeService).ServeHTTP)
		r.Get("/recipe/{id}/edit", updateHandler.ServeHTTP)
		r.Post("/recipe/{id}/edit", updateHandler.ServeHTTP)
		r.Post("/recipe/{id}/delete", remove.New(logger, recipeService).ServeHTTP)
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
}
