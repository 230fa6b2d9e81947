// Package recipehub собирает и запускает основное приложение:
// хранилище, миграции, кеш, сервисы и HTTP-сервер.
package recipehub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/recipe-hub/internal/cache"
	"github.com/magabrotheeeer/recipe-hub/internal/config"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/jwt"
	"github.com/magabrotheeeer/recipe-hub/internal/migrations"
	authservice "github.com/magabrotheeeer/recipe-hub/internal/services/auth"
	recipeservice "github.com/magabrotheeeer/recipe-hub/internal/services/recipe"
	"github.com/magabrotheeeer/recipe-hub/internal/storage"
)

// App инкапсулирует HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

// New инициализирует зависимости приложения и собирает HTTP-сервер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	sessionMaker := jwt.NewJWTMaker(cfg.SecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, sessionMaker)
	recipeService := recipeservice.NewRecipeService(db, cacheRedis, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, db, authService, recipeService, sessionMaker)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до остановки контекста
// или ошибки сервера. Остановка выполняется мягко.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		_ = a.cache.Db.Close()
		return err
	}
}
