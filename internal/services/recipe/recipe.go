// Package services содержит бизнес-логику для управления рецептами и кешированием.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/magabrotheeeer/recipe-hub/internal/models"
)

// RecentLimit максимальное количество рецептов на главной странице.
const RecentLimit = 6

// ErrNotOwner возвращается, когда действующий пользователь не является владельцем рецепта.
var ErrNotOwner = errors.New("recipe belongs to another user")

// ErrInvalidNumber возвращается, когда опциональное числовое поле формы
// заполнено, но не является целым числом.
var ErrInvalidNumber = errors.New("value is not a whole number")

// RecipeRepository определяет методы для работы с рецептами в хранилище.
type RecipeRepository interface {
	// CreateRecipe добавляет новый рецепт и возвращает его ID.
	CreateRecipe(ctx context.Context, recipe models.Recipe) (int, error)
	// ReadRecipe возвращает рецепт по ID.
	ReadRecipe(ctx context.Context, id int) (*models.Recipe, error)
	// UpdateRecipe обновляет данные рецепта по ID.
	UpdateRecipe(ctx context.Context, recipe models.Recipe, id int) (int, error)
	// RemoveRecipe удаляет рецепт по ID и возвращает количество удалённых записей.
	RemoveRecipe(ctx context.Context, id int) (int, error)
	// ListRecipes возвращает все рецепты, опционально отфильтрованные по категории.
	ListRecipes(ctx context.Context, category *string) ([]*models.Recipe, error)
	// ListRecentRecipes возвращает не более limit последних рецептов.
	ListRecentRecipes(ctx context.Context, limit int) ([]*models.Recipe, error)
	// ListRecipesByOwner возвращает все рецепты пользователя.
	ListRecipesByOwner(ctx context.Context, userUID string) ([]*models.Recipe, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// RecipeService реализует бизнес-логику работы с рецептами, включая кеширование
// и проверку владения.
type RecipeService struct {
	repo  RecipeRepository
	cache Cache
	log   *slog.Logger
}

// NewRecipeService создает новый экземпляр RecipeService.
func NewRecipeService(repo RecipeRepository, cache Cache, log *slog.Logger) *RecipeService {
	return &RecipeService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Authorize проверяет, что рецепт существует и принадлежит пользователю.
// Возвращает storage.ErrRecipeNotFound либо ErrNotOwner.
func (s *RecipeService) Authorize(ctx context.Context, id int, userUID string) error {
	recipe, err := s.repo.ReadRecipe(ctx, id)
	if err != nil {
		return err
	}
	if recipe.UserUID != userUID {
		return ErrNotOwner
	}
	return nil
}

// Create создает новый рецепт, владельцем становится пользователь сессии.
func (s *RecipeService) Create(ctx context.Context, userUID string, form models.RecipeForm) (int, error) {
	recipe, err := recipeFromForm(form)
	if err != nil {
		return 0, err
	}
	recipe.UserUID = userUID

	id, err := s.repo.CreateRecipe(ctx, *recipe)
	if err != nil {
		return 0, err
	}

	s.log.Info("created new recipe", slog.Int("id", id))

	cacheKey := fmt.Sprintf("recipe:%d", id)
	if err := s.cache.Set(cacheKey, recipe, time.Hour); err != nil {
		s.log.Warn("failed to cache recipe", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return id, nil
}

// Read возвращает рецепт по ID, используя кеш или репозиторий.
func (s *RecipeService) Read(ctx context.Context, id int) (*models.Recipe, error) {
	var result *models.Recipe
	cacheKey := fmt.Sprintf("recipe:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found && result != nil {
		return result, nil
	}
	result, err = s.repo.ReadRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Update перезаписывает все изменяемые поля рецепта и обновляет кеш.
// Проверка владения выполняется обработчиком через Authorize до вызова.
func (s *RecipeService) Update(ctx context.Context, form models.RecipeForm, id int) (int, error) {
	recipe, err := recipeFromForm(form)
	if err != nil {
		return 0, err
	}

	res, err := s.repo.UpdateRecipe(ctx, *recipe, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated recipe in storage", slog.Int("id", id))

	cacheKey := fmt.Sprintf("recipe:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return res, nil
}

// Remove удаляет рецепт по ID и инвалидирует кеш.
// Проверка владения выполняется обработчиком через Authorize до вызова.
func (s *RecipeService) Remove(ctx context.Context, id int) (int, error) {
	cacheKey := fmt.Sprintf("recipe:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	count, err := s.repo.RemoveRecipe(ctx, id)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// List возвращает все рецепты от новых к старым.
// Непустая категория означает фильтр по точному совпадению.
func (s *RecipeService) List(ctx context.Context, category string) ([]*models.Recipe, error) {
	var categoryPtr *string
	if category != "" {
		categoryPtr = &category
	}
	return s.repo.ListRecipes(ctx, categoryPtr)
}

// ListRecent возвращает последние рецепты для главной страницы.
func (s *RecipeService) ListRecent(ctx context.Context) ([]*models.Recipe, error) {
	return s.repo.ListRecentRecipes(ctx, RecentLimit)
}

// ListByOwner возвращает рецепты пользователя от новых к старым.
func (s *RecipeService) ListByOwner(ctx context.Context, userUID string) ([]*models.Recipe, error) {
	return s.repo.ListRecipesByOwner(ctx, userUID)
}

// recipeFromForm конвертирует данные формы в доменную модель.
// Пустая строка в числовом поле означает отсутствие значения.
func recipeFromForm(form models.RecipeForm) (*models.Recipe, error) {
	prepTime, err := parseOptionalInt(form.PrepTime)
	if err != nil {
		return nil, fmt.Errorf("invalid prep time: %w", ErrInvalidNumber)
	}
	cookTime, err := parseOptionalInt(form.CookTime)
	if err != nil {
		return nil, fmt.Errorf("invalid cook time: %w", ErrInvalidNumber)
	}
	servings, err := parseOptionalInt(form.Servings)
	if err != nil {
		return nil, fmt.Errorf("invalid servings: %w", ErrInvalidNumber)
	}

	var category *string
	if form.Category != "" {
		category = &form.Category
	}

	return &models.Recipe{
		Title:        form.Title,
		Description:  form.Description,
		Ingredients:  form.Ingredients,
		Instructions: form.Instructions,
		PrepTime:     prepTime,
		CookTime:     cookTime,
		Servings:     servings,
		Category:     category,
	}, nil
}

func parseOptionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
