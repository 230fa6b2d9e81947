package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/recipe-hub/internal/models"
	"github.com/magabrotheeeer/recipe-hub/internal/storage"
)

type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) CreateRecipe(ctx context.Context, recipe models.Recipe) (int, error) {
	args := m.Called(ctx, recipe)
	return args.Int(0), args.Error(1)
}

func (m *MockRecipeRepository) ReadRecipe(ctx context.Context, id int) (*models.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) UpdateRecipe(ctx context.Context, recipe models.Recipe, id int) (int, error) {
	args := m.Called(ctx, recipe, id)
	return args.Int(0), args.Error(1)
}

func (m *MockRecipeRepository) RemoveRecipe(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockRecipeRepository) ListRecipes(ctx context.Context, category *string) ([]*models.Recipe, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) ListRecentRecipes(ctx context.Context, limit int) ([]*models.Recipe, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) ListRecipesByOwner(ctx context.Context, userUID string) ([]*models.Recipe, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Recipe), args.Error(1)
}

// fakeCache держит значения в памяти, повторяя JSON-кодирование настоящего кеша.
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(key string, result any) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, result)
}

func (c *fakeCache) Set(key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *fakeCache) Invalidate(key string) error {
	delete(c.data, key)
	return nil
}

func newTestService(repo RecipeRepository, cache Cache) *RecipeService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewRecipeService(repo, cache, logger)
}

func validForm() models.RecipeForm {
	return models.RecipeForm{
		Title:        "Борщ",
		Description:  "Классический свекольный суп",
		Ingredients:  "свекла, капуста, картофель",
		Instructions: "варить час",
		PrepTime:     "20",
		CookTime:     "60",
		Servings:     "4",
		Category:     "soup",
	}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(repo *MockRecipeRepository)
		userUID   string
		wantErr   error
	}{
		{
			name: "владелец рецепта",
			mockSetup: func(repo *MockRecipeRepository) {
				repo.On("ReadRecipe", mock.Anything, 1).
					Return(&models.Recipe{ID: 1, UserUID: "uid-123"}, nil)
			},
			userUID: "uid-123",
			wantErr: nil,
		},
		{
			name: "чужой рецепт",
			mockSetup: func(repo *MockRecipeRepository) {
				repo.On("ReadRecipe", mock.Anything, 1).
					Return(&models.Recipe{ID: 1, UserUID: "uid-123"}, nil)
			},
			userUID: "uid-456",
			wantErr: ErrNotOwner,
		},
		{
			name: "рецепт не найден",
			mockSetup: func(repo *MockRecipeRepository) {
				repo.On("ReadRecipe", mock.Anything, 1).
					Return(nil, storage.ErrRecipeNotFound)
			},
			userUID: "uid-123",
			wantErr: storage.ErrRecipeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRecipeRepository)
			tt.mockSetup(repo)
			svc := newTestService(repo, newFakeCache())

			err := svc.Authorize(context.Background(), 1, tt.userUID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreate(t *testing.T) {
	repo := new(MockRecipeRepository)
	cache := newFakeCache()
	svc := newTestService(repo, cache)

	repo.On("CreateRecipe", mock.Anything, mock.MatchedBy(func(r models.Recipe) bool {
		return r.Title == "Борщ" &&
			r.UserUID == "uid-123" &&
			r.PrepTime != nil && *r.PrepTime == 20 &&
			r.Category != nil && *r.Category == "soup"
	})).Return(7, nil)

	id, err := svc.Create(context.Background(), "uid-123", validForm())
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.Contains(t, cache.data, "recipe:7")
}

func TestCreate_EmptyOptionalFields(t *testing.T) {
	repo := new(MockRecipeRepository)
	svc := newTestService(repo, newFakeCache())

	form := validForm()
	form.PrepTime = ""
	form.CookTime = ""
	form.Servings = ""
	form.Category = ""

	repo.On("CreateRecipe", mock.Anything, mock.MatchedBy(func(r models.Recipe) bool {
		return r.PrepTime == nil && r.CookTime == nil && r.Servings == nil && r.Category == nil
	})).Return(8, nil)

	id, err := svc.Create(context.Background(), "uid-123", form)
	require.NoError(t, err)
	assert.Equal(t, 8, id)
}

func TestCreate_InvalidNumber(t *testing.T) {
	repo := new(MockRecipeRepository)
	svc := newTestService(repo, newFakeCache())

	form := validForm()
	form.Servings = "four"

	_, err := svc.Create(context.Background(), "uid-123", form)
	assert.ErrorIs(t, err, ErrInvalidNumber)
	repo.AssertNotCalled(t, "CreateRecipe", mock.Anything, mock.Anything)
}

func TestRead_CacheMissThenHit(t *testing.T) {
	repo := new(MockRecipeRepository)
	cache := newFakeCache()
	svc := newTestService(repo, cache)

	stored := &models.Recipe{ID: 5, Title: "Борщ", UserUID: "uid-123"}
	repo.On("ReadRecipe", mock.Anything, 5).Return(stored, nil).Once()

	first, err := svc.Read(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Борщ", first.Title)

	// повторное чтение обслуживается кешем, репозиторий не вызывается
	second, err := svc.Read(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Борщ", second.Title)
	repo.AssertNumberOfCalls(t, "ReadRecipe", 1)
}

func TestRead_NotFound(t *testing.T) {
	repo := new(MockRecipeRepository)
	svc := newTestService(repo, newFakeCache())

	repo.On("ReadRecipe", mock.Anything, 404).Return(nil, storage.ErrRecipeNotFound)

	_, err := svc.Read(context.Background(), 404)
	assert.ErrorIs(t, err, storage.ErrRecipeNotFound)
}

func TestUpdate_InvalidatesCache(t *testing.T) {
	repo := new(MockRecipeRepository)
	cache := newFakeCache()
	require.NoError(t, cache.Set("recipe:5", &models.Recipe{ID: 5, Title: "старое"}, time.Hour))
	svc := newTestService(repo, cache)

	repo.On("UpdateRecipe", mock.Anything, mock.Anything, 5).Return(1, nil)

	res, err := svc.Update(context.Background(), validForm(), 5)
	require.NoError(t, err)
	assert.Equal(t, 1, res)
	assert.NotContains(t, cache.data, "recipe:5")
}

func TestRemove_InvalidatesCache(t *testing.T) {
	repo := new(MockRecipeRepository)
	cache := newFakeCache()
	require.NoError(t, cache.Set("recipe:5", &models.Recipe{ID: 5}, time.Hour))
	svc := newTestService(repo, cache)

	repo.On("RemoveRecipe", mock.Anything, 5).Return(1, nil)

	count, err := svc.Remove(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NotContains(t, cache.data, "recipe:5")
}

func TestList_CategoryFilter(t *testing.T) {
	repo := new(MockRecipeRepository)
	svc := newTestService(repo, newFakeCache())

	repo.On("ListRecipes", mock.Anything, (*string)(nil)).
		Return([]*models.Recipe{{ID: 1}, {ID: 2}}, nil)
	repo.On("ListRecipes", mock.Anything, mock.MatchedBy(func(c *string) bool {
		return c != nil && *c == "soup"
	})).Return([]*models.Recipe{{ID: 1}}, nil)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	soups, err := svc.List(context.Background(), "soup")
	require.NoError(t, err)
	assert.Len(t, soups, 1)
}

func TestListRecent(t *testing.T) {
	repo := new(MockRecipeRepository)
	svc := newTestService(repo, newFakeCache())

	repo.On("ListRecentRecipes", mock.Anything, RecentLimit).
		Return([]*models.Recipe{{ID: 3}, {ID: 2}, {ID: 1}}, nil)

	recipes, err := svc.ListRecent(context.Background())
	require.NoError(t, err)
	assert.Len(t, recipes, 3)
	repo.AssertExpectations(t)
}
