package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/recipe-hub/internal/models"
)

// CreateRecipe вставляет новую запись рецепта и возвращает её ID.
func (s *Storage) CreateRecipe(ctx context.Context, recipe models.Recipe) (int, error) {
	const op = "storage.CreateRecipe"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO recipes (title, description, ingredients, instructions,
			      prep_time, cook_time, servings, category, user_uid)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		recipe.Title, recipe.Description, recipe.Ingredients, recipe.Instructions,
		recipe.PrepTime, recipe.CookTime, recipe.Servings, recipe.Category,
		recipe.UserUID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadRecipe возвращает данные рецепта по его ID.
func (s *Storage) ReadRecipe(ctx context.Context, id int) (*models.Recipe, error) {
	const op = "storage.ReadRecipe"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, ingredients, instructions,
			      prep_time, cook_time, servings, category, created_at, updated_at, user_uid
			  FROM recipes WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Recipe
	var prepTime, cookTime, servings sql.NullInt64
	var category sql.NullString
	if err := row.Scan(&result.ID, &result.Title, &result.Description, &result.Ingredients,
		&result.Instructions, &prepTime, &cookTime, &servings, &category,
		&result.CreatedAt, &result.UpdatedAt, &result.UserUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrRecipeNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	fillOptionalFields(&result, prepTime, cookTime, servings, category)
	return &result, nil
}

// UpdateRecipe обновляет данные рецепта по его ID и возвращает количество изменённых строк.
func (s *Storage) UpdateRecipe(ctx context.Context, recipe models.Recipe, id int) (int, error) {
	const op = "storage.UpdateRecipe"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE recipes
			  SET title = $1, description = $2, ingredients = $3, instructions = $4,
			      prep_time = $5, cook_time = $6, servings = $7, category = $8,
			      updated_at = now()
			  WHERE id = $9`
	result, err := s.DB.ExecContext(ctx, query,
		recipe.Title, recipe.Description, recipe.Ingredients, recipe.Instructions,
		recipe.PrepTime, recipe.CookTime, recipe.Servings, recipe.Category, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveRecipe удаляет рецепт по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveRecipe(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveRecipe"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM recipes WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListRecipes возвращает список всех рецептов от новых к старым,
// при непустом фильтре — только рецепты с точно совпадающей категорией.
func (s *Storage) ListRecipes(ctx context.Context, category *string) ([]*models.Recipe, error) {
	const op = "storage.ListRecipes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, ingredients, instructions,
			      prep_time, cook_time, servings, category, created_at, updated_at, user_uid
			  FROM recipes
			  WHERE ($1::text IS NULL OR category = $1)
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanRecipeRows(op, rows)
}

// ListRecentRecipes возвращает не более limit последних рецептов.
func (s *Storage) ListRecentRecipes(ctx context.Context, limit int) ([]*models.Recipe, error) {
	const op = "storage.ListRecentRecipes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, ingredients, instructions,
			      prep_time, cook_time, servings, category, created_at, updated_at, user_uid
			  FROM recipes
			  ORDER BY created_at DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanRecipeRows(op, rows)
}

// ListRecipesByOwner возвращает все рецепты пользователя от новых к старым.
func (s *Storage) ListRecipesByOwner(ctx context.Context, userUID string) ([]*models.Recipe, error) {
	const op = "storage.ListRecipesByOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, ingredients, instructions,
			      prep_time, cook_time, servings, category, created_at, updated_at, user_uid
			  FROM recipes
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanRecipeRows(op, rows)
}

func scanRecipeRows(op string, rows *sql.Rows) ([]*models.Recipe, error) {
	var result []*models.Recipe
	for rows.Next() {
		var item models.Recipe
		var prepTime, cookTime, servings sql.NullInt64
		var category sql.NullString
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Ingredients,
			&item.Instructions, &prepTime, &cookTime, &servings, &category,
			&item.CreatedAt, &item.UpdatedAt, &item.UserUID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		fillOptionalFields(&item, prepTime, cookTime, servings, category)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func fillOptionalFields(r *models.Recipe, prepTime, cookTime, servings sql.NullInt64, category sql.NullString) {
	if prepTime.Valid {
		v := int(prepTime.Int64)
		r.PrepTime = &v
	}
	if cookTime.Valid {
		v := int(cookTime.Int64)
		r.CookTime = &v
	}
	if servings.Valid {
		v := int(servings.Int64)
		r.Servings = &v
	}
	if category.Valid {
		r.Category = &category.String
	}
}
