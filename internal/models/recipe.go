// Package models содержит доменные структуры, описывающие рецепт,
// а также вспомогательные типы для приёма данных из HTML-форм.
package models

import "time"

// Recipe представляет собой основную модель рецепта,
// используемую в бизнес-логике и хранилище.
// Поля PrepTime, CookTime и Servings могут быть nil —
// это означает, что автор их не указал.
type Recipe struct {
	ID           int       // Уникальный идентификатор рецепта
	Title        string    // Название рецепта
	Description  string    // Краткое описание
	Ingredients  string    // Список ингредиентов свободным текстом
	Instructions string    // Пошаговые инструкции свободным текстом
	PrepTime     *int      // Время подготовки в минутах (опционально)
	CookTime     *int      // Время приготовления в минутах (опционально)
	Servings     *int      // Количество порций (опционально)
	Category     *string   // Категория рецепта (опционально)
	CreatedAt    time.Time // Дата создания
	UpdatedAt    time.Time // Дата последнего изменения
	UserUID      string    // Идентификатор пользователя-владельца
}

// RecipeForm используется для приёма данных из form-encoded запроса,
// прежде чем конвертировать их в Recipe.
// Числовые поля приходят строками: пустая строка означает отсутствие значения,
// непустая должна быть целым числом.
type RecipeForm struct {
	Title        string `validate:"required"` // Название рецепта
	Description  string `validate:"required"` // Краткое описание
	Ingredients  string `validate:"required"` // Ингредиенты
	Instructions string `validate:"required"` // Инструкции
	PrepTime     string // Время подготовки в минутах
	CookTime     string // Время приготовления в минутах
	Servings     string // Количество порций
	Category     string // Категория (опционально)
}
