// Package storage реализует хранилище данных на основе PostgreSQL
// для управления рецептами и пользователями. Предоставляет методы
// создания, чтения, обновления и удаления записей, а также
// каскадное удаление пользователя вместе с его рецептами.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrUserNotFound возвращается, если пользователь не найден в базе данных.
var ErrUserNotFound = errors.New("user not found")

// ErrRecipeNotFound возвращается, если рецепт не найден в базе данных.
var ErrRecipeNotFound = errors.New("recipe not found")

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с рецептами и пользователями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных:
// соединение отвечает и схема применена.
func (s *Storage) CheckDatabaseReady() error {
	var exists bool
	err := s.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'recipes'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table recipes missing or query error: %w", err)
	}
	return nil
}
