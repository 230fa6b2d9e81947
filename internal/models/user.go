// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и дату создания.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Username     string    // Имя пользователя (уникальное)
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // Хэш пароля пользователя, в открытом виде пароль не хранится
	CreatedAt    time.Time // Дата регистрации
}
