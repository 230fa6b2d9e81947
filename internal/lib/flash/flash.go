// Package flash реализует одноразовые уведомления пользователю через cookie.
//
// Уведомление устанавливается перед редиректом и удаляется при первом чтении.
// Формат значения cookie: "<категория>|<текст>", закодированный для URL.
package flash

import (
	"net/http"
	"net/url"
	"strings"
)

// CookieName имя cookie, в которой передаётся уведомление.
const CookieName = "flash"

// Категории уведомлений, соответствующие тону сообщения.
const (
	CategorySuccess = "success"
	CategoryDanger  = "danger"
	CategoryWarning = "warning"
	CategoryInfo    = "info"
)

// Notice представляет одноразовое уведомление пользователю.
type Notice struct {
	Category string // Категория уведомления
	Message  string // Текст уведомления
}

// Set устанавливает уведомление, которое будет показано после редиректа.
func Set(w http.ResponseWriter, category, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    url.QueryEscape(category + "|" + message),
		Path:     "/",
		HttpOnly: true,
	})
}

// Take читает уведомление из запроса и сразу гасит cookie.
// Возвращает nil, если уведомления нет или оно не читается.
func Take(w http.ResponseWriter, r *http.Request) *Notice {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	category, message, found := strings.Cut(value, "|")
	if !found {
		return nil
	}
	return &Notice{Category: category, Message: message}
}
