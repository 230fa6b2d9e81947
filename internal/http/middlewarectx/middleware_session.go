// Package middlewarectx содержит HTTP middleware для проверки сессии пользователя.
//
// SessionAuth проверяет наличие и валидность токена сессии в cookie,
// и в случае успеха добавляет в контекст имя пользователя и его uid
// для дальнейшего использования в обработчиках.
//
// Неавторизованный запрос получает уведомление и редирект на страницу входа,
// обёрнутый обработчик при этом не вызывается.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/recipe-hub/internal/lib/flash"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/jwt"
	"github.com/magabrotheeeer/recipe-hub/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// User — ключ для имени пользователя в контексте
	User Key = "username"
	// UserUID — ключ для uid пользователя в контексте
	UserUID Key = "user_uid"
)

// SessionCookieName имя cookie, в которой хранится токен сессии.
const SessionCookieName = "session"

// SessionParser описывает интерфейс разбора токена сессии.
type SessionParser interface {
	ParseToken(tokenStr string) (*jwt.SessionClaims, error)
}

// SessionAuth возвращает HTTP middleware, который проверяет токен сессии в cookie.
//
// Если токен валиден, добавляет имя пользователя и uid в контекст запроса,
// иначе устанавливает уведомление и редиректит на /login.
// Наличие валидной сессии — единственная проверка.
func SessionAuth(maker SessionParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionAuth"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				log.Info("no session cookie, redirecting to login")
				flash.Set(w, flash.CategoryWarning, "Please log in to access this page.")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			claims, err := maker.ParseToken(cookie.Value)
			if err != nil {
				log.Error("invalid session token", sl.Err(err))
				flash.Set(w, flash.CategoryWarning, "Please log in to access this page.")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), User, claims.Username)
			ctx = context.WithValue(ctx, UserUID, claims.UserUID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SetSessionCookie устанавливает cookie с токеном сессии.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}

// ClearSessionCookie безусловно гасит cookie сессии.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
