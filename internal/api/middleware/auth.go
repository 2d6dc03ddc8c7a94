package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	// RoleAdmin роль администратора организации
	RoleAdmin = "admin"

	msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"
)

type contextKey string

const (
	userIDKey  contextKey = "user_id"
	isAdminKey contextKey = "is_admin"
)

// Auth достает пользователя из заголовков X-User-ID и X-User-Role.
// Аутентификация выполняется шлюзом перед сервисом
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		isAdmin := strings.EqualFold(strings.TrimSpace(r.Header.Get(HeaderUserRole)), RoleAdmin)

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, isAdminKey, isAdmin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя, проставленный Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// IsAdmin true, если запрос пришёл от администратора
func IsAdmin(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(isAdminKey).(bool)
	return isAdmin
}

// OptionalAuth как Auth, но пропускает запрос без пользователя.
// Некорректный X-User-ID по-прежнему отклоняется
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(HeaderUserID) == "" {
			next.ServeHTTP(w, r)
			return
		}
		Auth(next).ServeHTTP(w, r)
	})
}
