package middleware

import (
	"net/http"

	"github.com/inkfade/IFS-BookingService/internal/api/handlers"
)

// Заголовки аутентификации проставляет API gateway, сервис доверяет
// их значениям.
const (
	// HeaderUserID заголовок с ID аутентифицированного пользователя
	HeaderUserID = "X-User-ID"

	// HeaderUserRole заголовок с ролью пользователя
	HeaderUserRole = "X-User-Role"

	// RoleAdmin значение HeaderUserRole для администратора
	RoleAdmin = "admin"
)

// Auth проверяет наличие заголовка X-User-ID у защищенных маршрутов
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(HeaderUserID) == "" {
			handlers.RespondUnauthorized(w, "требуется аутентификация")
			return
		}

		next.ServeHTTP(w, r)
	})
}
