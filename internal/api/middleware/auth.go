package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/codehunter/hotelbooking/internal/api/handlers"
)

// HeaderGuestID заголовок с идентификатором гостя
// Аутентификацию выполняет внешний identity provider, сюда приходит
// уже проверенный идентификатор
const HeaderGuestID = "X-Guest-ID"

type contextKey string

const guestIDKey contextKey = "guestID"

// Auth проверяет наличие X-Guest-ID и кладет его в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderGuestID)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-Guest-ID")
			return
		}

		guestID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || guestID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный X-Guest-ID")
			return
		}

		ctx := context.WithValue(r.Context(), guestIDKey, guestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetGuestID извлекает идентификатор гостя из контекста
func GetGuestID(ctx context.Context) (int64, bool) {
	guestID, ok := ctx.Value(guestIDKey).(int64)
	return guestID, ok
}
