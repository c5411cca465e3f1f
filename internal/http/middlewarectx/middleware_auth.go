// Package middlewarectx содержит HTTP middleware для проверки bearer-токенов
// и прав доступа.
//
// AuthMiddleware проверяет наличие и валидность токена в заголовке Authorization,
// резолвит через сервис аутентификации действующего пользователя и кладёт его
// в контекст запроса для дальнейшего использования в обработчиках.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/classroom-roster/internal/http/response"
	"github.com/magabrotheeeer/classroom-roster/internal/lib/sl"
	"github.com/magabrotheeeer/classroom-roster/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// Caller — ключ, под которым действующий пользователь лежит в контексте.
const Caller Key = "caller"

// Service описывает интерфейс сервиса для валидации bearer-токена.
type Service interface {
	ValidateToken(ctx context.Context, token string) (*models.User, error)
}

// CallerFromContext достаёт действующего пользователя из контекста запроса.
func CallerFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(Caller).(*models.User)
	return user, ok && user != nil
}

// AuthMiddleware возвращает HTTP middleware, который проверяет токен в заголовке Authorization.
//
// Если токен валиден и сессия активна, добавляет пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func AuthMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"
			authHeader := r.Header.Get("Authorization")

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := authService.ValidateToken(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			ctx := context.WithValue(r.Context(), Caller, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
