package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/classroom-roster/internal/http/response"
)

// AdminMiddleware пропускает дальше только преподавателей и суперадминов.
// Должен стоять после AuthMiddleware: действующий пользователь берётся из контекста.
// Ученику возвращается 401, как и неаутентифицированному запросу.
func AdminMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := CallerFromContext(r.Context())
			if !ok {
				log.Error("caller missing in context")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			if !caller.IsAdmin() {
				log.Error("access denied, admin role required",
					slog.String("email", caller.Email), slog.String("role", caller.Role))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("access denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
