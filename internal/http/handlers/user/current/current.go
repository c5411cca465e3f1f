// Package current реализует HTTP-обработчик, возвращающий учётную запись
// действующего пользователя по его bearer-токену.
package current

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/classroom-roster/internal/http/middlewarectx"
	"github.com/magabrotheeeer/classroom-roster/internal/http/response"
)

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP отдаёт запись пользователя как есть, без конверта —
// доступно любому владельцу валидного токена.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.current"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	caller, ok := middlewarectx.CallerFromContext(r.Context())
	if !ok {
		log.Error("caller missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	log.Info("current user resolved", slog.String("email", caller.Email))
	render.JSON(w, r, caller)
}
