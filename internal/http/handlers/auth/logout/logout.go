// Package logout реализует HTTP-обработчик выхода: отзывает все bearer-токены
// действующего пользователя разом.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/classroom-roster/internal/http/middlewarectx"
	"github.com/magabrotheeeer/classroom-roster/internal/http/response"
	"github.com/magabrotheeeer/classroom-roster/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс отзыва сессий пользователя.
type Service interface {
	Logout(ctx context.Context, userID int) (int, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

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

	count, err := h.service.Logout(r.Context(), caller.ID)
	if err != nil {
		log.Error("failed to revoke sessions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("sessions revoked", slog.Int("count", count), slog.String("email", caller.Email))
	render.JSON(w, r, response.OKWithData("you are logged out", caller))
}
