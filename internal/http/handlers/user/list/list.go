// Package list реализует HTTP-обработчик выдачи списка учеников
// вызывающего преподавателя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/classroom-roster/internal/http/middlewarectx"
	"github.com/magabrotheeeer/classroom-roster/internal/http/response"
	"github.com/magabrotheeeer/classroom-roster/internal/lib/sl"
	"github.com/magabrotheeeer/classroom-roster/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс выборки учеников преподавателя.
type Service interface {
	ListStudents(ctx context.Context, caller *models.User) ([]*models.User, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.list"

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

	users, err := h.service.ListStudents(r.Context(), caller)
	if err != nil {
		log.Error("failed to list students", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list users"))
		return
	}

	log.Info("students listed", slog.Int("count", len(users)))
	render.JSON(w, r, response.OKWithData("this is the list of users", users))
}
