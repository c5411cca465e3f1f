// Package profile реализует HTTP-обработчик чтения профиля одного ученика
// вызывающего преподавателя.
//
// Идентификатор ученика передаётся query-параметром id. Ученик из чужого
// списка не находится, даже если такой ID существует.
package profile

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/classroom-roster/internal/http/middlewarectx"
	"github.com/magabrotheeeer/classroom-roster/internal/http/response"
	"github.com/magabrotheeeer/classroom-roster/internal/lib/sl"
	"github.com/magabrotheeeer/classroom-roster/internal/models"
	rosterservice "github.com/magabrotheeeer/classroom-roster/internal/services/roster"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения профиля ученика.
type Service interface {
	Profile(ctx context.Context, caller *models.User, id int) (*models.User, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.profile"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		log.Error("failed to decode id from query", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	caller, ok := middlewarectx.CallerFromContext(r.Context())
	if !ok {
		log.Error("caller missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	user, err := h.service.Profile(r.Context(), caller, id)
	if err != nil {
		if errors.Is(err, rosterservice.ErrUserNotFound) {
			log.Error("student not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to read profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read user profile"))
		return
	}

	log.Info("profile read", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData("this is the user profile", user))
}
