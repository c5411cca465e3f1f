// Package register реализует HTTP-обработчик регистрации нового ученика
// преподавателем.
//
// Handler принимает JSON-запрос с данными ученика, валидирует их (включая
// совпадение пароля с подтверждением и уникальность email), извлекает
// преподавателя из контекста и делегирует создание записи сервису.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/classroom-roster/internal/http/middlewarectx"
	"github.com/magabrotheeeer/classroom-roster/internal/http/response"
	"github.com/magabrotheeeer/classroom-roster/internal/lib/sl"
	"github.com/magabrotheeeer/classroom-roster/internal/models"
	rosterservice "github.com/magabrotheeeer/classroom-roster/internal/services/roster"
)

// Handler управляет HTTP-запросами на регистрацию учеников.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики регистрации
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики регистрации ученика.
type Service interface {
	Register(ctx context.Context, caller *models.User, req models.DummyRegister) (*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация нового ученика
// @Description Создаёт нового ученика, привязанного к вызывающему преподавателю.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body models.DummyRegister true "Данные нового ученика"
// @Success 200 {object} response.Response "Ученик создан"
// @Failure 400 {object} response.Response "Некорректный JSON"
// @Failure 401 {object} response.Response "Нет прав"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyRegister
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	caller, ok := middlewarectx.CallerFromContext(r.Context())
	if !ok {
		log.Error("caller missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	user, err := h.service.Register(r.Context(), caller, req)
	if err != nil {
		if errors.Is(err, rosterservice.ErrEmailTaken) {
			log.Error("email already taken", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("email has already been taken"))
			return
		}
		log.Error("failed to register student", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create user"))
		return
	}

	log.Info("success to register student", slog.Int("id", user.ID))
	render.JSON(w, r, response.OKWithData("user created", user))
}
