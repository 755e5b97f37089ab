// Package create реализует HTTP-обработчик создания группового занятия.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/dparedesb/gymcontrol/internal/http/response"
	"github.com/dparedesb/gymcontrol/internal/lib/sl"
	"github.com/dparedesb/gymcontrol/internal/models"
	classservice "github.com/dparedesb/gymcontrol/internal/services/classsession"
	"github.com/dparedesb/gymcontrol/internal/storage/repository"
)

// Handler управляет HTTP-запросами на создание занятий.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания занятия.
type Service interface {
	Create(ctx context.Context, req models.DummyClassSession) (int64, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать занятие
// @Description Создает групповое занятие с ограничением по местам. Даты в формате RFC3339.
// @Tags Classes
// @Accept  json
// @Produce  json
// @Param request body models.DummyClassSession true "Данные занятия"
// @Success 200 {object} map[string]any "Успешное создание"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или интервал времени"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 409 {object} response.ErrorResponse "Пересечение расписания инструктора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /classes [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.classes.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyClassSession
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, classservice.ErrInvalidSchedule) {
			log.Error("invalid class schedule", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("class ends before it starts"))
			return
		}
		if errors.Is(err, repository.ErrScheduleConflict) {
			log.Error("schedule conflict", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("instructor already has a session in this interval"))
			return
		}
		log.Error("failed to create class session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create class session"))
		return
	}

	log.Info("class session created", slog.Int64("class_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"class_id": id,
	}))
}
