// Package enroll реализует HTTP-обработчик записи члена клуба на занятие.
//
// Контроль вместимости выполняется в хранилище атомарно: две параллельные
// записи на последнее место не переполнят занятие.
package enroll

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/dparedesb/gymcontrol/internal/http/response"
	"github.com/dparedesb/gymcontrol/internal/lib/sl"
	"github.com/dparedesb/gymcontrol/internal/models"
	"github.com/dparedesb/gymcontrol/internal/storage/repository"
)

// Handler управляет HTTP-запросами записи на занятия.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики записи на занятие.
type Service interface {
	Enroll(ctx context.Context, classID int64, userUID string) error
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
// @Summary Записать на занятие
// @Description Записывает члена клуба на занятие, если есть свободные места.
// @Tags Classes
// @Accept  json
// @Produce  json
// @Param id path int true "ID занятия"
// @Param request body models.DummyEnrollment true "UID члена клуба"
// @Success 200 {object} map[string]any "Успешная запись"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Занятие не найдено"
// @Failure 409 {object} response.ErrorResponse "Свободных мест нет"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /classes/{id}/enroll [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.classes.enroll"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid class id", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid class id"))
		return
	}

	var req models.DummyEnrollment
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

	if err := h.service.Enroll(r.Context(), id, req.UserUID); err != nil {
		switch {
		case errors.Is(err, repository.ErrClassFull):
			log.Error("class session is full", slog.Int64("class_id", id))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("class session is full"))
		case errors.Is(err, repository.ErrNotFound):
			log.Error("class session not found", slog.Int64("class_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("class session not found"))
		default:
			log.Error("failed to enroll", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not enroll"))
		}
		return
	}

	log.Info("enrolled in class", slog.Int64("class_id", id), slog.String("user_uid", req.UserUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"class_id": id,
		"user_uid": req.UserUID,
	}))
}
