// Package bycedula реализует HTTP-обработчик валидации доступа по номеру
// cedula на входе в зал.
//
// Ответ всегда содержит решение admit и сообщение для табло турникета.
// Неизвестный идентификатор — отказ с кодом 200: для турникета это
// штатный результат, а не ошибка. Неоднозначный идентификатор — ошибка:
// решение о допуске по нему не принимается.
package bycedula

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/dparedesb/gymcontrol/internal/http/response"
	"github.com/dparedesb/gymcontrol/internal/lib/sl"
	"github.com/dparedesb/gymcontrol/internal/membership"
	"github.com/dparedesb/gymcontrol/internal/storage/repository"
)

// Handler управляет HTTP-запросами валидации по cedula.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики валидации.
type Service interface {
	ValidateByCedula(ctx context.Context, cedula string) (membership.Decision, error)
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
// @Summary Валидация доступа по cedula
// @Description Принимает решение о физическом допуске члена клуба по номеру cedula.
// @Tags Validation
// @Produce  json
// @Param cedula path string true "Номер cedula"
// @Success 200 {object} map[string]any "Решение о допуске"
// @Failure 409 {object} response.ErrorResponse "Неоднозначный идентификатор"
// @Failure 422 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /validate/cedula/{cedula} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.validate.bycedula"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	cedula := chi.URLParam(r, "cedula")
	if err := h.validate.Var(cedula, "required,numeric"); err != nil {
		log.Error("invalid cedula", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid cedula"))
		return
	}

	decision, err := h.service.ValidateByCedula(r.Context(), cedula)
	if err != nil {
		if errors.Is(err, repository.ErrAmbiguousIdentifier) {
			log.Error("ambiguous cedula", slog.String("cedula", cedula))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("identifier matches more than one user"))
			return
		}
		log.Error("failed to validate access", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not validate access"))
		return
	}

	log.Info("access validated",
		slog.Bool("admit", decision.Admit),
		slog.String("status", string(decision.Status)),
	)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"admit":           decision.Admit,
		"status":          decision.Status,
		"display_message": decision.DisplayMessage,
	}))
}
