// Package byholler реализует HTTP-обработчик валидации доступа по коду
// бейджа (holler) на входе в зал.
package byholler

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

// Handler управляет HTTP-запросами валидации по holler.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики валидации.
type Service interface {
	ValidateByHoller(ctx context.Context, holler string) (membership.Decision, error)
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
// @Summary Валидация доступа по holler
// @Description Принимает решение о физическом допуске члена клуба по коду бейджа.
// @Tags Validation
// @Produce  json
// @Param holler path string true "Код бейджа"
// @Success 200 {object} map[string]any "Решение о допуске"
// @Failure 409 {object} response.ErrorResponse "Неоднозначный идентификатор"
// @Failure 422 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /validate/holler/{holler} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.validate.byholler"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	holler := chi.URLParam(r, "holler")
	if err := h.validate.Var(holler, "required,alphanum"); err != nil {
		log.Error("invalid holler", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid holler"))
		return
	}

	decision, err := h.service.ValidateByHoller(r.Context(), holler)
	if err != nil {
		if errors.Is(err, repository.ErrAmbiguousIdentifier) {
			log.Error("ambiguous holler", slog.String("holler", holler))
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
