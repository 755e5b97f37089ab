// Package read реализует HTTP-обработчик чтения карточки члена клуба по UID.
package read

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
	"github.com/dparedesb/gymcontrol/internal/models"
	"github.com/dparedesb/gymcontrol/internal/storage/repository"
)

// Handler управляет HTTP-запросами на чтение карточки члена клуба.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики чтения члена клуба.
type Service interface {
	Read(ctx context.Context, userUID string) (*models.User, error)
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
// @Summary Получить карточку члена клуба
// @Description Возвращает данные члена клуба по UID.
// @Tags Members
// @Produce  json
// @Param uid path string true "UID члена клуба"
// @Success 200 {object} map[string]any "Данные члена клуба"
// @Failure 404 {object} response.ErrorResponse "Член клуба не найден"
// @Failure 422 {object} response.ErrorResponse "Некорректный UID"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /members/{uid} [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid := chi.URLParam(r, "uid")
	if err := h.validate.Var(uid, "required,uuid"); err != nil {
		log.Error("invalid user uid", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid user uid"))
		return
	}

	user, err := h.service.Read(r.Context(), uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrNotFound) {
			log.Error("member not found", slog.String("user_uid", uid))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("member not found"))
			return
		}
		log.Error("failed to read member", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read member"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"member": user,
	}))
}
