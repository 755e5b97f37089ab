// Package paymentstatus реализует HTTP-обработчик отчёта по статусам оплаты.
//
// Отчёт классифицирует членов клуба по окну абонемента. Query-параметр
// status (можно несколько) сужает строки отчёта, expiring_soon_days
// переопределяет порог "скоро истекает" для этого запроса.
package paymentstatus

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/dparedesb/gymcontrol/internal/http/response"
	"github.com/dparedesb/gymcontrol/internal/lib/sl"
	"github.com/dparedesb/gymcontrol/internal/membership"
)

// Handler управляет HTTP-запросами отчёта по статусам оплаты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отчёта.
type Service interface {
	PaymentStatus(ctx context.Context, statuses []membership.Status, expiringSoonDays, limit, offset int) (membership.Report, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отчёт по статусам оплаты
// @Description Классифицирует членов клуба по статусу оплаты. Возвращает счётчики по корзинам и строки отчёта.
// @Tags Reports
// @Produce  json
// @Param status query []string false "Фильтр по статусам (можно несколько)"
// @Param expiring_soon_days query int false "Порог статуса EXPIRING_SOON в днях"
// @Param limit query int false "Размер страницы (по умолчанию 100)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} map[string]any "Отчёт"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /reports/payment-status [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.paymentstatus"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var statuses []membership.Status
	for _, s := range r.URL.Query()["status"] {
		statuses = append(statuses, membership.Status(s))
	}

	expiringSoonDays, err := strconv.Atoi(r.URL.Query().Get("expiring_soon_days"))
	if err != nil || expiringSoonDays < 0 {
		expiringSoonDays = 0
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 100
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	report, err := h.service.PaymentStatus(r.Context(), statuses, expiringSoonDays, limit, offset)
	if err != nil {
		log.Error("failed to build payment status report", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build report"))
		return
	}

	log.Info("payment status report built", "rows", len(report.Rows))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"buckets": report.Buckets,
		"rows":    report.Rows,
	}))
}
