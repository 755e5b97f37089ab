// Package services содержит бизнес-логику отчётов о состоянии абонементов.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dparedesb/gymcontrol/internal/membership"
	"github.com/dparedesb/gymcontrol/internal/models"
)

// ReportRepository определяет методы для выборки данных отчёта из хранилища.
type ReportRepository interface {
	ListMemberSnapshots(ctx context.Context, limit, offset int) ([]models.MemberSnapshot, error)
}

// ReportService строит отчёты по текущему составу членов клуба.
type ReportService struct {
	repo ReportRepository
	now  membership.Clock
	opts membership.Options
	log  *slog.Logger
}

// NewReportService создает новый экземпляр ReportService.
func NewReportService(repo ReportRepository, now membership.Clock, opts membership.Options, log *slog.Logger) *ReportService {
	return &ReportService{
		repo: repo,
		now:  now,
		opts: opts,
		log:  log,
	}
}

// PaymentStatus классифицирует членов клуба по статусу оплаты.
// Дата окончания считается по окну абонемента, statuses сужает строки
// отчёта, expiringSoonDays при значении > 0 переопределяет порог
// "скоро истекает". Корзины считаются по всем членам выбранной страницы
// до фильтрации по статусам.
func (s *ReportService) PaymentStatus(ctx context.Context, statuses []membership.Status, expiringSoonDays, limit, offset int) (membership.Report, error) {
	const op = "services.report.PaymentStatus"

	snaps, err := s.repo.ListMemberSnapshots(ctx, limit, offset)
	if err != nil {
		return membership.Report{}, fmt.Errorf("%s: %w", op, err)
	}

	opts := membership.ClassifyOptions{
		Options:  s.opts,
		Model:    membership.ModelWindow,
		Statuses: statuses,
	}
	if expiringSoonDays > 0 {
		opts.ExpiringSoonDays = expiringSoonDays
	}

	report, err := membership.Classify(snaps, s.now(), opts)
	if err != nil {
		return membership.Report{}, fmt.Errorf("%s: %w", op, err)
	}
	return report, nil
}
