// Package services содержит бизнес-логику для управления платежами.
package services

import (
	"context"
	"log/slog"

	"github.com/dparedesb/gymcontrol/internal/cache"
	"github.com/dparedesb/gymcontrol/internal/lib/sl"
	"github.com/dparedesb/gymcontrol/internal/models"
)

// PaymentRepository определяет методы для работы с платежами в хранилище.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, p models.Payment) (int64, error)
	ListPayments(ctx context.Context, userUID string, limit, offset int) ([]*models.Payment, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status string) (int, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Invalidate(key string) error
}

// PaymentService реализует бизнес-логику работы с платежами.
type PaymentService struct {
	repo  PaymentRepository
	cache Cache
	log   *slog.Logger
}

// NewPaymentService создает новый экземпляр PaymentService.
func NewPaymentService(repo PaymentRepository, cache Cache, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create регистрирует платёж и возвращает его ID. Завершённый платёж
// сбрасывает кеш срезов плательщика: следующая валидация увидит его сразу.
func (s *PaymentService) Create(ctx context.Context, req models.DummyPayment) (int64, error) {
	p := models.Payment{
		UserUID:      req.UserUID,
		MembershipID: req.MembershipID,
		Amount:       req.Amount,
		Method:       req.Method,
		Status:       req.Status,
	}
	id, err := s.repo.CreatePayment(ctx, p)
	if err != nil {
		return 0, err
	}
	if req.Status == models.PaymentCompleted {
		s.invalidateSnapshots(ctx, req.UserUID)
	}
	return id, nil
}

// List возвращает платежи пользователя с пагинацией.
func (s *PaymentService) List(ctx context.Context, userUID string, limit, offset int) ([]*models.Payment, error) {
	return s.repo.ListPayments(ctx, userUID, limit, offset)
}

// SetStatus переводит платёж в новый статус.
func (s *PaymentService) SetStatus(ctx context.Context, id int64, userUID, status string) (int, error) {
	n, err := s.repo.UpdatePaymentStatus(ctx, id, status)
	if err != nil {
		return 0, err
	}
	s.invalidateSnapshots(ctx, userUID)
	return n, nil
}

func (s *PaymentService) invalidateSnapshots(ctx context.Context, userUID string) {
	u, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		s.log.Warn("failed to load user for cache invalidation", sl.Err(err))
		return
	}
	if u.Cedula != "" {
		if err := s.cache.Invalidate(cache.SnapshotKey(models.ValidationByCedula, u.Cedula)); err != nil {
			s.log.Warn("failed to invalidate snapshot cache", sl.Err(err))
		}
	}
	if u.Holler != "" {
		if err := s.cache.Invalidate(cache.SnapshotKey(models.ValidationByHoller, u.Holler)); err != nil {
			s.log.Warn("failed to invalidate snapshot cache", sl.Err(err))
		}
	}
}
