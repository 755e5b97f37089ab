// Package services содержит бизнес-логику для управления абонементами.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dparedesb/gymcontrol/internal/cache"
	"github.com/dparedesb/gymcontrol/internal/lib/sl"
	"github.com/dparedesb/gymcontrol/internal/models"
)

// MembershipRepository определяет методы для работы с абонементами в хранилище.
type MembershipRepository interface {
	CreateMembership(ctx context.Context, m models.Membership) (int64, error)
	ReadMembership(ctx context.Context, id int64) (*models.Membership, error)
	ListMemberships(ctx context.Context, limit, offset int) ([]*models.Membership, error)
	RenewMembership(ctx context.Context, id int64, startDate, endDate time.Time) (int, error)
	UpdateMembershipStatus(ctx context.Context, id int64, status string) (int, error)
	ReadPlan(ctx context.Context, id int64) (*models.Plan, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Invalidate(key string) error
}

// MembershipService реализует бизнес-логику работы с абонементами.
type MembershipService struct {
	repo  MembershipRepository
	cache Cache
	log   *slog.Logger
}

// NewMembershipService создает новый экземпляр MembershipService.
func NewMembershipService(repo MembershipRepository, cache Cache, log *slog.Logger) *MembershipService {
	return &MembershipService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create оформляет новый абонемент: дата окончания выводится из даты начала
// и длительности плана. Возвращает ID созданной записи.
func (s *MembershipService) Create(ctx context.Context, req models.DummyMembership) (int64, error) {
	startDate, err := time.Parse("02-01-2006", req.StartDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start date: %w", err)
	}

	plan, err := s.repo.ReadPlan(ctx, req.PlanID)
	if err != nil {
		return 0, fmt.Errorf("read plan: %w", err)
	}

	m := models.Membership{
		UserUID:   req.UserUID,
		PlanID:    plan.ID,
		StartDate: startDate,
		EndDate:   startDate.AddDate(0, 0, plan.DurationDays),
		Status:    models.MembershipActive,
	}
	id, err := s.repo.CreateMembership(ctx, m)
	if err != nil {
		return 0, err
	}
	s.invalidateSnapshots(ctx, req.UserUID)
	return id, nil
}

// Renew продлевает абонемент с указанной даты на длительность его плана.
func (s *MembershipService) Renew(ctx context.Context, id int64, startDateStr string) (int, error) {
	startDate, err := time.Parse("02-01-2006", startDateStr)
	if err != nil {
		return 0, fmt.Errorf("invalid start date: %w", err)
	}

	m, err := s.repo.ReadMembership(ctx, id)
	if err != nil {
		return 0, err
	}
	plan, err := s.repo.ReadPlan(ctx, m.PlanID)
	if err != nil {
		return 0, fmt.Errorf("read plan: %w", err)
	}

	n, err := s.repo.RenewMembership(ctx, id, startDate, startDate.AddDate(0, 0, plan.DurationDays))
	if err != nil {
		return 0, err
	}
	s.invalidateSnapshots(ctx, m.UserUID)
	return n, nil
}

// Read возвращает абонемент по его ID.
func (s *MembershipService) Read(ctx context.Context, id int64) (*models.Membership, error) {
	return s.repo.ReadMembership(ctx, id)
}

// List возвращает список абонементов с пагинацией.
func (s *MembershipService) List(ctx context.Context, limit, offset int) ([]*models.Membership, error) {
	return s.repo.ListMemberships(ctx, limit, offset)
}

// SetStatus выставляет хранимый статус абонемента (приостановка или
// активация персоналом).
func (s *MembershipService) SetStatus(ctx context.Context, id int64, status string) (int, error) {
	m, err := s.repo.ReadMembership(ctx, id)
	if err != nil {
		return 0, err
	}
	n, err := s.repo.UpdateMembershipStatus(ctx, id, status)
	if err != nil {
		return 0, err
	}
	s.invalidateSnapshots(ctx, m.UserUID)
	return n, nil
}

func (s *MembershipService) invalidateSnapshots(ctx context.Context, userUID string) {
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
