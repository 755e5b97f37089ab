// Package services содержит бизнес-логику для управления тарифными планами.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dparedesb/gymcontrol/internal/membership"
	"github.com/dparedesb/gymcontrol/internal/models"
)

// PlanRepository определяет методы для работы с планами в хранилище.
type PlanRepository interface {
	CreatePlan(ctx context.Context, plan models.Plan) (int64, error)
	ReadPlan(ctx context.Context, id int64) (*models.Plan, error)
	ListPlans(ctx context.Context, limit, offset int) ([]*models.Plan, error)
	UpdatePlan(ctx context.Context, plan models.Plan, id int64) (int, error)
	RemovePlan(ctx context.Context, id int64) (int, error)
}

// PlanService реализует бизнес-логику работы с тарифными планами.
type PlanService struct {
	repo PlanRepository
	log  *slog.Logger
}

// NewPlanService создает новый экземпляр PlanService.
func NewPlanService(repo PlanRepository, log *slog.Logger) *PlanService {
	return &PlanService{repo: repo, log: log}
}

// Create создает новый тарифный план и возвращает его ID.
func (s *PlanService) Create(ctx context.Context, req models.DummyPlan) (int64, error) {
	if req.DurationDays < 1 {
		return 0, fmt.Errorf("plan duration %d: %w", req.DurationDays, membership.ErrInvalidPlan)
	}
	plan := models.Plan{
		Name:         req.Name,
		DurationDays: req.DurationDays,
		Price:        req.Price,
		Description:  req.Description,
	}
	return s.repo.CreatePlan(ctx, plan)
}

// List возвращает список планов с пагинацией.
func (s *PlanService) List(ctx context.Context, limit, offset int) ([]*models.Plan, error) {
	return s.repo.ListPlans(ctx, limit, offset)
}

// Update обновляет план по ID и возвращает количество изменённых строк.
func (s *PlanService) Update(ctx context.Context, id int64, req models.DummyPlan) (int, error) {
	if req.DurationDays < 1 {
		return 0, fmt.Errorf("plan duration %d: %w", req.DurationDays, membership.ErrInvalidPlan)
	}
	plan := models.Plan{
		Name:         req.Name,
		DurationDays: req.DurationDays,
		Price:        req.Price,
		Description:  req.Description,
	}
	return s.repo.UpdatePlan(ctx, plan, id)
}

// Remove удаляет план по ID и возвращает количество удалённых строк.
func (s *PlanService) Remove(ctx context.Context, id int64) (int, error) {
	return s.repo.RemovePlan(ctx, id)
}
