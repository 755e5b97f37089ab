// Package services содержит бизнес-логику групповых занятий.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dparedesb/gymcontrol/internal/models"
)

// ErrInvalidSchedule — занятие с некорректным интервалом времени.
var ErrInvalidSchedule = errors.New("class ends before it starts")

// ClassRepository определяет методы для работы с занятиями в хранилище.
type ClassRepository interface {
	CreateClassSession(ctx context.Context, c models.ClassSession) (int64, error)
	ListClassSessions(ctx context.Context, limit, offset int) ([]*models.ClassSession, error)
	EnrollInClass(ctx context.Context, classID int64, userUID string) error
}

// ClassService реализует бизнес-логику занятий.
type ClassService struct {
	repo ClassRepository
	log  *slog.Logger
}

// NewClassService создает новый экземпляр ClassService.
func NewClassService(repo ClassRepository, log *slog.Logger) *ClassService {
	return &ClassService{repo: repo, log: log}
}

// Create создает занятие и возвращает его ID. Пересечения расписания
// инструктора контролирует хранилище.
func (s *ClassService) Create(ctx context.Context, req models.DummyClassSession) (int64, error) {
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return 0, fmt.Errorf("invalid starts_at: %w", err)
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return 0, fmt.Errorf("invalid ends_at: %w", err)
	}
	if !endsAt.After(startsAt) {
		return 0, ErrInvalidSchedule
	}

	return s.repo.CreateClassSession(ctx, models.ClassSession{
		Name:       req.Name,
		Instructor: req.Instructor,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
		Capacity:   req.Capacity,
	})
}

// List возвращает занятия с пагинацией.
func (s *ClassService) List(ctx context.Context, limit, offset int) ([]*models.ClassSession, error) {
	return s.repo.ListClassSessions(ctx, limit, offset)
}

// Enroll записывает члена клуба на занятие; лимит мест контролирует хранилище.
func (s *ClassService) Enroll(ctx context.Context, classID int64, userUID string) error {
	return s.repo.EnrollInClass(ctx, classID, userUID)
}
