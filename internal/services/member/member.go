// Package services содержит бизнес-логику для управления членами клуба.
package services

import (
	"context"
	"log/slog"

	"github.com/dparedesb/gymcontrol/internal/cache"
	"github.com/dparedesb/gymcontrol/internal/lib/sl"
	"github.com/dparedesb/gymcontrol/internal/models"
)

// MemberRepository определяет методы для работы с пользователями в хранилище.
type MemberRepository interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	UpdateUser(ctx context.Context, user models.User) (int, error)
	RemoveUser(ctx context.Context, userUID string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Invalidate(key string) error
}

// MemberService реализует бизнес-логику работы с членами клуба.
type MemberService struct {
	repo  MemberRepository
	cache Cache
	log   *slog.Logger
}

// NewMemberService создает новый экземпляр MemberService.
func NewMemberService(repo MemberRepository, cache Cache, log *slog.Logger) *MemberService {
	return &MemberService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create регистрирует нового члена клуба и возвращает его UID.
func (s *MemberService) Create(ctx context.Context, req models.DummyUser) (string, error) {
	user := models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Cedula:   req.Cedula,
		Holler:   req.Holler,
		Phone:    req.Phone,
		Active:   true,
		Role:     "member",
	}
	return s.repo.CreateUser(ctx, user)
}

// Read возвращает члена клуба по UID.
func (s *MemberService) Read(ctx context.Context, userUID string) (*models.User, error) {
	return s.repo.GetUser(ctx, userUID)
}

// List возвращает список членов клуба с пагинацией.
func (s *MemberService) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.repo.ListUsers(ctx, limit, offset)
}

// Update обновляет данные члена клуба и сбрасывает кеш срезов по его
// старым и новым идентификаторам.
func (s *MemberService) Update(ctx context.Context, userUID string, req models.DummyUser, active bool) (int, error) {
	old, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return 0, err
	}

	user := models.User{
		UID:      userUID,
		FullName: req.FullName,
		Email:    req.Email,
		Cedula:   req.Cedula,
		Holler:   req.Holler,
		Phone:    req.Phone,
		Active:   active,
	}
	n, err := s.repo.UpdateUser(ctx, user)
	if err != nil {
		return 0, err
	}
	s.invalidateSnapshots(old)
	s.invalidateSnapshots(&user)
	return n, nil
}

// Remove удаляет члена клуба и сбрасывает его кеш.
func (s *MemberService) Remove(ctx context.Context, userUID string) (int, error) {
	old, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return 0, err
	}
	n, err := s.repo.RemoveUser(ctx, userUID)
	if err != nil {
		return 0, err
	}
	s.invalidateSnapshots(old)
	return n, nil
}

func (s *MemberService) invalidateSnapshots(u *models.User) {
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
