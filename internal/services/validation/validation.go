// Package services реализует валидацию физического доступа на входе в зал:
// поиск члена клуба по предъявленному идентификатору, вычисление статуса
// оплаты по последнему платежу и решение о допуске.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dparedesb/gymcontrol/internal/cache"
	"github.com/dparedesb/gymcontrol/internal/lib/sl"
	"github.com/dparedesb/gymcontrol/internal/membership"
	"github.com/dparedesb/gymcontrol/internal/metrics"
	"github.com/dparedesb/gymcontrol/internal/models"
	"github.com/dparedesb/gymcontrol/internal/storage/repository"
)

// UserFinder определяет методы поиска пользователя по идентификатору.
type UserFinder interface {
	FindUserByCedula(ctx context.Context, cedula string) (*models.User, error)
	FindUserByHoller(ctx context.Context, holler string) (*models.User, error)
}

// SnapshotRepository определяет метод сборки среза данных члена клуба.
type SnapshotRepository interface {
	GetMemberSnapshot(ctx context.Context, user *models.User) (*models.MemberSnapshot, error)
}

// Cache описывает методы кеширования срезов на горячем пути.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// LogSink принимает записи журнала валидаций для асинхронной записи.
type LogSink interface {
	Publish(entry models.ValidationLog) error
}

// ValidationService реализует проверку допуска по cedula или holler.
type ValidationService struct {
	users       UserFinder
	snapshots   SnapshotRepository
	cache       Cache
	sink        LogSink
	now         membership.Clock
	opts        membership.Options
	snapshotTTL time.Duration
	log         *slog.Logger
}

// NewValidationService создает новый экземпляр ValidationService.
func NewValidationService(
	users UserFinder,
	snapshots SnapshotRepository,
	cache Cache,
	sink LogSink,
	now membership.Clock,
	opts membership.Options,
	snapshotTTL time.Duration,
	log *slog.Logger,
) *ValidationService {
	return &ValidationService{
		users:       users,
		snapshots:   snapshots,
		cache:       cache,
		sink:        sink,
		now:         now,
		opts:        opts,
		snapshotTTL: snapshotTTL,
		log:         log,
	}
}

// ValidateByCedula принимает решение о допуске по номеру cedula.
func (s *ValidationService) ValidateByCedula(ctx context.Context, cedula string) (membership.Decision, error) {
	return s.validate(ctx, models.ValidationByCedula, cedula, s.users.FindUserByCedula)
}

// ValidateByHoller принимает решение о допуске по номеру holler.
func (s *ValidationService) ValidateByHoller(ctx context.Context, holler string) (membership.Decision, error) {
	return s.validate(ctx, models.ValidationByHoller, holler, s.users.FindUserByHoller)
}

// validate — общий путь валидации. Неизвестный идентификатор даёт отказ
// USER_NOT_FOUND без вычисления статуса; неоднозначный — ошибку, решение
// по нему не принимается. Каждое принятое решение журналируется и
// учитывается в метриках.
func (s *ValidationService) validate(
	ctx context.Context,
	validationType, identifier string,
	find func(ctx context.Context, key string) (*models.User, error),
) (membership.Decision, error) {
	const op = "services.validation.validate"

	snap, err := s.loadSnapshot(ctx, validationType, identifier, find)
	if errors.Is(err, repository.ErrUserNotFound) {
		decision := membership.NotFoundDecision()
		s.record(validationType, identifier, nil, decision)
		return decision, nil
	}
	if err != nil {
		return membership.Decision{}, fmt.Errorf("%s: %w", op, err)
	}

	in := membership.EvalInput{
		UserActive: snap.User.Active,
		Membership: snap.Membership,
		Plan:       snap.Plan,
		Payment:    snap.LatestPayment,
		Policy:     membership.PolicyFor(membership.ModelPayment, snap.Membership, snap.Plan, snap.LatestPayment),
	}
	eval, err := membership.Evaluate(in, s.now(), s.opts)
	if err != nil {
		return membership.Decision{}, fmt.Errorf("%s: %w", op, err)
	}

	decision := membership.Decide(eval, s.opts)
	s.record(validationType, identifier, &snap.User.UID, decision)
	return decision, nil
}

// loadSnapshot достаёт срез данных из кеша, при промахе — из хранилища
// с последующим прогревом. Сбой кеша не роняет валидацию.
func (s *ValidationService) loadSnapshot(
	ctx context.Context,
	validationType, identifier string,
	find func(ctx context.Context, key string) (*models.User, error),
) (*models.MemberSnapshot, error) {
	key := cache.SnapshotKey(validationType, identifier)

	var cached models.MemberSnapshot
	hit, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("snapshot cache read failed", sl.Err(err))
	}
	if hit {
		return &cached, nil
	}

	user, err := find(ctx, identifier)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshots.GetMemberSnapshot(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(key, snap, s.snapshotTTL); err != nil {
		s.log.Warn("snapshot cache write failed", sl.Err(err))
	}
	return snap, nil
}

// record публикует запись журнала и инкрементирует метрику. Публикация идёт
// в отдельной горутине: задержки и сбои брокера не влияют на ответ турникету.
func (s *ValidationService) record(validationType, identifier string, userUID *string, d membership.Decision) {
	metrics.ValidationsTotal.WithLabelValues(validationType, metrics.ResultLabel(d.Admit), string(d.Status)).Inc()

	entry := models.ValidationLog{
		Identifier:     identifier,
		ValidationType: validationType,
		UserUID:        userUID,
		Success:        d.Admit,
		Status:         string(d.Status),
		Reason:         d.DisplayMessage,
		CreatedAt:      s.now(),
	}
	go func() {
		if err := s.sink.Publish(entry); err != nil {
			s.log.Error("failed to publish validation log", sl.Err(err))
		}
	}()
}
