package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dparedesb/gymcontrol/internal/membership"
	"github.com/dparedesb/gymcontrol/internal/models"
	"github.com/dparedesb/gymcontrol/internal/storage/repository"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) FindUserByCedula(ctx context.Context, cedula string) (*models.User, error) {
	args := m.Called(ctx, cedula)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *UsersMock) FindUserByHoller(ctx context.Context, holler string) (*models.User, error) {
	args := m.Called(ctx, holler)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type SnapshotsMock struct{ mock.Mock }

func (m *SnapshotsMock) GetMemberSnapshot(ctx context.Context, user *models.User) (*models.MemberSnapshot, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MemberSnapshot), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

// sinkRecorder собирает опубликованные записи журнала через канал,
// публикация идёт из отдельной горутины.
type sinkRecorder struct {
	entries chan models.ValidationLog
}

func newSinkRecorder() *sinkRecorder {
	return &sinkRecorder{entries: make(chan models.ValidationLog, 8)}
}

func (s *sinkRecorder) Publish(entry models.ValidationLog) error {
	s.entries <- entry
	return nil
}

func (s *sinkRecorder) wait(t *testing.T) models.ValidationLog {
	t.Helper()
	select {
	case e := <-s.entries:
		return e
	case <-time.After(time.Second):
		t.Fatal("validation log was not published")
		return models.ValidationLog{}
	}
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func fixedClock(t time.Time) membership.Clock {
	return func() time.Time { return t }
}

func memberSnapshot(now time.Time, daysSincePayment int) *models.MemberSnapshot {
	uid := uuid.NewString()
	return &models.MemberSnapshot{
		User: models.User{UID: uid, FullName: "Ana Suarez", Cedula: "1102233445", Holler: "7788", Active: true, Role: "member"},
		Membership: &models.Membership{
			ID:      10,
			UserUID: uid,
			PlanID:  3,
			Status:  models.MembershipActive,
		},
		Plan: &models.Plan{ID: 3, Name: "Mensual", DurationDays: 30},
		LatestPayment: &models.Payment{
			ID:        77,
			UserUID:   uid,
			Status:    models.PaymentCompleted,
			CreatedAt: now.AddDate(0, 0, -daysSincePayment),
		},
	}
}

func newService(users *UsersMock, snaps *SnapshotsMock, c *CacheMock, sink LogSink, now time.Time) *ValidationService {
	return NewValidationService(users, snaps, c, sink, fixedClock(now), membership.DefaultOptions(), 30*time.Second, newNoopLogger())
}

func TestValidationService_AdmitCurrent(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	snap := memberSnapshot(now, 5)

	users := new(UsersMock)
	snaps := new(SnapshotsMock)
	c := new(CacheMock)
	sink := newSinkRecorder()

	c.On("Get", "snapshot:cedula:1102233445", mock.Anything).Return(false, nil).Once()
	users.On("FindUserByCedula", mock.Anything, "1102233445").Return(&snap.User, nil).Once()
	snaps.On("GetMemberSnapshot", mock.Anything, &snap.User).Return(snap, nil).Once()
	c.On("Set", "snapshot:cedula:1102233445", snap, 30*time.Second).Return(nil).Once()

	svc := newService(users, snaps, c, sink, now)
	decision, err := svc.ValidateByCedula(context.Background(), "1102233445")
	require.NoError(t, err)
	assert.True(t, decision.Admit)
	assert.Equal(t, membership.StatusCurrent, decision.Status)

	entry := sink.wait(t)
	assert.Equal(t, "cedula", entry.ValidationType)
	assert.Equal(t, "1102233445", entry.Identifier)
	require.NotNil(t, entry.UserUID)
	assert.Equal(t, snap.User.UID, *entry.UserUID)
	assert.True(t, entry.Success)
	assert.Equal(t, string(membership.StatusCurrent), entry.Status)

	users.AssertExpectations(t)
	snaps.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestValidationService_DenyExpired(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	snap := memberSnapshot(now, 45)

	users := new(UsersMock)
	snaps := new(SnapshotsMock)
	c := new(CacheMock)
	sink := newSinkRecorder()

	c.On("Get", "snapshot:holler:7788", mock.Anything).Return(false, nil).Once()
	users.On("FindUserByHoller", mock.Anything, "7788").Return(&snap.User, nil).Once()
	snaps.On("GetMemberSnapshot", mock.Anything, &snap.User).Return(snap, nil).Once()
	c.On("Set", "snapshot:holler:7788", snap, 30*time.Second).Return(nil).Once()

	svc := newService(users, snaps, c, sink, now)
	decision, err := svc.ValidateByHoller(context.Background(), "7788")
	require.NoError(t, err)
	assert.False(t, decision.Admit)
	assert.Equal(t, membership.StatusPaymentExpired, decision.Status)

	entry := sink.wait(t)
	assert.False(t, entry.Success)
	assert.Equal(t, "holler", entry.ValidationType)
}

func TestValidationService_UserNotFound(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	users := new(UsersMock)
	snaps := new(SnapshotsMock)
	c := new(CacheMock)
	sink := newSinkRecorder()

	c.On("Get", "snapshot:cedula:999", mock.Anything).Return(false, nil).Once()
	users.On("FindUserByCedula", mock.Anything, "999").Return(nil, repository.ErrUserNotFound).Once()

	svc := newService(users, snaps, c, sink, now)
	decision, err := svc.ValidateByCedula(context.Background(), "999")
	require.NoError(t, err)
	assert.False(t, decision.Admit)
	assert.Equal(t, membership.StatusUserNotFound, decision.Status)

	entry := sink.wait(t)
	assert.Nil(t, entry.UserUID)
	assert.Equal(t, string(membership.StatusUserNotFound), entry.Status)

	snaps.AssertNotCalled(t, "GetMemberSnapshot", mock.Anything, mock.Anything)
}

func TestValidationService_AmbiguousIdentifier(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	users := new(UsersMock)
	snaps := new(SnapshotsMock)
	c := new(CacheMock)
	sink := newSinkRecorder()

	c.On("Get", "snapshot:holler:7788", mock.Anything).Return(false, nil).Once()
	users.On("FindUserByHoller", mock.Anything, "7788").Return(nil, repository.ErrAmbiguousIdentifier).Once()

	svc := newService(users, snaps, c, sink, now)
	_, err := svc.ValidateByHoller(context.Background(), "7788")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrAmbiguousIdentifier)

	select {
	case <-sink.entries:
		t.Fatal("ambiguous identifier must not be journaled as a decision")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestValidationService_CacheHitSkipsStorage(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	snap := memberSnapshot(now, 2)

	users := new(UsersMock)
	snaps := new(SnapshotsMock)
	c := new(CacheMock)
	sink := newSinkRecorder()

	c.On("Get", "snapshot:cedula:1102233445", mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(1).(*models.MemberSnapshot)
			*out = *snap
		}).
		Return(true, nil).Once()

	svc := newService(users, snaps, c, sink, now)
	decision, err := svc.ValidateByCedula(context.Background(), "1102233445")
	require.NoError(t, err)
	assert.True(t, decision.Admit)

	sink.wait(t)
	users.AssertNotCalled(t, "FindUserByCedula", mock.Anything, mock.Anything)
	snaps.AssertNotCalled(t, "GetMemberSnapshot", mock.Anything, mock.Anything)
}

func TestValidationService_GraceDeniedWhenConfigured(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	snap := memberSnapshot(now, 27)

	users := new(UsersMock)
	snaps := new(SnapshotsMock)
	c := new(CacheMock)
	sink := newSinkRecorder()

	c.On("Get", "snapshot:cedula:1102233445", mock.Anything).Return(false, nil).Once()
	users.On("FindUserByCedula", mock.Anything, "1102233445").Return(&snap.User, nil).Once()
	snaps.On("GetMemberSnapshot", mock.Anything, &snap.User).Return(snap, nil).Once()
	c.On("Set", "snapshot:cedula:1102233445", snap, 30*time.Second).Return(nil).Once()

	opts := membership.Options{ExpiringSoonDays: 7, AdmitOnGrace: false}
	svc := NewValidationService(users, snaps, c, sink, fixedClock(now), opts, 30*time.Second, newNoopLogger())

	decision, err := svc.ValidateByCedula(context.Background(), "1102233445")
	require.NoError(t, err)
	assert.Equal(t, membership.StatusExpiringSoon, decision.Status)
	assert.False(t, decision.Admit)
}
