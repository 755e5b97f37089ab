package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dparedesb/gymcontrol/internal/membership"
	"github.com/dparedesb/gymcontrol/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListMemberSnapshots(ctx context.Context, limit, offset int) ([]models.MemberSnapshot, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MemberSnapshot), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func snapshotEndingIn(uid string, days int, now time.Time) models.MemberSnapshot {
	return models.MemberSnapshot{
		User: models.User{UID: uid, Active: true, Role: "member"},
		Membership: &models.Membership{
			ID:      1,
			UserUID: uid,
			PlanID:  1,
			EndDate: now.AddDate(0, 0, days),
			Status:  models.MembershipActive,
		},
		Plan:          &models.Plan{ID: 1, Name: "Mensual", DurationDays: 30},
		LatestPayment: &models.Payment{ID: 1, UserUID: uid, Status: models.PaymentCompleted, CreatedAt: now.AddDate(0, 0, -5)},
	}
}

func TestReportService_PaymentStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	snaps := []models.MemberSnapshot{
		snapshotEndingIn("uid-current", 20, now),
		snapshotEndingIn("uid-soon", 3, now),
		snapshotEndingIn("uid-expired", -4, now),
		{User: models.User{UID: "uid-noplan", Active: true, Role: "member"}},
	}

	repo := new(RepoMock)
	repo.On("ListMemberSnapshots", mock.Anything, 100, 0).Return(snaps, nil).Once()

	svc := NewReportService(repo, clock, membership.DefaultOptions(), newNoopLogger())
	report, err := svc.PaymentStatus(context.Background(), nil, 0, 100, 0)
	require.NoError(t, err)

	assert.Len(t, report.Rows, 4)
	assert.Equal(t, 1, report.Buckets[membership.StatusCurrent])
	assert.Equal(t, 1, report.Buckets[membership.StatusExpiringSoon])
	assert.Equal(t, 1, report.Buckets[membership.StatusPaymentExpired])
	assert.Equal(t, 1, report.Buckets[membership.StatusNoMembershipPlan])
	repo.AssertExpectations(t)
}

func TestReportService_PaymentStatus_FilterKeepsBuckets(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	snaps := []models.MemberSnapshot{
		snapshotEndingIn("uid-current", 20, now),
		snapshotEndingIn("uid-expired", -4, now),
	}

	repo := new(RepoMock)
	repo.On("ListMemberSnapshots", mock.Anything, 100, 0).Return(snaps, nil).Once()

	svc := NewReportService(repo, clock, membership.DefaultOptions(), newNoopLogger())
	report, err := svc.PaymentStatus(context.Background(), []membership.Status{membership.StatusPaymentExpired}, 0, 100, 0)
	require.NoError(t, err)

	require.Len(t, report.Rows, 1)
	assert.Equal(t, membership.StatusPaymentExpired, report.Rows[0].Evaluation.Status)
	assert.Equal(t, 1, report.Buckets[membership.StatusCurrent])
	assert.Equal(t, 1, report.Buckets[membership.StatusPaymentExpired])
}

func TestReportService_PaymentStatus_ThresholdOverride(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	snaps := []models.MemberSnapshot{snapshotEndingIn("uid-a", 10, now)}

	repo := new(RepoMock)
	repo.On("ListMemberSnapshots", mock.Anything, 100, 0).Return(snaps, nil).Twice()

	svc := NewReportService(repo, clock, membership.DefaultOptions(), newNoopLogger())

	report, err := svc.PaymentStatus(context.Background(), nil, 0, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, membership.StatusCurrent, report.Rows[0].Evaluation.Status)

	report, err = svc.PaymentStatus(context.Background(), nil, 14, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, membership.StatusExpiringSoon, report.Rows[0].Evaluation.Status)
}

func TestReportService_PaymentStatus_RepoError(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	repo := new(RepoMock)
	repo.On("ListMemberSnapshots", mock.Anything, 100, 0).Return(nil, errors.New("db down")).Once()

	svc := NewReportService(repo, clock, membership.DefaultOptions(), newNoopLogger())
	_, err := svc.PaymentStatus(context.Background(), nil, 0, 100, 0)
	require.Error(t, err)
}
