package membership

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dparedesb/gymcontrol/internal/models"
)

func snapshot(uid string, active bool, mutate func(*models.MemberSnapshot)) models.MemberSnapshot {
	plan := &models.Plan{ID: 1, Name: "mensual", DurationDays: 30}
	m := &models.Membership{ID: 10, UserUID: uid, PlanID: 1, StartDate: day(0), EndDate: day(30), Status: models.MembershipActive}
	snap := models.MemberSnapshot{
		User:          models.User{UID: uid, Active: active},
		Membership:    m,
		Plan:          plan,
		LatestPayment: &models.Payment{ID: 5, UserUID: uid, Status: models.PaymentCompleted, CreatedAt: day(0)},
	}
	if mutate != nil {
		mutate(&snap)
	}
	return snap
}

func TestClassify_BucketsSumToInput(t *testing.T) {
	snaps := []models.MemberSnapshot{
		snapshot("u-1", true, nil), // CURRENT на day(10)
		snapshot("u-2", true, func(s *models.MemberSnapshot) { // EXPIRED
			s.Membership.EndDate = day(5)
		}),
		snapshot("u-3", false, nil), // USER_INACTIVE
		snapshot("u-4", true, func(s *models.MemberSnapshot) { // NO_COMPLETED_PAYMENT
			s.LatestPayment = nil
		}),
		snapshot("u-5", true, func(s *models.MemberSnapshot) { // NO_MEMBERSHIP_PLAN
			s.Membership = nil
			s.Plan = nil
			s.LatestPayment = nil
		}),
		snapshot("u-6", true, func(s *models.MemberSnapshot) { // EXPIRING_SOON
			s.Membership.EndDate = day(14)
		}),
	}

	report, err := Classify(snaps, day(10), ClassifyOptions{
		Options: DefaultOptions(),
		Model:   ModelWindow,
	})
	require.NoError(t, err)

	total := 0
	for _, n := range report.Buckets {
		total += n
	}
	assert.Equal(t, len(snaps), total)
	assert.Len(t, report.Rows, len(snaps))

	assert.Equal(t, 1, report.Buckets[StatusCurrent])
	assert.Equal(t, 1, report.Buckets[StatusPaymentExpired])
	assert.Equal(t, 1, report.Buckets[StatusUserInactive])
	assert.Equal(t, 1, report.Buckets[StatusNoCompletedPayment])
	assert.Equal(t, 1, report.Buckets[StatusNoMembershipPlan])
	assert.Equal(t, 1, report.Buckets[StatusExpiringSoon])
}

func TestClassify_PreservesInputOrder(t *testing.T) {
	snaps := []models.MemberSnapshot{
		snapshot("u-b", true, nil),
		snapshot("u-a", true, nil),
		snapshot("u-c", true, nil),
	}
	report, err := Classify(snaps, day(10), ClassifyOptions{Options: DefaultOptions(), Model: ModelWindow})
	require.NoError(t, err)
	require.Len(t, report.Rows, 3)
	assert.Equal(t, "u-b", report.Rows[0].Snapshot.User.UID)
	assert.Equal(t, "u-a", report.Rows[1].Snapshot.User.UID)
	assert.Equal(t, "u-c", report.Rows[2].Snapshot.User.UID)
}

func TestClassify_StatusFilterKeepsBuckets(t *testing.T) {
	snaps := []models.MemberSnapshot{
		snapshot("u-1", true, nil),
		snapshot("u-2", true, func(s *models.MemberSnapshot) { s.Membership.EndDate = day(5) }),
		snapshot("u-3", true, func(s *models.MemberSnapshot) { s.Membership.EndDate = day(6) }),
	}

	report, err := Classify(snaps, day(10), ClassifyOptions{
		Options:  DefaultOptions(),
		Model:    ModelWindow,
		Statuses: []Status{StatusPaymentExpired},
	})
	require.NoError(t, err)

	// Фильтр сужает строки, но корзины считаются по всем.
	require.Len(t, report.Rows, 2)
	for _, row := range report.Rows {
		assert.Equal(t, StatusPaymentExpired, row.Evaluation.Status)
	}
	assert.Equal(t, 1, report.Buckets[StatusCurrent])
	assert.Equal(t, 2, report.Buckets[StatusPaymentExpired])
}

func TestClassify_ThresholdOverride(t *testing.T) {
	snaps := []models.MemberSnapshot{
		snapshot("u-1", true, func(s *models.MemberSnapshot) { s.Membership.EndDate = day(16) }),
	}

	opts := ClassifyOptions{Options: DefaultOptions(), Model: ModelWindow}
	report, err := Classify(snaps, day(10), opts)
	require.NoError(t, err)
	assert.Equal(t, StatusExpiringSoon, report.Rows[0].Evaluation.Status)

	opts.ExpiringSoonDays = 3
	report, err = Classify(snaps, day(10), opts)
	require.NoError(t, err)
	assert.Equal(t, StatusCurrent, report.Rows[0].Evaluation.Status)
}

func TestClassify_IntegrityErrorAborts(t *testing.T) {
	snaps := []models.MemberSnapshot{
		snapshot("u-1", true, nil),
		snapshot("u-2", true, func(s *models.MemberSnapshot) { s.Plan.DurationDays = -1 }),
	}
	_, err := Classify(snaps, day(10), ClassifyOptions{Options: DefaultOptions(), Model: ModelWindow})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPlan)
}
