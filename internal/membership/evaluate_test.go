package membership

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dparedesb/gymcontrol/internal/models"
)

func day(n int) time.Time {
	return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func activeInput(pay *models.Payment, plan *models.Plan) EvalInput {
	m := &models.Membership{
		ID:        1,
		UserUID:   "u-1",
		PlanID:    plan.ID,
		StartDate: day(0),
		EndDate:   day(0).AddDate(0, 0, plan.DurationDays),
		Status:    models.MembershipActive,
	}
	return EvalInput{
		UserActive: true,
		Membership: m,
		Plan:       plan,
		Payment:    pay,
		Policy:     PolicyFor(ModelPayment, m, plan, pay),
	}
}

func TestEvaluate_PaymentDrivenScenario(t *testing.T) {
	plan := &models.Plan{ID: 7, Name: "mensual", DurationDays: 30}
	pay := &models.Payment{ID: 100, UserUID: "u-1", Status: models.PaymentCompleted, CreatedAt: day(0)}

	tests := []struct {
		name          string
		now           time.Time
		wantStatus    Status
		wantRemaining int
		wantOverdue   int
	}{
		{name: "day 20 is current", now: day(20), wantStatus: StatusCurrent, wantRemaining: 10},
		{name: "day 23 is first expiring-soon day", now: day(23), wantStatus: StatusExpiringSoon, wantRemaining: 7},
		{name: "day 24 is expiring soon", now: day(24), wantStatus: StatusExpiringSoon, wantRemaining: 6},
		{name: "day 29 is expiring soon", now: day(29), wantStatus: StatusExpiringSoon, wantRemaining: 1},
		{name: "day 30 is expiring today", now: day(30), wantStatus: StatusExpiringToday},
		{name: "day 31 is expired by one day", now: day(31), wantStatus: StatusPaymentExpired, wantOverdue: 1},
		{name: "day 45 is expired by fifteen days", now: day(45), wantStatus: StatusPaymentExpired, wantOverdue: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval, err := Evaluate(activeInput(pay, plan), tt.now, DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, eval.Status)
			assert.Equal(t, tt.wantRemaining, eval.DaysRemaining)
			assert.Equal(t, tt.wantOverdue, eval.DaysOverdue)
			assert.NotEmpty(t, eval.Message)
		})
	}
}

func TestEvaluate_TimeOfDayIsIgnored(t *testing.T) {
	plan := &models.Plan{ID: 7, DurationDays: 30}
	// Платёж в 23:59 не должен выглядеть просроченным секундой позже.
	pay := &models.Payment{ID: 1, Status: models.PaymentCompleted, CreatedAt: day(0).Add(23*time.Hour + 59*time.Minute)}

	eval, err := Evaluate(activeInput(pay, plan), day(30).Add(23*time.Hour+59*time.Minute), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, StatusExpiringToday, eval.Status)

	eval, err = Evaluate(activeInput(pay, plan), day(31).Add(time.Second), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, StatusPaymentExpired, eval.Status)
	assert.Equal(t, 1, eval.DaysOverdue)
}

func TestEvaluate_PriorityOrder(t *testing.T) {
	plan := &models.Plan{ID: 7, DurationDays: 30}
	pay := &models.Payment{ID: 1, Status: models.PaymentCompleted, CreatedAt: day(0)}

	t.Run("no membership wins over everything", func(t *testing.T) {
		eval, err := Evaluate(EvalInput{UserActive: false}, day(10), DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, StatusNoMembershipPlan, eval.Status)
		assert.Equal(t, "no plan assigned", eval.Message)
	})

	t.Run("inactive user wins over valid payment", func(t *testing.T) {
		in := activeInput(pay, plan)
		in.UserActive = false
		eval, err := Evaluate(in, day(10), DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, StatusUserInactive, eval.Status)
	})

	t.Run("suspended membership is treated as inactive", func(t *testing.T) {
		in := activeInput(pay, plan)
		in.Membership.Status = models.MembershipSuspended
		eval, err := Evaluate(in, day(10), DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, StatusUserInactive, eval.Status)
	})

	t.Run("never paid is distinct from expired", func(t *testing.T) {
		in := activeInput(nil, plan)
		for _, now := range []time.Time{day(1), day(31), day(400)} {
			eval, err := Evaluate(in, now, DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, StatusNoCompletedPayment, eval.Status)
		}
	})
}

func TestEvaluate_WindowModel(t *testing.T) {
	plan := &models.Plan{ID: 7, DurationDays: 30}
	pay := &models.Payment{ID: 1, Status: models.PaymentCompleted, CreatedAt: day(0)}
	m := &models.Membership{ID: 2, PlanID: 7, StartDate: day(0), EndDate: day(30), Status: models.MembershipActive}
	in := EvalInput{
		UserActive: true,
		Membership: m,
		Plan:       plan,
		Payment:    pay,
		Policy:     PolicyFor(ModelWindow, m, plan, pay),
	}

	eval, err := Evaluate(in, day(15), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, StatusCurrent, eval.Status)
	assert.Equal(t, 15, eval.DaysRemaining)

	eval, err = Evaluate(in, day(32), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, StatusPaymentExpired, eval.Status)
	assert.Equal(t, 2, eval.DaysOverdue)
}

func TestEvaluate_Monotonicity(t *testing.T) {
	plan := &models.Plan{ID: 7, DurationDays: 30}
	pay := &models.Payment{ID: 1, Status: models.PaymentCompleted, CreatedAt: day(0)}
	in := activeInput(pay, plan)

	admitting := func(s Status) bool {
		return s == StatusCurrent || s == StatusExpiringSoon || s == StatusExpiringToday
	}

	// Статус переходит в PAYMENT_EXPIRED ровно один раз и не возвращается.
	flipped := false
	for n := 0; n <= 60; n++ {
		eval, err := Evaluate(in, day(n), DefaultOptions())
		require.NoError(t, err)
		if flipped {
			assert.Equal(t, StatusPaymentExpired, eval.Status, "day %d reverted after expiry", n)
			continue
		}
		if eval.Status == StatusPaymentExpired {
			flipped = true
			assert.Equal(t, 31, n, "expiry flipped on the wrong day")
			continue
		}
		assert.True(t, admitting(eval.Status), "day %d: unexpected status %s", n, eval.Status)
	}
	assert.True(t, flipped)
}

func TestEvaluate_DataIntegrityErrors(t *testing.T) {
	pay := &models.Payment{ID: 1, Status: models.PaymentCompleted, CreatedAt: day(0)}

	t.Run("zero duration plan", func(t *testing.T) {
		plan := &models.Plan{ID: 7, DurationDays: 0}
		_, err := Evaluate(activeInput(pay, plan), day(1), DefaultOptions())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidPlan)
	})

	t.Run("membership without plan", func(t *testing.T) {
		in := activeInput(pay, &models.Plan{ID: 7, DurationDays: 30})
		in.Plan = nil
		_, err := Evaluate(in, day(1), DefaultOptions())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidPlan)
	})

	t.Run("missing policy", func(t *testing.T) {
		in := activeInput(pay, &models.Plan{ID: 7, DurationDays: 30})
		in.Policy = nil
		_, err := Evaluate(in, day(1), DefaultOptions())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNoExpiryPolicy)
	})
}

func TestEvaluate_CustomThreshold(t *testing.T) {
	plan := &models.Plan{ID: 7, DurationDays: 30}
	pay := &models.Payment{ID: 1, Status: models.PaymentCompleted, CreatedAt: day(0)}
	opts := Options{ExpiringSoonDays: 3, AdmitOnGrace: true}

	eval, err := Evaluate(activeInput(pay, plan), day(24), opts)
	require.NoError(t, err)
	assert.Equal(t, StatusCurrent, eval.Status, "6 days left is still current with a 3 day threshold")

	eval, err = Evaluate(activeInput(pay, plan), day(27), opts)
	require.NoError(t, err)
	assert.Equal(t, StatusExpiringSoon, eval.Status)
	assert.Equal(t, 3, eval.DaysRemaining)
}
