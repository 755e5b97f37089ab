package membership

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide_AdmitTable(t *testing.T) {
	tests := []struct {
		status       Status
		admitOnGrace bool
		wantAdmit    bool
	}{
		{StatusCurrent, true, true},
		{StatusCurrent, false, true},
		{StatusExpiringSoon, true, true},
		{StatusExpiringSoon, false, false},
		{StatusExpiringToday, true, true},
		{StatusExpiringToday, false, false},
		{StatusPaymentExpired, true, false},
		{StatusNoCompletedPayment, true, false},
		{StatusNoMembershipPlan, true, false},
		{StatusUserInactive, true, false},
		{StatusUserNotFound, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			opts := Options{ExpiringSoonDays: 7, AdmitOnGrace: tt.admitOnGrace}
			d := Decide(Evaluation{Status: tt.status, Message: "msg"}, opts)
			assert.Equal(t, tt.wantAdmit, d.Admit)
			assert.Equal(t, tt.status, d.Status)
			assert.Equal(t, "msg", d.DisplayMessage)
		})
	}
}

func TestDecide_UnknownStatusDenies(t *testing.T) {
	d := Decide(Evaluation{Status: Status("SOMETHING_NEW")}, DefaultOptions())
	assert.False(t, d.Admit)
}

func TestNotFoundDecision(t *testing.T) {
	d := NotFoundDecision()
	assert.False(t, d.Admit)
	assert.Equal(t, StatusUserNotFound, d.Status)
	assert.NotEmpty(t, d.DisplayMessage)
}
