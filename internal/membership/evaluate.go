package membership

import (
	"errors"
	"fmt"
	"time"

	"github.com/dparedesb/gymcontrol/internal/models"
)

// ErrInvalidPlan означает повреждённую запись плана (длительность < 1 дня
// или отсутствующий план при существующем абонементе). Такая ошибка
// поднимается наверх, а не маскируется правдоподобным статусом.
var ErrInvalidPlan = errors.New("invalid membership plan")

// ErrNoExpiryPolicy означает, что классификация дошла до вычисления даты
// окончания, а политика не задана. Это ошибка вызывающего кода.
var ErrNoExpiryPolicy = errors.New("expiry policy is required")

// EvalInput — входные данные одного вычисления. Все поля — снимок на момент
// запроса, ядро их не мутирует и не перечитывает.
type EvalInput struct {
	UserActive bool               // Флаг активности пользователя
	Membership *models.Membership // nil, если абонемента нет
	Plan       *models.Plan       // План абонемента, nil только вместе с Membership
	Payment    *models.Payment    // Последний COMPLETED платёж, nil если не было
	Policy     ExpiryPolicy       // Объявленная модель окончания доступа
}

// Evaluation — результат классификации.
type Evaluation struct {
	Status        Status `json:"status"`
	DaysRemaining int    `json:"days_remaining"` // Для действующих статусов
	DaysOverdue   int    `json:"days_overdue"`   // Для PAYMENT_EXPIRED
	Message       string `json:"message"`
}

// Evaluate классифицирует члена клуба на момент now. Проверки идут в строгом
// порядке приоритета, первая сработавшая завершает вычисление:
//
//  1. нет абонемента — NO_MEMBERSHIP_PLAN;
//  2. пользователь деактивирован или абонемент приостановлен персоналом — USER_INACTIVE;
//  3. нет ни одного завершённого платежа — NO_COMPLETED_PAYMENT;
//  4. дата окончания по объявленной политике против текущего дня:
//     просрочен / последний день / истекает скоро / действует.
//
// Отсутствие абонемента — легитимный результат, а не ошибка. Ошибка
// возвращается только при повреждённых данных плана или незаданной политике.
func Evaluate(in EvalInput, now time.Time, opts Options) (Evaluation, error) {
	if in.Membership == nil {
		return Evaluation{
			Status:  StatusNoMembershipPlan,
			Message: "no plan assigned",
		}, nil
	}

	if !in.UserActive || in.Membership.Status == models.MembershipSuspended {
		return Evaluation{
			Status:  StatusUserInactive,
			Message: "user is deactivated",
		}, nil
	}

	if in.Plan == nil {
		return Evaluation{}, fmt.Errorf("evaluate: membership %d has no plan: %w", in.Membership.ID, ErrInvalidPlan)
	}
	if in.Plan.DurationDays < 1 {
		return Evaluation{}, fmt.Errorf("evaluate: plan %d duration %d: %w", in.Plan.ID, in.Plan.DurationDays, ErrInvalidPlan)
	}

	if in.Payment == nil {
		return Evaluation{
			Status:  StatusNoCompletedPayment,
			Message: "no completed payment on record",
		}, nil
	}

	if in.Policy == nil {
		return Evaluation{}, fmt.Errorf("evaluate: membership %d: %w", in.Membership.ID, ErrNoExpiryPolicy)
	}

	expiry := in.Policy.expiryDay()
	today := truncateToDay(now)

	switch {
	case today.After(expiry):
		overdue := daysBetween(expiry, today)
		return Evaluation{
			Status:      StatusPaymentExpired,
			DaysOverdue: overdue,
			Message:     fmt.Sprintf("membership expired %d day(s) ago", overdue),
		}, nil
	case today.Equal(expiry):
		return Evaluation{
			Status:  StatusExpiringToday,
			Message: "membership expires today",
		}, nil
	default:
		remaining := daysBetween(today, expiry)
		if remaining <= opts.ExpiringSoonDays {
			return Evaluation{
				Status:        StatusExpiringSoon,
				DaysRemaining: remaining,
				Message:       fmt.Sprintf("membership expires in %d day(s)", remaining),
			}, nil
		}
		return Evaluation{
			Status:        StatusCurrent,
			DaysRemaining: remaining,
			Message:       fmt.Sprintf("membership active, %d day(s) remaining", remaining),
		}, nil
	}
}
