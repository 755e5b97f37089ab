package membership

import (
	"time"

	"github.com/dparedesb/gymcontrol/internal/models"
)

// ExpiryPolicy определяет, как вычисляется дата окончания доступа.
// В системе сосуществуют две модели: по окну абонемента (CRUD и отчёты)
// и по последнему платежу (валидация на турникете). Каждый вызов Evaluate
// обязан явно объявить модель, смешивание внутри одного вычисления
// исключено конструктивно.
type ExpiryPolicy interface {
	expiryDay() time.Time
}

// WindowExpiry — модель по окну абонемента: доступ кончается в EndDate.
type WindowExpiry struct {
	EndDate time.Time
}

func (p WindowExpiry) expiryDay() time.Time {
	return truncateToDay(p.EndDate)
}

// PaymentExpiry — модель по последнему платежу: доступ кончается через
// DurationDays после даты последнего завершённого платежа.
type PaymentExpiry struct {
	LastPaymentAt time.Time
	DurationDays  int
}

func (p PaymentExpiry) expiryDay() time.Time {
	return truncateToDay(p.LastPaymentAt).AddDate(0, 0, p.DurationDays)
}

// ExpiryModel — объявление модели вычисления для групповых операций.
type ExpiryModel int

const (
	// ModelWindow — по окну абонемента.
	ModelWindow ExpiryModel = iota + 1
	// ModelPayment — по последнему платежу.
	ModelPayment
)

// PolicyFor строит политику для среза данных члена клуба.
// Возвращает nil, если данных для выбранной модели нет; Evaluate в этом
// случае либо закончит классификацию раньше (нет абонемента, нет платежа),
// либо вернёт ErrNoExpiryPolicy.
func PolicyFor(model ExpiryModel, m *models.Membership, plan *models.Plan, pay *models.Payment) ExpiryPolicy {
	switch model {
	case ModelWindow:
		if m == nil {
			return nil
		}
		return WindowExpiry{EndDate: m.EndDate}
	case ModelPayment:
		if pay == nil || plan == nil {
			return nil
		}
		return PaymentExpiry{LastPaymentAt: pay.CreatedAt, DurationDays: plan.DurationDays}
	default:
		return nil
	}
}

// truncateToDay приводит момент к началу календарного дня в UTC.
// Вся арифметика дат в ядре идёт целыми днями, чтобы платёж в 23:59
// не выглядел просроченным секундой позже.
func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween возвращает целое число дней от a до b.
// Оба аргумента уже усечены до начала дня.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
