// Package membership реализует ядро вычисления статуса абонемента:
// классификацию члена клуба по датам и платежам, групповую классификацию
// для отчёта о статусе оплат и итоговое решение о допуске в зал.
//
// Все функции пакета чистые: текущий момент передаётся явно, побочных
// эффектов нет, поэтому ядро безопасно вызывать из любого числа
// обработчиков одновременно.
package membership

import "time"

// Status — вычисленный статус члена клуба. Набор закрытый: добавление
// нового статуса требует обновления таблицы допуска в Decide.
type Status string

const (
	// StatusCurrent — абонемент оплачен и действует.
	StatusCurrent Status = "CURRENT"
	// StatusExpiringSoon — абонемент истекает в ближайшие дни (порог настраивается).
	StatusExpiringSoon Status = "EXPIRING_SOON"
	// StatusExpiringToday — последний день действия абонемента.
	StatusExpiringToday Status = "EXPIRING_TODAY"
	// StatusPaymentExpired — срок действия истёк.
	StatusPaymentExpired Status = "PAYMENT_EXPIRED"
	// StatusNoCompletedPayment — по абонементу нет ни одного завершённого платежа.
	StatusNoCompletedPayment Status = "NO_COMPLETED_PAYMENT"
	// StatusNoMembershipPlan — у пользователя нет абонемента.
	StatusNoMembershipPlan Status = "NO_MEMBERSHIP_PLAN"
	// StatusUserInactive — пользователь деактивирован персоналом.
	StatusUserInactive Status = "USER_INACTIVE"
	// StatusUserNotFound — идентификатор не найден; выставляется без вызова Evaluate.
	StatusUserNotFound Status = "USER_NOT_FOUND"
)

// Clock возвращает текущий момент. Внедряется в сервисы, чтобы ядро
// оставалось детерминированным в тестах.
type Clock func() time.Time

// Options — настройки классификации и допуска.
type Options struct {
	// ExpiringSoonDays — за сколько дней до окончания статус меняется на EXPIRING_SOON.
	ExpiringSoonDays int
	// AdmitOnGrace — допускать ли со статусами EXPIRING_SOON / EXPIRING_TODAY.
	AdmitOnGrace bool
}

// DefaultOptions возвращает настройки по умолчанию: порог 7 дней,
// льготные статусы допускаются.
func DefaultOptions() Options {
	return Options{
		ExpiringSoonDays: 7,
		AdmitOnGrace:     true,
	}
}
