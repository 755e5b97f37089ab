package models

import "time"

// Статусы платежа. Для доступа в зал учитываются только COMPLETED.
const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
	PaymentRefunded  = "REFUNDED"
)

// Payment представляет платёж пользователя, опционально привязанный
// к конкретному абонементу.
type Payment struct {
	ID           int64     // Идентификатор платежа
	UserUID      string    // Плательщик
	MembershipID *int64    // Абонемент (nil, если платёж не привязан)
	Amount       float64   // Сумма
	Method       string    // Способ оплаты: cash, card, transfer
	Status       string    // PENDING, COMPLETED, FAILED, REFUNDED
	CreatedAt    time.Time // Момент создания платежа
}

// DummyPayment используется для приёма данных платежа из JSON-запроса.
type DummyPayment struct {
	UserUID      string  `json:"user_uid" validate:"required,uuid"`
	MembershipID *int64  `json:"membership_id" validate:"omitempty,gt=0"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	Method       string  `json:"method" validate:"required,oneof=cash card transfer"`
	Status       string  `json:"status" validate:"required,oneof=PENDING COMPLETED FAILED REFUNDED"`
}
