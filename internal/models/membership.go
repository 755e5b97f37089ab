package models

import "time"

// Статусы абонемента, хранимые в базе. Хранимый статус — пометка персонала
// (например, ручная приостановка), актуальность доступа всегда пересчитывает
// ядро internal/membership.
const (
	MembershipActive    = "ACTIVE"
	MembershipExpired   = "EXPIRED"
	MembershipSuspended = "SUSPENDED"
)

// Plan представляет тарифный план абонемента.
// DurationDays всегда >= 1, это проверяется валидатором на входе и
// повторно ядром при вычислении статуса.
type Plan struct {
	ID           int64     // Идентификатор плана
	Name         string    // Название плана
	DurationDays int       // Длительность в днях
	Price        float64   // Цена
	Description  string    // Описание
	CreatedAt    time.Time // Дата создания
}

// Membership представляет абонемент: связывает пользователя и план.
// EndDate вычисляется при создании/продлении как StartDate + DurationDays плана.
type Membership struct {
	ID        int64     // Идентификатор абонемента
	UserUID   string    // Владелец
	PlanID    int64     // Тарифный план
	StartDate time.Time // Дата начала
	EndDate   time.Time // Дата окончания (производная)
	Status    string    // ACTIVE, EXPIRED или SUSPENDED
	CreatedAt time.Time // Дата создания записи
}

// DummyPlan используется для приёма данных тарифного плана из JSON-запроса.
type DummyPlan struct {
	Name         string  `json:"name" validate:"required"`
	DurationDays int     `json:"duration_days" validate:"required,gte=1"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	Description  string  `json:"description" validate:"omitempty"`
}

// DummyMembership используется для приёма данных нового абонемента.
// Дата приходит строкой в формате 02-01-2006 и парсится в сервисе.
type DummyMembership struct {
	UserUID   string `json:"user_uid" validate:"required,uuid"`
	PlanID    int64  `json:"plan_id" validate:"required,gt=0"`
	StartDate string `json:"start_date" validate:"required,datetime=02-01-2006"`
}
