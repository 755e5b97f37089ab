package models

import "time"

// ClassSession представляет групповое занятие с ограничением по местам.
type ClassSession struct {
	ID         int64
	Name       string
	Instructor string
	StartsAt   time.Time
	EndsAt     time.Time
	Capacity   int
	Enrolled   int // Текущее количество записавшихся
	CreatedAt  time.Time
}

// DummyClassSession используется для приёма данных занятия из JSON-запроса.
// Даты приходят строками в формате RFC3339.
type DummyClassSession struct {
	Name       string `json:"name" validate:"required"`
	Instructor string `json:"instructor" validate:"required"`
	StartsAt   string `json:"starts_at" validate:"required"`
	EndsAt     string `json:"ends_at" validate:"required"`
	Capacity   int    `json:"capacity" validate:"required,gt=0"`
}

// DummyEnrollment используется для записи члена клуба на занятие.
type DummyEnrollment struct {
	UserUID string `json:"user_uid" validate:"required,uuid"`
}
