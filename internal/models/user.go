// Package models содержит доменные структуры тренажёрного зала:
// пользователи (члены клуба и сотрудники), тарифные планы, абонементы,
// платежи, товары, продажи, занятия и журнал валидаций, а также
// вспомогательные Dummy-типы для приёма данных из JSON-запросов.
package models

import "time"

// User представляет человека в системе: члена клуба или сотрудника.
//
// Для физического доступа используются два альтернативных ключа поиска:
// Cedula (номер национального удостоверения) и Holler (код бейджа/брелока).
// Поле Active — ручной флаг: деактивированный пользователь не проходит
// валидацию независимо от состояния абонемента.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Username     string    // Имя учётной записи (только для staff/admin)
	FullName     string    // Полное имя
	Email        string    // Электронная почта
	Cedula       string    // Номер удостоверения личности
	Holler       string    // Код бейджа для турникета
	Phone        string    // Телефон
	Active       bool      // Флаг активности (выставляется персоналом)
	Role         string    // Роль: member, staff или admin
	PasswordHash string    // Хэш пароля (только для staff/admin)
	CreatedAt    time.Time // Дата регистрации
}

// DummyUser используется для приёма данных нового члена клуба из JSON-запроса.
type DummyUser struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Cedula   string `json:"cedula" validate:"required,numeric"`
	Holler   string `json:"holler" validate:"omitempty,alphanum"`
	Phone    string `json:"phone" validate:"omitempty"`
}

// DummyCredentials используется для регистрации и входа сотрудников.
type DummyCredentials struct {
	Username string `json:"username" validate:"required,alphanum"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8"`
}
