package models

import "time"

// Типы валидации физического доступа.
const (
	ValidationByCedula = "cedula"
	ValidationByHoller = "holler"
)

// ValidationLog представляет запись журнала валидаций на входе в зал.
// Запись создаётся для каждого решения (допуск или отказ) и пишется
// асинхронно: сбой записи не влияет на само решение.
type ValidationLog struct {
	ID             int64     // Идентификатор записи
	Identifier     string    // Предъявленный идентификатор (cedula или holler)
	ValidationType string    // cedula или holler
	UserUID        *string   // Пользователь, если найден
	Success        bool      // Допущен или нет
	Status         string    // Вычисленный статус ядра
	Reason         string    // Человекочитаемое объяснение
	CreatedAt      time.Time // Момент решения
}
