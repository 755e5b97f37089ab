// Package repository реализует хранилище данных на основе PostgreSQL
// для управления членами клуба, тарифными планами, абонементами, платежами,
// товарами, продажами, занятиями и журналом валидаций.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища. Обработчики сопоставляют их с HTTP-статусами,
// сервис валидации — с результатами классификации.
var (
	// ErrNotFound — запрошенная запись отсутствует.
	ErrNotFound = errors.New("record not found")
	// ErrUserNotFound — пользователь по идентификатору не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrAmbiguousIdentifier — идентификатору (cedula или holler) соответствует
	// больше одного пользователя. Уникальность этих ключей в данных не
	// гарантируется, молча выбирать одну строку нельзя.
	ErrAmbiguousIdentifier = errors.New("identifier matches more than one user")
	// ErrInsufficientStock — продажа превышает остаток товара.
	ErrInsufficientStock = errors.New("insufficient product stock")
	// ErrClassFull — запись на занятие превышает вместимость.
	ErrClassFull = errors.New("class session is full")
	// ErrScheduleConflict — у инструктора уже есть занятие в этом интервале.
	ErrScheduleConflict = errors.New("instructor already has a session in this interval")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы со всеми сущностями зала.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'users'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table users missing or query error: %w", err)
	}
	return nil
}
