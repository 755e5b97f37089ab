package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dparedesb/gymcontrol/internal/models"
)

// CreateUser сохраняет нового пользователя и возвращает его UID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (username, full_name, email, cedula, holler, phone, active, role, password_hash)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.FullName, user.Email, user.Cedula, user.Holler, user.Phone,
		user.Active, user.Role, user.PasswordHash).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, full_name, email, cedula, holler, phone, active, role, password_hash, created_at
			  FROM users
			  WHERE uid = $1`
	return s.scanUserRow(s.DB.QueryRowContext(ctx, query, userUID), op)
}

// GetUserByUsername возвращает сотрудника по имени учётной записи.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, full_name, email, cedula, holler, phone, active, role, password_hash, created_at
			  FROM users
			  WHERE username = $1 AND role IN ('staff', 'admin')`
	return s.scanUserRow(s.DB.QueryRowContext(ctx, query, username), op)
}

// ListUsers возвращает список пользователей с пагинацией.
func (s *Storage) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, full_name, email, cedula, holler, phone, active, role, password_hash, created_at
			  FROM users
			  ORDER BY created_at, uid
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.UID, &u.Username, &u.FullName, &u.Email, &u.Cedula, &u.Holler,
			&u.Phone, &u.Active, &u.Role, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateUser обновляет данные пользователя и возвращает количество изменённых строк.
func (s *Storage) UpdateUser(ctx context.Context, user models.User) (int, error) {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET full_name = $1, email = $2, cedula = $3, holler = $4, phone = $5, active = $6
			  WHERE uid = $7`
	result, err := s.DB.ExecContext(ctx, query,
		user.FullName, user.Email, user.Cedula, user.Holler, user.Phone, user.Active, user.UID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveUser удаляет пользователя по UID и возвращает количество удалённых строк.
func (s *Storage) RemoveUser(ctx context.Context, userUID string) (int, error) {
	const op = "storage.RemoveUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM users WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// findUserByKey ищет пользователя по альтернативному ключу. Ключи cedula и
// holler не защищены уникальным индексом во всех исторических данных, поэтому
// выборка берёт две строки: вторая строка означает неоднозначность и
// возвращается как ErrAmbiguousIdentifier, а не как молчаливый выбор первой.
func (s *Storage) findUserByKey(ctx context.Context, op, column, value string) (*models.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := fmt.Sprintf(`SELECT uid, username, full_name, email, cedula, holler, phone, active, role, password_hash, created_at
			  FROM users
			  WHERE %s = $1
			  ORDER BY created_at, uid
			  LIMIT 2`, column)
	rows, err := s.DB.QueryContext(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var found []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.UID, &u.Username, &u.FullName, &u.Email, &u.Cedula, &u.Holler,
			&u.Phone, &u.Active, &u.Role, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		found = append(found, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%s: %s=%s: %w", op, column, value, ErrAmbiguousIdentifier)
	}
}

// FindUserByCedula возвращает пользователя по номеру удостоверения.
func (s *Storage) FindUserByCedula(ctx context.Context, cedula string) (*models.User, error) {
	return s.findUserByKey(ctx, "storage.FindUserByCedula", "cedula", cedula)
}

// FindUserByHoller возвращает пользователя по коду бейджа.
func (s *Storage) FindUserByHoller(ctx context.Context, holler string) (*models.User, error) {
	return s.findUserByKey(ctx, "storage.FindUserByHoller", "holler", holler)
}

func (s *Storage) scanUserRow(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	if err := row.Scan(&u.UID, &u.Username, &u.FullName, &u.Email, &u.Cedula, &u.Holler,
		&u.Phone, &u.Active, &u.Role, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
