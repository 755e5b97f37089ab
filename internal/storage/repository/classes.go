package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dparedesb/gymcontrol/internal/models"
)

// CreateClassSession вставляет новое занятие и возвращает его ID. Вставка
// проходит только если у инструктора нет занятия, пересекающегося по времени.
func (s *Storage) CreateClassSession(ctx context.Context, c models.ClassSession) (int64, error) {
	const op = "storage.CreateClassSession"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO class_sessions (name, instructor, starts_at, ends_at, capacity)
			  SELECT $1, $2, $3, $4, $5
			  WHERE NOT EXISTS (
				  SELECT 1 FROM class_sessions
				  WHERE instructor = $2 AND starts_at < $4 AND ends_at > $3)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		c.Name, c.Instructor, c.StartsAt, c.EndsAt, c.Capacity).Scan(&newID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%s: instructor %s: %w", op, c.Instructor, ErrScheduleConflict)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListClassSessions возвращает занятия с пагинацией, ближайшие первыми.
// Поле Enrolled подсчитывается на лету из записей.
func (s *Storage) ListClassSessions(ctx context.Context, limit, offset int) ([]*models.ClassSession, error) {
	const op = "storage.ListClassSessions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.name, c.instructor, c.starts_at, c.ends_at, c.capacity,
				  (SELECT COUNT(*) FROM class_enrollments e WHERE e.class_id = c.id) AS enrolled,
				  c.created_at
			  FROM class_sessions c
			  ORDER BY c.starts_at, c.id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ClassSession
	for rows.Next() {
		var c models.ClassSession
		if err := rows.Scan(&c.ID, &c.Name, &c.Instructor, &c.StartsAt, &c.EndsAt,
			&c.Capacity, &c.Enrolled, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// EnrollInClass записывает пользователя на занятие. Вставка проходит только
// пока число записей меньше вместимости, проверка выполняется тем же
// запросом, что и вставка, поэтому конкурентные записи не пробивают лимит.
func (s *Storage) EnrollInClass(ctx context.Context, classID int64, userUID string) error {
	const op = "storage.EnrollInClass"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO class_enrollments (class_id, user_uid)
			  SELECT $1, $2
			  WHERE (SELECT COUNT(*) FROM class_enrollments WHERE class_id = $1) <
			        (SELECT capacity FROM class_sessions WHERE id = $1)`
	result, err := s.DB.ExecContext(ctx, query, classID, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		var exists bool
		if err := s.DB.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM class_sessions WHERE id = $1)`, classID).Scan(&exists); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if !exists {
			return fmt.Errorf("%s: class %d: %w", op, classID, ErrNotFound)
		}
		return fmt.Errorf("%s: class %d: %w", op, classID, ErrClassFull)
	}
	return nil
}
