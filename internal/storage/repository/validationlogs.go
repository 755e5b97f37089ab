package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dparedesb/gymcontrol/internal/models"
)

// AppendValidationLog вставляет запись журнала валидаций.
// Журнал только пополняется, записи не изменяются и не удаляются.
func (s *Storage) AppendValidationLog(ctx context.Context, entry models.ValidationLog) (int64, error) {
	const op = "storage.AppendValidationLog"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO validation_logs (identifier, validation_type, user_uid, success, status, reason, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		entry.Identifier, entry.ValidationType, entry.UserUID,
		entry.Success, entry.Status, entry.Reason, entry.CreatedAt).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListValidationLogs возвращает записи журнала с пагинацией, новые первыми.
func (s *Storage) ListValidationLogs(ctx context.Context, limit, offset int) ([]*models.ValidationLog, error) {
	const op = "storage.ListValidationLogs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, identifier, validation_type, user_uid, success, status, reason, created_at
			  FROM validation_logs
			  ORDER BY created_at DESC, id DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ValidationLog
	for rows.Next() {
		var entry models.ValidationLog
		var userUID sql.NullString
		if err := rows.Scan(&entry.ID, &entry.Identifier, &entry.ValidationType,
			&userUID, &entry.Success, &entry.Status, &entry.Reason, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if userUID.Valid {
			entry.UserUID = &userUID.String
		}
		result = append(result, &entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
