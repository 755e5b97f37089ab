package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dparedesb/gymcontrol/internal/models"
)

// CreatePayment вставляет новый платёж и возвращает его ID.
func (s *Storage) CreatePayment(ctx context.Context, p models.Payment) (int64, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (user_uid, membership_id, amount, method, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		p.UserUID, p.MembershipID, p.Amount, p.Method, p.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPayments возвращает платежи пользователя с пагинацией,
// от новых к старым.
func (s *Storage) ListPayments(ctx context.Context, userUID string, limit, offset int) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, membership_id, amount, method, status, created_at
			  FROM payments
			  WHERE user_uid = $1
			  ORDER BY created_at DESC, id DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var p models.Payment
		var membershipID sql.NullInt64
		if err := rows.Scan(&p.ID, &p.UserUID, &membershipID, &p.Amount, &p.Method, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if membershipID.Valid {
			p.MembershipID = &membershipID.Int64
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// LatestCompletedPayment возвращает последний завершённый платёж пользователя.
// Порядок тотальный: по created_at, затем по id — при одновременных вставках
// выбор остаётся детерминированным. Отсутствие платежа — не ошибка, nil.
func (s *Storage) LatestCompletedPayment(ctx context.Context, userUID string) (*models.Payment, error) {
	const op = "storage.LatestCompletedPayment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, membership_id, amount, method, status, created_at
			  FROM payments
			  WHERE user_uid = $1 AND status = $2
			  ORDER BY created_at DESC, id DESC
			  LIMIT 1`
	var p models.Payment
	var membershipID sql.NullInt64
	err := s.DB.QueryRowContext(ctx, query, userUID, models.PaymentCompleted).Scan(
		&p.ID, &p.UserUID, &membershipID, &p.Amount, &p.Method, &p.Status, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if membershipID.Valid {
		p.MembershipID = &membershipID.Int64
	}
	return &p, nil
}

// UpdatePaymentStatus переводит платёж в новый статус и возвращает
// количество изменённых строк.
func (s *Storage) UpdatePaymentStatus(ctx context.Context, id int64, status string) (int, error) {
	const op = "storage.UpdatePaymentStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments SET status = $1 WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
