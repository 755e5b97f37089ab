package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dparedesb/gymcontrol/internal/models"
)

// CreateMembership вставляет новый абонемент и возвращает его ID.
func (s *Storage) CreateMembership(ctx context.Context, m models.Membership) (int64, error) {
	const op = "storage.CreateMembership"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO memberships (user_uid, plan_id, start_date, end_date, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		m.UserUID, m.PlanID, m.StartDate, m.EndDate, m.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadMembership возвращает абонемент по его ID.
func (s *Storage) ReadMembership(ctx context.Context, id int64) (*models.Membership, error) {
	const op = "storage.ReadMembership"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, plan_id, start_date, end_date, status, created_at
			  FROM memberships WHERE id = $1`
	var m models.Membership
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.UserUID, &m.PlanID, &m.StartDate, &m.EndDate, &m.Status, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

// LatestMembership возвращает самый поздний по дате начала абонемент
// пользователя. При нескольких абонементах с одной датой начала порядок
// добивается по id, чтобы выбор был детерминированным.
func (s *Storage) LatestMembership(ctx context.Context, userUID string) (*models.Membership, error) {
	const op = "storage.LatestMembership"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, plan_id, start_date, end_date, status, created_at
			  FROM memberships
			  WHERE user_uid = $1
			  ORDER BY start_date DESC, id DESC
			  LIMIT 1`
	var m models.Membership
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(
		&m.ID, &m.UserUID, &m.PlanID, &m.StartDate, &m.EndDate, &m.Status, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

// ListMemberships возвращает список абонементов с пагинацией.
func (s *Storage) ListMemberships(ctx context.Context, limit, offset int) ([]*models.Membership, error) {
	const op = "storage.ListMemberships"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, plan_id, start_date, end_date, status, created_at
			  FROM memberships
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Membership
	for rows.Next() {
		var m models.Membership
		if err := rows.Scan(&m.ID, &m.UserUID, &m.PlanID, &m.StartDate, &m.EndDate, &m.Status, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RenewMembership продлевает абонемент: сдвигает даты и переводит статус
// в ACTIVE. Возвращает количество изменённых строк.
func (s *Storage) RenewMembership(ctx context.Context, id int64, startDate, endDate time.Time) (int, error) {
	const op = "storage.RenewMembership"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE memberships
			  SET start_date = $1, end_date = $2, status = $3
			  WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query, startDate, endDate, models.MembershipActive, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateMembershipStatus выставляет хранимый статус абонемента
// (ручная приостановка или активация персоналом).
func (s *Storage) UpdateMembershipStatus(ctx context.Context, id int64, status string) (int, error) {
	const op = "storage.UpdateMembershipStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE memberships SET status = $1 WHERE id = $2`
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
