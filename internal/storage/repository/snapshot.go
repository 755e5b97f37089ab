package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dparedesb/gymcontrol/internal/models"
)

// GetMemberSnapshot собирает срез данных члена клуба: сам пользователь,
// его самый поздний абонемент, план абонемента и последний завершённый
// платёж. Отсутствие абонемента или платежа — легитимное состояние среза,
// не ошибка.
func (s *Storage) GetMemberSnapshot(ctx context.Context, user *models.User) (*models.MemberSnapshot, error) {
	const op = "storage.GetMemberSnapshot"

	snap := &models.MemberSnapshot{User: *user}

	m, err := s.LatestMembership(ctx, user.UID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return snap, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	snap.Membership = m

	plan, err := s.ReadPlan(ctx, m.PlanID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	snap.Plan = plan

	pay, err := s.LatestCompletedPayment(ctx, user.UID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	snap.LatestPayment = pay

	return snap, nil
}

// ListMemberSnapshots возвращает срезы всех членов клуба одним запросом —
// для отчёта о статусе оплат. latest-абонемент и latest-платёж выбираются
// латеральными подзапросами с тем же тотальным порядком, что и одиночные
// методы.
func (s *Storage) ListMemberSnapshots(ctx context.Context, limit, offset int) ([]models.MemberSnapshot, error) {
	const op = "storage.ListMemberSnapshots"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.uid, u.username, u.full_name, u.email, u.cedula, u.holler, u.phone, u.active, u.role, u.created_at,
				  m.id, m.plan_id, m.start_date, m.end_date, m.status,
				  pl.id, pl.name, pl.duration_days, pl.price,
				  p.id, p.membership_id, p.amount, p.method, p.status, p.created_at
			  FROM users u
			  LEFT JOIN LATERAL (
				  SELECT * FROM memberships
				  WHERE user_uid = u.uid
				  ORDER BY start_date DESC, id DESC
				  LIMIT 1
			  ) m ON true
			  LEFT JOIN plans pl ON pl.id = m.plan_id
			  LEFT JOIN LATERAL (
				  SELECT * FROM payments
				  WHERE user_uid = u.uid AND status = 'COMPLETED'
				  ORDER BY created_at DESC, id DESC
				  LIMIT 1
			  ) p ON true
			  WHERE u.role = 'member'
			  ORDER BY u.created_at, u.uid
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.MemberSnapshot
	for rows.Next() {
		var snap models.MemberSnapshot
		var (
			mID        sql.NullInt64
			mPlanID    sql.NullInt64
			mStart     sql.NullTime
			mEnd       sql.NullTime
			mStatus    sql.NullString
			plID       sql.NullInt64
			plName     sql.NullString
			plDuration sql.NullInt64
			plPrice    sql.NullFloat64
			pID        sql.NullInt64
			pMembID    sql.NullInt64
			pAmount    sql.NullFloat64
			pMethod    sql.NullString
			pStatus    sql.NullString
			pCreated   sql.NullTime
		)
		u := &snap.User
		if err := rows.Scan(&u.UID, &u.Username, &u.FullName, &u.Email, &u.Cedula, &u.Holler,
			&u.Phone, &u.Active, &u.Role, &u.CreatedAt,
			&mID, &mPlanID, &mStart, &mEnd, &mStatus,
			&plID, &plName, &plDuration, &plPrice,
			&pID, &pMembID, &pAmount, &pMethod, &pStatus, &pCreated); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if mID.Valid {
			snap.Membership = &models.Membership{
				ID:        mID.Int64,
				UserUID:   u.UID,
				PlanID:    mPlanID.Int64,
				StartDate: mStart.Time,
				EndDate:   mEnd.Time,
				Status:    mStatus.String,
			}
		}
		if plID.Valid {
			snap.Plan = &models.Plan{
				ID:           plID.Int64,
				Name:         plName.String,
				DurationDays: int(plDuration.Int64),
				Price:        plPrice.Float64,
			}
		}
		if pID.Valid {
			payment := &models.Payment{
				ID:        pID.Int64,
				UserUID:   u.UID,
				Amount:    pAmount.Float64,
				Method:    pMethod.String,
				Status:    pStatus.String,
				CreatedAt: pCreated.Time,
			}
			if pMembID.Valid {
				payment.MembershipID = &pMembID.Int64
			}
			snap.LatestPayment = payment
		}
		result = append(result, snap)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
