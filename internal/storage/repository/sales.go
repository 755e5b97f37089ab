package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dparedesb/gymcontrol/internal/models"
)

// CreateSale проводит продажу в одной транзакции: списывает остаток и
// вставляет запись продажи. Условие stock >= quantity в самом UPDATE
// не даёт остатку уйти в минус при конкурентных продажах.
func (s *Storage) CreateSale(ctx context.Context, sale models.Sale) (int64, error) {
	const op = "storage.CreateSale"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx,
		`UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`,
		sale.Quantity, sale.ProductID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		// Либо товара нет, либо остатка не хватает.
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, sale.ProductID).Scan(&exists); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		if !exists {
			return 0, fmt.Errorf("%s: product %d: %w", op, sale.ProductID, ErrNotFound)
		}
		return 0, fmt.Errorf("%s: product %d: %w", op, sale.ProductID, ErrInsufficientStock)
	}

	var newID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO sales (product_id, user_uid, quantity, total)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		sale.ProductID, sale.UserUID, sale.Quantity, sale.Total).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListSales возвращает список продаж с пагинацией, от новых к старым.
func (s *Storage) ListSales(ctx context.Context, limit, offset int) ([]*models.Sale, error) {
	const op = "storage.ListSales"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, product_id, user_uid, quantity, total, created_at
			  FROM sales
			  ORDER BY created_at DESC, id DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Sale
	for rows.Next() {
		var sale models.Sale
		var userUID sql.NullString
		if err := rows.Scan(&sale.ID, &sale.ProductID, &userUID, &sale.Quantity, &sale.Total, &sale.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if userUID.Valid {
			sale.UserUID = &userUID.String
		}
		result = append(result, &sale)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
