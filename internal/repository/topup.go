package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hendrawan-dev/saldo-api/internal/domain"
)

const topupColumns = `topup_id, user_id, topup_no, topup_amount, topup_method, topup_time,
	created_at, updated_at`

// TopupRepository is the topup side of the operation ledger. Records are
// append-only; UpdateAmount and Delete exist solely so a coordinator can
// compensate after a failed balance mutation.
type TopupRepository struct {
	db *sql.DB
}

func NewTopupRepository(db *sql.DB) *TopupRepository {
	return &TopupRepository{db: db}
}

func (r *TopupRepository) List(ctx context.Context) ([]domain.Topup, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+topupColumns+` FROM topups ORDER BY topup_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer rows.Close()
	return collectTopups(rows, "List")
}

func (r *TopupRepository) GetByID(ctx context.Context, id int) (*domain.Topup, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+topupColumns+` FROM topups WHERE topup_id = $1`, id,
	)
	t, err := scanTopup(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return t, nil
}

// GetByUserID returns the owner's most recent topup.
func (r *TopupRepository) GetByUserID(ctx context.Context, userID int) (*domain.Topup, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+topupColumns+` FROM topups WHERE user_id = $1
		ORDER BY topup_id DESC LIMIT 1`, userID,
	)
	t, err := scanTopup(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByUserID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByUserID: %w", err)
	}
	return t, nil
}

func (r *TopupRepository) ListByUserID(ctx context.Context, userID int) ([]domain.Topup, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+topupColumns+` FROM topups WHERE user_id = $1 ORDER BY topup_id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByUserID: %w", err)
	}
	defer rows.Close()
	return collectTopups(rows, "ListByUserID")
}

func (r *TopupRepository) Create(ctx context.Context, userID int, topupNo string, amount int64, method string, topupTime time.Time) (*domain.Topup, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO topups (user_id, topup_no, topup_amount, topup_method, topup_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+topupColumns,
		userID, topupNo, amount, method, topupTime,
	)
	t, err := scanTopup(row)
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return t, nil
}

// Update rewrites amount and method for the business update operation.
func (r *TopupRepository) Update(ctx context.Context, id int, amount int64, method string) (*domain.Topup, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE topups SET topup_amount = $1, topup_method = $2, updated_at = now()
		WHERE topup_id = $3
		RETURNING `+topupColumns,
		amount, method, id,
	)
	t, err := scanTopup(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Update: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Update: %w", err)
	}
	return t, nil
}

// UpdateAmount is compensation-only: it reverts a record to its prior amount
// after a failed balance mutation.
func (r *TopupRepository) UpdateAmount(ctx context.Context, id int, amount int64) (*domain.Topup, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE topups SET topup_amount = $1, updated_at = now()
		WHERE topup_id = $2
		RETURNING `+topupColumns,
		amount, id,
	)
	t, err := scanTopup(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("UpdateAmount: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("UpdateAmount: %w", err)
	}
	return t, nil
}

func (r *TopupRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM topups WHERE topup_id = $1`, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func collectTopups(rows *sql.Rows, op string) ([]domain.Topup, error) {
	var topups []domain.Topup
	for rows.Next() {
		t, err := scanTopup(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		topups = append(topups, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return topups, nil
}

func scanTopup(s scanner) (*domain.Topup, error) {
	var t domain.Topup
	err := s.Scan(
		&t.TopupID, &t.UserID, &t.TopupNo, &t.TopupAmount, &t.TopupMethod,
		&t.TopupTime, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
