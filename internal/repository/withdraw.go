package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hendrawan-dev/saldo-api/internal/domain"
)

const withdrawColumns = `withdraw_id, user_id, withdraw_amount, withdraw_time,
	created_at, updated_at`

// WithdrawRepository is the withdraw side of the operation ledger.
type WithdrawRepository struct {
	db *sql.DB
}

func NewWithdrawRepository(db *sql.DB) *WithdrawRepository {
	return &WithdrawRepository{db: db}
}

func (r *WithdrawRepository) List(ctx context.Context) ([]domain.Withdraw, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+withdrawColumns+` FROM withdraws ORDER BY withdraw_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer rows.Close()
	return collectWithdraws(rows, "List")
}

func (r *WithdrawRepository) GetByID(ctx context.Context, id int) (*domain.Withdraw, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+withdrawColumns+` FROM withdraws WHERE withdraw_id = $1`, id,
	)
	w, err := scanWithdraw(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return w, nil
}

// GetByUserID returns the owner's most recent withdraw.
func (r *WithdrawRepository) GetByUserID(ctx context.Context, userID int) (*domain.Withdraw, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+withdrawColumns+` FROM withdraws WHERE user_id = $1
		ORDER BY withdraw_id DESC LIMIT 1`, userID,
	)
	w, err := scanWithdraw(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByUserID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByUserID: %w", err)
	}
	return w, nil
}

func (r *WithdrawRepository) ListByUserID(ctx context.Context, userID int) ([]domain.Withdraw, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+withdrawColumns+` FROM withdraws WHERE user_id = $1 ORDER BY withdraw_id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByUserID: %w", err)
	}
	defer rows.Close()
	return collectWithdraws(rows, "ListByUserID")
}

func (r *WithdrawRepository) Create(ctx context.Context, userID int, amount int64, withdrawTime time.Time) (*domain.Withdraw, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO withdraws (user_id, withdraw_amount, withdraw_time)
		VALUES ($1, $2, $3)
		RETURNING `+withdrawColumns,
		userID, amount, withdrawTime,
	)
	w, err := scanWithdraw(row)
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return w, nil
}

func (r *WithdrawRepository) Update(ctx context.Context, id int, amount int64, withdrawTime time.Time) (*domain.Withdraw, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE withdraws SET withdraw_amount = $1, withdraw_time = $2, updated_at = now()
		WHERE withdraw_id = $3
		RETURNING `+withdrawColumns,
		amount, withdrawTime, id,
	)
	w, err := scanWithdraw(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Update: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Update: %w", err)
	}
	return w, nil
}

func (r *WithdrawRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM withdraws WHERE withdraw_id = $1`, id)
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

func collectWithdraws(rows *sql.Rows, op string) ([]domain.Withdraw, error) {
	var withdraws []domain.Withdraw
	for rows.Next() {
		w, err := scanWithdraw(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		withdraws = append(withdraws, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return withdraws, nil
}

func scanWithdraw(s scanner) (*domain.Withdraw, error) {
	var w domain.Withdraw
	err := s.Scan(
		&w.WithdrawID, &w.UserID, &w.WithdrawAmount, &w.WithdrawTime,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
