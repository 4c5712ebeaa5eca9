package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/hendrawan-dev/saldo-api/internal/domain"
)

const saldoColumns = `saldo_id, user_id, total_balance, withdraw_amount, withdraw_time,
	created_at, updated_at`

// SaldoRepository is the balance store: one row per owner, enforced by the
// unique index on user_id. SetTotal and SetWithdrawal are the debit/credit
// primitives the coordinators build on; neither carries a concurrency token,
// so callers serialize mutations per owner themselves.
type SaldoRepository struct {
	db *sql.DB
}

func NewSaldoRepository(db *sql.DB) *SaldoRepository {
	return &SaldoRepository{db: db}
}

func (r *SaldoRepository) List(ctx context.Context) ([]domain.Saldo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+saldoColumns+` FROM saldo ORDER BY saldo_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer rows.Close()

	var saldos []domain.Saldo
	for rows.Next() {
		s, err := scanSaldo(rows)
		if err != nil {
			return nil, fmt.Errorf("List: scan: %w", err)
		}
		saldos = append(saldos, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows: %w", err)
	}
	return saldos, nil
}

func (r *SaldoRepository) GetByID(ctx context.Context, id int) (*domain.Saldo, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+saldoColumns+` FROM saldo WHERE saldo_id = $1`, id,
	)
	s, err := scanSaldo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return s, nil
}

func (r *SaldoRepository) GetByUserID(ctx context.Context, userID int) (*domain.Saldo, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+saldoColumns+` FROM saldo WHERE user_id = $1`, userID,
	)
	s, err := scanSaldo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByUserID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByUserID: %w", err)
	}
	return s, nil
}

func (r *SaldoRepository) ListByUserID(ctx context.Context, userID int) ([]domain.Saldo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+saldoColumns+` FROM saldo WHERE user_id = $1 ORDER BY saldo_id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByUserID: %w", err)
	}
	defer rows.Close()

	var saldos []domain.Saldo
	for rows.Next() {
		s, err := scanSaldo(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByUserID: scan: %w", err)
		}
		saldos = append(saldos, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByUserID: rows: %w", err)
	}
	return saldos, nil
}

// Create inserts the owner's saldo row. A second row for the same owner fails
// with domain.ErrSaldoExists rather than upserting.
func (r *SaldoRepository) Create(ctx context.Context, userID int, totalBalance int64) (*domain.Saldo, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO saldo (user_id, total_balance) VALUES ($1, $2)
		RETURNING `+saldoColumns,
		userID, totalBalance,
	)
	s, err := scanSaldo(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("Create: %w", domain.ErrSaldoExists)
		}
		return nil, fmt.Errorf("Create: %w", err)
	}
	return s, nil
}

// Update overwrites total_balance and the withdrawal metadata by saldo id.
func (r *SaldoRepository) Update(ctx context.Context, id int, totalBalance int64, withdrawAmount *int64, withdrawTime *time.Time) (*domain.Saldo, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE saldo
		SET total_balance = $1, withdraw_amount = $2, withdraw_time = $3, updated_at = now()
		WHERE saldo_id = $4
		RETURNING `+saldoColumns,
		totalBalance, withdrawAmount, withdrawTime, id,
	)
	s, err := scanSaldo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Update: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Update: %w", err)
	}
	return s, nil
}

// SetTotal overwrites the owner's total_balance. This is the debit/credit
// primitive used by every coordinator.
func (r *SaldoRepository) SetTotal(ctx context.Context, userID int, newTotal int64) (*domain.Saldo, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE saldo SET total_balance = $1, updated_at = now()
		WHERE user_id = $2
		RETURNING `+saldoColumns,
		newTotal, userID,
	)
	s, err := scanSaldo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("SetTotal: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("SetTotal: %w", err)
	}
	return s, nil
}

// SetWithdrawal overwrites the balance together with the last-withdrawal
// metadata in one statement. Withdraw compensation passes nils to clear it.
func (r *SaldoRepository) SetWithdrawal(ctx context.Context, userID int, newTotal int64, withdrawAmount *int64, withdrawTime *time.Time) (*domain.Saldo, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE saldo
		SET total_balance = $1, withdraw_amount = $2, withdraw_time = $3, updated_at = now()
		WHERE user_id = $4
		RETURNING `+saldoColumns,
		newTotal, withdrawAmount, withdrawTime, userID,
	)
	s, err := scanSaldo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("SetWithdrawal: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("SetWithdrawal: %w", err)
	}
	return s, nil
}

func (r *SaldoRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saldo WHERE saldo_id = $1`, id)
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

func scanSaldo(s scanner) (*domain.Saldo, error) {
	var (
		sal            domain.Saldo
		withdrawAmount sql.NullInt64
		withdrawTime   sql.NullTime
	)
	err := s.Scan(
		&sal.SaldoID, &sal.UserID, &sal.TotalBalance,
		&withdrawAmount, &withdrawTime,
		&sal.CreatedAt, &sal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if withdrawAmount.Valid {
		sal.WithdrawAmount = &withdrawAmount.Int64
	}
	if withdrawTime.Valid {
		sal.WithdrawTime = &withdrawTime.Time
	}
	return &sal, nil
}
