package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hendrawan-dev/saldo-api/internal/domain"
)

const transferColumns = `transfer_id, transfer_from, transfer_to, transfer_amount, transfer_time,
	created_at, updated_at`

// TransferRepository is the transfer side of the operation ledger. Delete is
// the compensation primitive for failed transfer balance mutations.
type TransferRepository struct {
	db *sql.DB
}

func NewTransferRepository(db *sql.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) List(ctx context.Context) ([]domain.Transfer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transferColumns+` FROM transfers ORDER BY transfer_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer rows.Close()
	return collectTransfers(rows, "List")
}

func (r *TransferRepository) GetByID(ctx context.Context, id int) (*domain.Transfer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transferColumns+` FROM transfers WHERE transfer_id = $1`, id,
	)
	t, err := scanTransfer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return t, nil
}

// GetByUserID returns the most recent transfer sent by the owner.
func (r *TransferRepository) GetByUserID(ctx context.Context, userID int) (*domain.Transfer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transferColumns+` FROM transfers WHERE transfer_from = $1
		ORDER BY transfer_id DESC LIMIT 1`, userID,
	)
	t, err := scanTransfer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByUserID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByUserID: %w", err)
	}
	return t, nil
}

// ListByUserID returns transfers the owner took part in, on either side.
func (r *TransferRepository) ListByUserID(ctx context.Context, userID int) ([]domain.Transfer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transferColumns+` FROM transfers
		WHERE transfer_from = $1 OR transfer_to = $1 ORDER BY transfer_id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByUserID: %w", err)
	}
	defer rows.Close()
	return collectTransfers(rows, "ListByUserID")
}

func (r *TransferRepository) Create(ctx context.Context, from, to int, amount int64) (*domain.Transfer, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO transfers (transfer_from, transfer_to, transfer_amount, transfer_time)
		VALUES ($1, $2, $3, now())
		RETURNING `+transferColumns,
		from, to, amount,
	)
	t, err := scanTransfer(row)
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return t, nil
}

func (r *TransferRepository) Update(ctx context.Context, id, from, to int, amount int64) (*domain.Transfer, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE transfers
		SET transfer_from = $1, transfer_to = $2, transfer_amount = $3, updated_at = now()
		WHERE transfer_id = $4
		RETURNING `+transferColumns,
		from, to, amount, id,
	)
	t, err := scanTransfer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Update: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Update: %w", err)
	}
	return t, nil
}

func (r *TransferRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transfers WHERE transfer_id = $1`, id)
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

func collectTransfers(rows *sql.Rows, op string) ([]domain.Transfer, error) {
	var transfers []domain.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		transfers = append(transfers, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return transfers, nil
}

func scanTransfer(s scanner) (*domain.Transfer, error) {
	var t domain.Transfer
	err := s.Scan(
		&t.TransferID, &t.TransferFrom, &t.TransferTo, &t.TransferAmount,
		&t.TransferTime, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
