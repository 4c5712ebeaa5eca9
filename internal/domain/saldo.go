package domain

import "time"

// Saldo is the mutable balance record for one account owner. One row per user,
// enforced by a unique index on user_id. TotalBalance is in the minimum unit
// of currency and must never go negative.
type Saldo struct {
	SaldoID        int        `json:"saldo_id"`
	UserID         int        `json:"user_id"`
	TotalBalance   int64      `json:"total_balance"`
	WithdrawAmount *int64     `json:"withdraw_amount"`
	WithdrawTime   *time.Time `json:"withdraw_time"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// MinimumBalance is the smallest opening balance, topup, transfer or withdraw
// amount the gateway accepts. A business constant, not configuration.
const MinimumBalance int64 = 50000
