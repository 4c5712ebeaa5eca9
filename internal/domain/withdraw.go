package domain

import "time"

// Withdraw records a debit operation, bounded by the owner's available funds
// at creation time.
type Withdraw struct {
	WithdrawID     int       `json:"withdraw_id"`
	UserID         int       `json:"user_id"`
	WithdrawAmount int64     `json:"withdraw_amount"`
	WithdrawTime   time.Time `json:"withdraw_time"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
