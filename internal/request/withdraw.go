package request

import (
	"time"

	"github.com/hendrawan-dev/saldo-api/internal/domain"
)

type CreateWithdraw struct {
	UserID         int       `json:"user_id"`
	WithdrawAmount int64     `json:"withdraw_amount"`
	WithdrawTime   time.Time `json:"withdraw_time"`
}

func (r CreateWithdraw) Validate() error {
	if r.UserID <= 0 {
		return domain.Invalid("User ID must be positive")
	}
	if r.WithdrawAmount <= domain.MinimumBalance {
		return domain.Invalid("Withdraw amount must be at least 50,000")
	}
	if r.WithdrawTime.After(time.Now()) {
		return domain.Invalid("Withdraw time cannot be in the future")
	}
	return nil
}

type UpdateWithdraw struct {
	UserID         int       `json:"user_id"`
	WithdrawID     int       `json:"withdraw_id"`
	WithdrawAmount int64     `json:"withdraw_amount"`
	WithdrawTime   time.Time `json:"withdraw_time"`
}

func (r UpdateWithdraw) Validate() error {
	if r.UserID <= 0 {
		return domain.Invalid("User ID must be positive")
	}
	if r.WithdrawID <= 0 {
		return domain.Invalid("Withdraw ID must be positive")
	}
	if r.WithdrawAmount <= domain.MinimumBalance {
		return domain.Invalid("Withdraw amount must be at least 50,000")
	}
	if r.WithdrawTime.After(time.Now()) {
		return domain.Invalid("Withdraw time cannot be in the future")
	}
	return nil
}
