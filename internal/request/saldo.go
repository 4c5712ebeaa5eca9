// Package request holds the typed operation requests and their fail-fast
// validation rules. Validate returns the first violated rule only; callers
// must not proceed to any mutation when it is non-nil.
package request

import (
	"time"

	"github.com/hendrawan-dev/saldo-api/internal/domain"
)

type CreateSaldo struct {
	UserID       int   `json:"user_id"`
	TotalBalance int64 `json:"total_balance"`
}

func (r CreateSaldo) Validate() error {
	if r.UserID <= 0 {
		return domain.Invalid("User ID must be greater than 0")
	}
	if r.TotalBalance < domain.MinimumBalance {
		return domain.Invalid("total balance must be greater than or equal to 50000")
	}
	return nil
}

type UpdateSaldo struct {
	SaldoID        int        `json:"saldo_id"`
	UserID         int        `json:"user_id"`
	TotalBalance   int64      `json:"total_balance"`
	WithdrawAmount *int64     `json:"withdraw_amount"`
	WithdrawTime   *time.Time `json:"withdraw_time"`
}

func (r UpdateSaldo) Validate() error {
	if r.SaldoID <= 0 {
		return domain.Invalid("Saldo ID must be greater than 0")
	}
	if r.UserID <= 0 {
		return domain.Invalid("User ID must be greater than 0")
	}
	if r.TotalBalance < 0 {
		return domain.Invalid("total balance must be greater than or equal to 50000")
	}
	if r.WithdrawAmount != nil && r.WithdrawTime != nil {
		return domain.Invalid("Only one of withdraw_amount or withdraw_time can be provided")
	}
	if r.WithdrawAmount == nil && r.WithdrawTime == nil {
		return domain.Invalid("Either withdraw_amount or withdraw_time must be provided")
	}
	return nil
}
