package request

import "github.com/hendrawan-dev/saldo-api/internal/domain"

type CreateTopup struct {
	UserID      int    `json:"user_id"`
	TopupNo     string `json:"topup_no"`
	TopupAmount int64  `json:"topup_amount"`
	TopupMethod string `json:"topup_method"`
}

func (r CreateTopup) Validate() error {
	if r.UserID <= 0 {
		return domain.Invalid("User ID must be a positive integer")
	}
	if r.TopupNo == "" {
		return domain.Invalid("Top-up number is required")
	}
	if r.TopupAmount <= domain.MinimumBalance {
		return domain.Invalid("Topup amount must be greater than or equal to 50000")
	}
	if r.TopupMethod == "" {
		return domain.Invalid("Top-up method is required")
	}
	if !IsValidPaymentMethod(r.TopupMethod) {
		return domain.Invalid("Topup method not found")
	}
	return nil
}

type UpdateTopup struct {
	UserID      int    `json:"user_id"`
	TopupID     int    `json:"topup_id"`
	TopupAmount int64  `json:"topup_amount"`
	TopupMethod string `json:"topup_method"`
}

func (r UpdateTopup) Validate() error {
	if r.UserID <= 0 {
		return domain.Invalid("User ID must be a positive integer")
	}
	if r.TopupID <= 0 {
		return domain.Invalid("Top-up ID must be a positive integer")
	}
	if r.TopupAmount <= domain.MinimumBalance {
		return domain.Invalid("Topup amount must be greater than or equal to 50000")
	}
	if r.TopupMethod == "" {
		return domain.Invalid("Top-up method is required")
	}
	if !IsValidPaymentMethod(r.TopupMethod) {
		return domain.Invalid("Topup method not found")
	}
	return nil
}
