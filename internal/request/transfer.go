package request

import "github.com/hendrawan-dev/saldo-api/internal/domain"

type CreateTransfer struct {
	TransferFrom   int   `json:"transfer_from"`
	TransferTo     int   `json:"transfer_to"`
	TransferAmount int64 `json:"transfer_amount"`
}

func (r CreateTransfer) Validate() error {
	if r.TransferFrom <= 0 {
		return domain.Invalid("Transfer from must be a positive integer")
	}
	if r.TransferTo <= 0 {
		return domain.Invalid("Transfer to must be a positive integer")
	}
	if r.TransferAmount < domain.MinimumBalance {
		return domain.Invalid("Transfer amount must be at least 50,000")
	}
	return nil
}

type UpdateTransfer struct {
	TransferID     int   `json:"transfer_id"`
	TransferFrom   int   `json:"transfer_from"`
	TransferTo     int   `json:"transfer_to"`
	TransferAmount int64 `json:"transfer_amount"`
}

func (r UpdateTransfer) Validate() error {
	if r.TransferID <= 0 {
		return domain.Invalid("Transfer ID must be a positive integer")
	}
	if r.TransferFrom <= 0 {
		return domain.Invalid("Transfer from must be a positive integer")
	}
	if r.TransferTo <= 0 {
		return domain.Invalid("Transfer to must be a positive integer")
	}
	if r.TransferAmount < domain.MinimumBalance {
		return domain.Invalid("Transfer amount must be at least 50,000")
	}
	return nil
}
