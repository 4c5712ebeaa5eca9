package domain

import "time"

// Transfer records an atomic two-account movement: TransferFrom is debited,
// TransferTo is credited.
type Transfer struct {
	TransferID     int       `json:"transfer_id"`
	TransferFrom   int       `json:"transfer_from"`
	TransferTo     int       `json:"transfer_to"`
	TransferAmount int64     `json:"transfer_amount"`
	TransferTime   time.Time `json:"transfer_time"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
