package domain

import "time"

// Topup is an immutable record of a credit operation. Its amount is only ever
// rewritten by compensation when the paired balance mutation fails.
type Topup struct {
	TopupID     int       `json:"topup_id"`
	UserID      int       `json:"user_id"`
	TopupNo     string    `json:"topup_no"`
	TopupAmount int64     `json:"topup_amount"`
	TopupMethod string    `json:"topup_method"`
	TopupTime   time.Time `json:"topup_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
