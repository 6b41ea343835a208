package domain

import "time"

// PaymentReceipt records one provider checkout credited to a booking. The
// (provider, session_id) pair is unique so a checkout is credited once.
type PaymentReceipt struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	BookingID int64     `json:"booking_id" gorm:"index;not null"`
	Provider  string    `json:"provider" gorm:"uniqueIndex:idx_receipt_session;not null"`
	SessionID string    `json:"session_id" gorm:"uniqueIndex:idx_receipt_session;not null"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}
