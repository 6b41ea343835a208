package domain

import (
	"math"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/dateutil"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// Booking is a confirmed guest reservation for a unit. CheckIn < CheckOut is
// expected but only enforced by the booking service.
type Booking struct {
	ID             int64         `json:"id"`
	Unit           string        `json:"unit"`
	GuestName      string        `json:"guest_name,omitempty"`
	GuestPhone     string        `json:"guest_phone,omitempty"`
	GuestEmail     string        `json:"guest_email,omitempty"`
	CheckIn        time.Time     `json:"check_in"`
	CheckOut       time.Time     `json:"check_out"`
	Source         string        `json:"source,omitempty"`
	RentAmount     float64       `json:"rent_amount"`
	CleaningFee    float64       `json:"cleaning_fee"`
	CommissionRate float64       `json:"commission_rate"`
	AmountPaid     float64       `json:"amount_paid"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	PaymentLinkID  string        `json:"payment_link_id,omitempty"`
	PaymentLinkURL string        `json:"payment_link_url,omitempty"`
	Notes          string        `json:"notes,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (b *Booking) Nights() int {
	return dateutil.Nights(b.CheckIn, b.CheckOut)
}

func (b *Booking) Total() float64 {
	return round2(b.RentAmount + b.CleaningFee)
}

// Commission is charged on the rent only, CommissionRate is a percentage.
func (b *Booking) Commission() float64 {
	return round2(b.RentAmount * b.CommissionRate / 100)
}

func (b *Booking) Balance() float64 {
	return round2(b.Total() - b.AmountPaid)
}

// RefreshPaymentStatus derives PaymentStatus from AmountPaid and Total.
func (b *Booking) RefreshPaymentStatus() {
	switch {
	case b.Total() > 0 && b.AmountPaid >= b.Total():
		b.PaymentStatus = PaymentPaid
	case b.AmountPaid > 0:
		b.PaymentStatus = PaymentPartial
	default:
		b.PaymentStatus = PaymentPending
	}
}

type BookingFilter struct {
	Unit string
	// From/To select bookings whose stay intersects [From, To).
	From time.Time
	To   time.Time
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
