package booking

type BookingRequest struct {
	Unit           string   `json:"unit" validate:"required,max=32"`
	GuestName      string   `json:"guest_name" validate:"omitempty,max=200"`
	GuestPhone     string   `json:"guest_phone" validate:"omitempty,max=32"`
	GuestEmail     string   `json:"guest_email" validate:"omitempty,email"`
	CheckIn        string   `json:"check_in" validate:"required"`
	CheckOut       string   `json:"check_out" validate:"required"`
	Source         string   `json:"source" validate:"omitempty,max=64"`
	RentAmount     *float64 `json:"rent_amount" validate:"omitempty,gte=0"`
	CleaningFee    *float64 `json:"cleaning_fee" validate:"omitempty,gte=0"`
	CommissionRate *float64 `json:"commission_rate" validate:"omitempty,gte=0,lte=100"`
	Notes          string   `json:"notes" validate:"omitempty,max=2000"`
}

type ValidateRequest struct {
	Unit             string `json:"unit" validate:"required"`
	CheckIn          string `json:"check_in" validate:"required"`
	CheckOut         string `json:"check_out" validate:"required"`
	ExcludeBookingID int64  `json:"exclude_booking_id" validate:"gte=0"`
}

type PaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type ListQuery struct {
	Unit string
	From string
	To   string
}
