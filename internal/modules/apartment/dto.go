package apartment

type CreateApartmentRequest struct {
	Unit string `json:"unit" validate:"required,max=32"`
	UpdateApartmentRequest
}

// UpdateApartmentRequest carries every editable field; the unit code is fixed
// once created because bookings and blocks reference it.
type UpdateApartmentRequest struct {
	Name           string  `json:"name" validate:"omitempty,max=200"`
	Address        string  `json:"address" validate:"omitempty,max=500"`
	OwnerName      string  `json:"owner_name" validate:"omitempty,max=200"`
	OwnerPhone     string  `json:"owner_phone" validate:"omitempty,max=32"`
	OwnerEmail     string  `json:"owner_email" validate:"omitempty,email"`
	DailyRate      float64 `json:"daily_rate" validate:"gte=0"`
	CleaningFee    float64 `json:"cleaning_fee" validate:"gte=0"`
	CommissionRate float64 `json:"commission_rate" validate:"gte=0,lte=100"`
	Active         *bool   `json:"active"`
}
