package calendar

type BlockRequest struct {
	Unit      string  `json:"unit" validate:"required,max=32"`
	StartDate string  `json:"start_date" validate:"required"`
	EndDate   string  `json:"end_date" validate:"required"`
	Status    string  `json:"status" validate:"required,oneof=available occupied blocked maintenance"`
	GuestName string  `json:"guest_name" validate:"omitempty,max=200"`
	DailyRate float64 `json:"daily_rate" validate:"gte=0"`
	Notes     string  `json:"notes" validate:"omitempty,max=2000"`
}
