package contract

// ContractRequest creates or replaces a contract. With BookingID set, empty
// fields are taken from the booking.
type ContractRequest struct {
	BookingID      *int64   `json:"booking_id" validate:"omitempty,gt=0"`
	Unit           string   `json:"unit" validate:"omitempty,max=20"`
	TenantName     string   `json:"tenant_name" validate:"omitempty,max=200"`
	TenantDocument string   `json:"tenant_document" validate:"omitempty,max=30"`
	TenantPhone    string   `json:"tenant_phone" validate:"omitempty,max=30"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	MonthlyRent    *float64 `json:"monthly_rent" validate:"omitempty,gte=0"`
	Deposit        *float64 `json:"deposit" validate:"omitempty,gte=0"`
	Template       string   `json:"template"`
	Status         string   `json:"status" validate:"omitempty,oneof=draft active closed"`
}
