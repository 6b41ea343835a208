package payment

const ProviderStripe = "stripe"

type LinkRequest struct {
	BookingID   int64
	Unit        string
	Description string
	// Amount is in major units (reais).
	Amount   float64
	Currency string
}

type Link struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CheckoutCompleted is the part of a finished checkout this service acts on.
type CheckoutCompleted struct {
	SessionID string
	BookingID int64
	// AmountTotal is in minor units (centavos), as reported by the provider.
	AmountTotal int64
	Paid        bool
}
