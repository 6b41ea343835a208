package expense

type ExpenseRequest struct {
	Unit        string  `json:"unit" validate:"required,max=32"`
	Category    string  `json:"category" validate:"required,oneof=cleaning maintenance utilities condo taxes supplies other"`
	Description string  `json:"description" validate:"omitempty,max=1000"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Date        string  `json:"date" validate:"required"`
	Paid        bool    `json:"paid"`
}

type Summary struct {
	Month      string                        `json:"month"`
	Total      float64                       `json:"total"`
	ByUnit     map[string]float64            `json:"by_unit"`
	ByCategory map[string]float64            `json:"by_category"`
	Breakdown  map[string]map[string]float64 `json:"breakdown"`
}
