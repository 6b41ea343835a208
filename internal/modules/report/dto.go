package report

import "time"

type UnitOccupancy struct {
	Unit           string  `json:"unit"`
	OccupiedNights int     `json:"occupied_nights"`
	BlockedNights  int     `json:"blocked_nights"`
	Rate           float64 `json:"rate"`
}

type OccupancyReport struct {
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	Days        int             `json:"days"`
	Units       []UnitOccupancy `json:"units"`
	AverageRate float64         `json:"average_rate"`
}

type UnitFinancial struct {
	Unit       string  `json:"unit"`
	Bookings   int     `json:"bookings"`
	Revenue    float64 `json:"revenue"`
	Received   float64 `json:"received"`
	Pending    float64 `json:"pending"`
	Commission float64 `json:"commission"`
	Expenses   float64 `json:"expenses"`
	Net        float64 `json:"net"`
}

type FinancialReport struct {
	From   time.Time       `json:"from"`
	To     time.Time       `json:"to"`
	Units  []UnitFinancial `json:"units"`
	Totals UnitFinancial   `json:"totals"`
}

type Movement struct {
	BookingID  int64  `json:"booking_id"`
	Unit       string `json:"unit"`
	GuestName  string `json:"guest_name"`
	GuestPhone string `json:"guest_phone,omitempty"`
	Nights     int    `json:"nights"`
}

type MovementsReport struct {
	Day       time.Time  `json:"day"`
	CheckIns  []Movement `json:"check_ins"`
	CheckOuts []Movement `json:"check_outs"`
}
