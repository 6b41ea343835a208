package availability

import (
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/dateutil"
)

// MaxCalendarDays bounds a single Calendar call.
const MaxCalendarDays = 366

type DayStatus struct {
	Date      time.Time          `json:"date"`
	Status    domain.BlockStatus `json:"status"`
	BookingID int64              `json:"booking_id,omitempty"`
	BlockID   int64              `json:"block_id,omitempty"`
	GuestName string             `json:"guest_name,omitempty"`
}

// ResolveDay returns the authoritative status of unit on day. A block covering
// the day wins over any booking, whatever its status; otherwise a booking
// occupies the nights from check-in up to the day before check-out.
func ResolveDay(s Snapshot, unit string, day time.Time) DayStatus {
	day = dateutil.Day(day)

	for _, bl := range s.Blocks {
		if bl.Unit != unit {
			continue
		}
		if dateutil.Within(day, bl.StartDate, bl.EndDate) {
			return DayStatus{Date: day, Status: bl.Status, BlockID: bl.ID, GuestName: bl.GuestName}
		}
	}

	for _, b := range s.Bookings {
		if b.Unit != unit {
			continue
		}
		if !day.Before(dateutil.Day(b.CheckIn)) && day.Before(dateutil.Day(b.CheckOut)) {
			return DayStatus{Date: day, Status: domain.BlockOccupied, BookingID: b.ID, GuestName: b.GuestName}
		}
	}

	return DayStatus{Date: day, Status: domain.BlockAvailable}
}

// Calendar resolves every day of [from, to]. The range is truncated to
// MaxCalendarDays; an inverted range yields no days.
func Calendar(s Snapshot, unit string, from, to time.Time) []DayStatus {
	from, to = dateutil.Day(from), dateutil.Day(to)
	days := make([]DayStatus, 0)
	for d := from; !d.After(to) && len(days) < MaxCalendarDays; d = d.AddDate(0, 0, 1) {
		days = append(days, ResolveDay(s, unit, d))
	}
	return days
}
