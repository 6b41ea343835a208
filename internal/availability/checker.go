// Package availability decides whether a proposed stay for a unit collides
// with existing bookings or occupied availability blocks, and resolves the
// per-day status shown on the calendar.
//
// Everything here is a pure function over a Snapshot supplied by the caller.
// The check is advisory: a snapshot can be stale by the time the caller writes.
package availability

import (
	"fmt"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/dateutil"
)

type ConflictKind string

const (
	KindBooking ConflictKind = "booking"
	KindBlock   ConflictKind = "block"
)

// Snapshot is the data a check runs against.
type Snapshot struct {
	Bookings []domain.Booking
	Blocks   []domain.AvailabilityBlock
}

type Conflict struct {
	Kind      ConflictKind       `json:"kind"`
	ID        int64              `json:"id"`
	Unit      string             `json:"unit"`
	Start     time.Time          `json:"start"`
	End       time.Time          `json:"end"`
	GuestName string             `json:"guest_name,omitempty"`
	Status    domain.BlockStatus `json:"status,omitempty"`
}

type Result struct {
	IsValid   bool       `json:"is_valid"`
	Conflicts []Conflict `json:"conflicts"`
	Message   string     `json:"message,omitempty"`
}

// Validate checks [checkIn, checkOut] for unit against the snapshot.
// excludeBookingID skips the booking being edited; pass 0 when creating.
// Only blocks with status occupied count as conflicts. The ordering of
// checkIn and checkOut is not validated here.
func Validate(s Snapshot, unit string, checkIn, checkOut time.Time, excludeBookingID int64) Result {
	conflicts := make([]Conflict, 0)

	for _, b := range s.Bookings {
		if b.Unit != unit {
			continue
		}
		if excludeBookingID != 0 && b.ID == excludeBookingID {
			continue
		}
		if Overlaps(b.CheckIn, b.CheckOut, checkIn, checkOut) {
			conflicts = append(conflicts, Conflict{
				Kind:      KindBooking,
				ID:        b.ID,
				Unit:      b.Unit,
				Start:     b.CheckIn,
				End:       b.CheckOut,
				GuestName: b.GuestName,
			})
		}
	}

	for _, bl := range s.Blocks {
		if bl.Unit != unit || bl.Status != domain.BlockOccupied {
			continue
		}
		if Overlaps(bl.StartDate, bl.EndDate, checkIn, checkOut) {
			conflicts = append(conflicts, Conflict{
				Kind:      KindBlock,
				ID:        bl.ID,
				Unit:      bl.Unit,
				Start:     bl.StartDate,
				End:       bl.EndDate,
				GuestName: bl.GuestName,
				Status:    bl.Status,
			})
		}
	}

	res := Result{IsValid: len(conflicts) == 0, Conflicts: conflicts}
	if !res.IsValid {
		res.Message = fmt.Sprintf("Unidade %s possui %d reserva(s) conflitante(s) no período selecionado", unit, len(conflicts))
	}
	return res
}

// Overlaps compares two closed day ranges. Ranges that only touch on a
// boundary day (check-out on the same day as the next check-in) do not overlap.
func Overlaps(existingStart, existingEnd, newStart, newEnd time.Time) bool {
	es, ee := dateutil.Day(existingStart), dateutil.Day(existingEnd)
	ns, ne := dateutil.Day(newStart), dateutil.Day(newEnd)

	if dateutil.SameDay(ne, es) || dateutil.SameDay(ns, ee) {
		return false
	}
	return dateutil.Within(ns, es, ee) ||
		dateutil.Within(ne, es, ee) ||
		dateutil.Within(es, ns, ne) ||
		dateutil.Within(ee, ns, ne)
}
