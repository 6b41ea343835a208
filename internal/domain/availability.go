package domain

import "time"

type BlockStatus string

const (
	BlockAvailable   BlockStatus = "available"
	BlockOccupied    BlockStatus = "occupied"
	BlockBlocked     BlockStatus = "blocked"
	BlockMaintenance BlockStatus = "maintenance"
)

func (s BlockStatus) Valid() bool {
	switch s {
	case BlockAvailable, BlockOccupied, BlockBlocked, BlockMaintenance:
		return true
	}
	return false
}

// AvailabilityBlock is a manually entered period for a unit, independent of
// any Booking. Both dates are inclusive.
type AvailabilityBlock struct {
	ID        int64       `json:"id"`
	Unit      string      `json:"unit"`
	StartDate time.Time   `json:"start_date"`
	EndDate   time.Time   `json:"end_date"`
	Status    BlockStatus `json:"status"`
	GuestName string      `json:"guest_name,omitempty"`
	DailyRate float64     `json:"daily_rate,omitempty"`
	Notes     string      `json:"notes,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
