package domain

import "time"

// Apartment is a rental unit, addressed everywhere by its Unit code.
type Apartment struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	Unit           string    `json:"unit" gorm:"uniqueIndex;not null"`
	Name           string    `json:"name,omitempty"`
	Address        string    `json:"address,omitempty"`
	OwnerName      string    `json:"owner_name,omitempty"`
	OwnerPhone     string    `json:"owner_phone,omitempty"`
	OwnerEmail     string    `json:"owner_email,omitempty"`
	DailyRate      float64   `json:"daily_rate"`
	CleaningFee    float64   `json:"cleaning_fee"`
	CommissionRate float64   `json:"commission_rate"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
