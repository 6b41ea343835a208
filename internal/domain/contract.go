package domain

import "time"

type ContractStatus string

const (
	ContractDraft  ContractStatus = "draft"
	ContractActive ContractStatus = "active"
	ContractClosed ContractStatus = "closed"
)

type Contract struct {
	ID             int64          `json:"id" gorm:"primaryKey"`
	BookingID      *int64         `json:"booking_id,omitempty" gorm:"index"`
	Unit           string         `json:"unit" gorm:"index"`
	TenantName     string         `json:"tenant_name"`
	TenantDocument string         `json:"tenant_document,omitempty"`
	TenantPhone    string         `json:"tenant_phone,omitempty"`
	StartDate      time.Time      `json:"start_date" gorm:"type:date"`
	EndDate        time.Time      `json:"end_date" gorm:"type:date"`
	MonthlyRent    float64        `json:"monthly_rent"`
	Deposit        float64        `json:"deposit"`
	Template       string         `json:"template,omitempty" gorm:"type:text"`
	Body           string         `json:"body" gorm:"type:text"`
	Status         ContractStatus `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
