package domain

import "time"

type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

type ReportType string

const (
	ReportMovements ReportType = "movements"
	ReportOccupancy ReportType = "occupancy"
	ReportFinancial ReportType = "financial"
)

// Schedule is a recurring report delivery ("agendamento").
type Schedule struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	Name       string     `json:"name"`
	Channel    Channel    `json:"channel"`
	Recipient  string     `json:"recipient"`
	ReportType ReportType `json:"report_type"`
	Frequency  Frequency  `json:"frequency"`
	// SendTime is "HH:MM" in Timezone.
	SendTime   string     `json:"send_time"`
	Weekday    int        `json:"weekday"`
	DayOfMonth int        `json:"day_of_month"`
	Timezone   string     `json:"timezone"`
	Unit       string     `json:"unit,omitempty"`
	Active     bool       `json:"active" gorm:"index"`
	NextSend   time.Time  `json:"next_send" gorm:"index"`
	LastSentAt *time.Time `json:"last_sent_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type ScheduleLogStatus string

const (
	ScheduleLogSent   ScheduleLogStatus = "sent"
	ScheduleLogFailed ScheduleLogStatus = "failed"
)

type ScheduleLog struct {
	ID         int64             `json:"id" gorm:"primaryKey"`
	ScheduleID int64             `json:"schedule_id" gorm:"index"`
	SentAt     time.Time         `json:"sent_at"`
	Status     ScheduleLogStatus `json:"status"`
	Error      string            `json:"error,omitempty" gorm:"type:text"`
	Message    string            `json:"message,omitempty" gorm:"type:text"`
}
