package schedule

type ScheduleRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Channel    string `json:"channel" validate:"required,oneof=whatsapp email"`
	Recipient  string `json:"recipient" validate:"required,max=200"`
	ReportType string `json:"report_type" validate:"required,oneof=movements occupancy financial"`
	Frequency  string `json:"frequency" validate:"required,oneof=daily weekly monthly"`
	SendTime   string `json:"send_time" validate:"required,datetime=15:04"`
	Weekday    int    `json:"weekday" validate:"gte=0,lte=6"`
	DayOfMonth int    `json:"day_of_month" validate:"gte=0,lte=31"`
	Timezone   string `json:"timezone" validate:"omitempty,max=64"`
	Unit       string `json:"unit" validate:"omitempty,max=32"`
	Active     *bool  `json:"active"`
}

type RunResult struct {
	Skipped bool `json:"skipped"`
	Due     int  `json:"due"`
	Sent    int  `json:"sent"`
	Failed  int  `json:"failed"`
}
