package models

// TimeSlot is one fixed-length piece of a calendar day.
type TimeSlot struct {
	Start     string `json:"slot_start"` // HH:MM format
	End       string `json:"slot_end"`   // HH:MM format, "00:00" for the end of the day
	Date      string `json:"date"`       // YYYY-MM-DD format
	IsOverlap bool   `json:"is_overlap"`
	IsPast    bool   `json:"is_past"`
	// Truncated marks a final slot clipped at midnight because the
	// granularity does not divide the day evenly.
	Truncated bool `json:"truncated,omitempty"`
}

// Reservation is an already committed booking.
type Reservation struct {
	ID        string  `json:"id" yaml:"id,omitempty"`
	Date      string  `json:"date" yaml:"date"`             // YYYY-MM-DD format
	StartTime string  `json:"start_time" yaml:"start_time"` // HH:MM format
	EndTime   string  `json:"end_time" yaml:"end_time"`     // HH:MM format, "00:00" rolls over to the next day
	Note      string  `json:"note,omitempty" yaml:"note,omitempty"`
	CreatedAt string  `json:"created_at,omitempty" yaml:"created_at,omitempty"` // RFC3339 timestamp
	DeletedAt *string `json:"deleted_at,omitempty" yaml:"deleted_at,omitempty"` // RFC3339 timestamp
}
