package models

// Settings represents application-wide settings
type Settings struct {
	GranularityMin  int     `json:"granularity_min" yaml:"granularity_min"`     // slot length in minutes
	MinUsageHours   float64 `json:"min_usage_hours" yaml:"min_usage_hours"`     // shortest bookable duration
	MaxUsageHours   float64 `json:"max_usage_hours" yaml:"max_usage_hours"`     // longest bookable duration
	CrossDayEnabled bool    `json:"cross_day_enabled" yaml:"cross_day_enabled"` // whether a booking may run past midnight
	NowEnabled      bool    `json:"now_enabled" yaml:"now_enabled"`             // whether a "now" start option is offered today
	NextDayHint     string  `json:"next_day_hint" yaml:"next_day_hint"`         // tag appended to end labels on the following day
}
