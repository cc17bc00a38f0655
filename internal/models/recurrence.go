package models

import "time"

// RecurringSelection is the interval chosen for one weekday of a weekly booking.
type RecurringSelection struct {
	Weekday   time.Weekday `json:"weekday"`
	StartTime string       `json:"selected_start_time"` // HH:MM format
	EndTime   string       `json:"selected_end_time"`   // HH:MM format
	IsValid   bool         `json:"is_valid"`
	Text      string       `json:"text"`
}

// ConflictRecord collects every reservation overlapping a date's recurring selection.
type ConflictRecord struct {
	ConflictDate           string                   `json:"conflict_date"`
	Weekday                time.Weekday             `json:"weekday"`
	Selection              RecurringSelection       `json:"selection"`
	UsedSlots              []Reservation            `json:"used_slot"`
	StartOptions           []RecurOption            `json:"start_options"`
	EndOptions             []RecurOption            `json:"end_options"`
	EndOptionsByStart      map[string][]RecurOption `json:"end_options_raw"`
	FinalSelectedStartTime string                   `json:"final_selected_start_time"`
	FinalSelectedEndTime   string                   `json:"final_selected_end_time"`
}
