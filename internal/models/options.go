package models

import (
	"strings"

	"github.com/julianstephens/timeslot/internal/constants"
)

// StartChoice is either a wall-clock start (HH:MM) or "now".
// The zero value is an empty choice.
type StartChoice struct {
	now   bool
	clock string
}

// StartAtNow returns the choice representing the current instant.
func StartAtNow() StartChoice {
	return StartChoice{now: true}
}

// StartAt returns a wall-clock choice.
func StartAt(clock string) StartChoice {
	return StartChoice{clock: clock}
}

// ParseStartChoice maps "now" (any case) to StartAtNow and anything else to StartAt.
// The clock is not validated here.
func ParseStartChoice(s string) StartChoice {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, constants.NowValue) {
		return StartAtNow()
	}
	return StartAt(s)
}

func (c StartChoice) IsNow() bool {
	return c.now
}

func (c StartChoice) IsZero() bool {
	return !c.now && c.clock == ""
}

// Clock returns the wall-clock value; ok is false for "now" and for the zero choice.
func (c StartChoice) Clock() (clock string, ok bool) {
	if c.now || c.clock == "" {
		return "", false
	}
	return c.clock, true
}

func (c StartChoice) String() string {
	if c.now {
		return constants.NowValue
	}
	return c.clock
}

type StartTimeOption struct {
	Label      string      `json:"label"`
	Value      StartChoice `json:"-"`
	Slot       TimeSlot    `json:"original"`
	IsNow      bool        `json:"is_now"`
	FullString string      `json:"full_string"` // DATE_START-END
}

type EndTimeOption struct {
	Label   string   `json:"label"`
	Value   string   `json:"value"` // HH:MM format
	Slot    TimeSlot `json:"original"`
	NextDay bool     `json:"next_day"`
}

// RecurOptionKind tags the entries of a remediation option list.
type RecurOptionKind int

const (
	RecurOptionTime RecurOptionKind = iota
	// RecurOptionHeader is a disabled list heading.
	RecurOptionHeader
	// RecurOptionSkip is the selectable "do not book this date" entry.
	RecurOptionSkip
)

type RecurOption struct {
	Date  string          `json:"date"`
	Label string          `json:"label"`
	Value string          `json:"value"`
	Kind  RecurOptionKind `json:"kind"`
}

// Disabled reports whether the option cannot be chosen.
func (o RecurOption) Disabled() bool {
	return o.Kind == RecurOptionHeader
}
