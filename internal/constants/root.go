package constants

const (
	AppName            = "timeslot"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/timeslot/timeslot.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Midnight is both the first slot start of a day and the rendered end of its last slot.
	Midnight = "00:00"

	// EndOfDayLabel is how the recurrence remediation lists label a midnight end.
	EndOfDayLabel = "24:00"

	MinutesPerDay = 24 * 60

	// Environment variables
	EnvConfig       = "TIMESLOT_CONFIG"
	EnvDBConnection = "TIMESLOT_DB_CONNECTION"
)

// Sentinel labels and values produced for the option lists.
const (
	NowLabel           = "now"
	NowValue           = "Now"
	DefaultNextDayHint = "next-day"
	StartHeaderLabel   = "start"
	EndHeaderLabel     = "end"
	SkipLabel          = "do-not-book"
	SkipValue          = "no-booked"
)
