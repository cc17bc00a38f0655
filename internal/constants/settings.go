package constants

const (
	// Setting keys
	SettingGranularityMin  = "granularity_min"
	SettingMinUsageHours   = "min_usage_hours"
	SettingMaxUsageHours   = "max_usage_hours"
	SettingCrossDayEnabled = "cross_day_enabled"
	SettingNowEnabled      = "now_enabled"
	SettingNextDayHint     = "next_day_hint"

	// Default Settings Values
	DefaultGranularityMin  = 30
	DefaultMinUsageHours   = 0.0
	DefaultMaxUsageHours   = 24.0
	DefaultCrossDayEnabled = true
	DefaultNowEnabled      = true
)
