package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/timeslot/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingGranularityMin:
			if _, err := fmt.Sscanf(value, "%d", &settings.GranularityMin); err != nil {
				return Settings{}, fmt.Errorf("parsing granularity_min: %w", err)
			}
		case constants.SettingMinUsageHours:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing min_usage_hours: %w", err)
			}
			settings.MinUsageHours = f
		case constants.SettingMaxUsageHours:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing max_usage_hours: %w", err)
			}
			settings.MaxUsageHours = f
		case constants.SettingCrossDayEnabled:
			settings.CrossDayEnabled = value == "true"
		case constants.SettingNowEnabled:
			settings.NowEnabled = value == "true"
		case constants.SettingNextDayHint:
			settings.NextDayHint = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingGranularityMin:  fmt.Sprintf("%d", settings.GranularityMin),
		constants.SettingMinUsageHours:   strconv.FormatFloat(settings.MinUsageHours, 'f', -1, 64),
		constants.SettingMaxUsageHours:   strconv.FormatFloat(settings.MaxUsageHours, 'f', -1, 64),
		constants.SettingCrossDayEnabled: fmt.Sprintf("%v", settings.CrossDayEnabled),
		constants.SettingNowEnabled:      fmt.Sprintf("%v", settings.NowEnabled),
		constants.SettingNextDayHint:     settings.NextDayHint,
	}
}

// DefaultSettings returns the settings written by a fresh init.
func DefaultSettings() Settings {
	return Settings{
		GranularityMin:  constants.DefaultGranularityMin,
		MinUsageHours:   constants.DefaultMinUsageHours,
		MaxUsageHours:   constants.DefaultMaxUsageHours,
		CrossDayEnabled: constants.DefaultCrossDayEnabled,
		NowEnabled:      constants.DefaultNowEnabled,
		NextDayHint:     constants.DefaultNextDayHint,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.GranularityMin == 0 {
		settings.GranularityMin = constants.DefaultGranularityMin
	}
	if settings.MaxUsageHours <= 0 {
		settings.MaxUsageHours = constants.DefaultMaxUsageHours
	}
	if settings.MinUsageHours < 0 {
		settings.MinUsageHours = constants.DefaultMinUsageHours
	}
	if settings.NextDayHint == "" {
		settings.NextDayHint = constants.DefaultNextDayHint
	}
}
