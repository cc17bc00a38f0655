package settings

import (
	"fmt"

	"github.com/julianstephens/timeslot/internal/cli"
	"github.com/julianstephens/timeslot/internal/models"
	"github.com/julianstephens/timeslot/internal/validation"
)

type SettingsCmd struct {
	List  bool `help:"List current settings."`
	Reset bool `help:"Restore the default settings."`

	Granularity *int     `help:"Slot length in minutes."`
	MinHours    *float64 `help:"Shortest bookable duration in hours."`
	MaxHours    *float64 `help:"Longest bookable duration in hours."`
	CrossDay    *bool    `help:"Allow bookings to run past midnight."`
	Now         *bool    `help:"Offer a 'now' start option for today."`
	NextDayHint *string  `help:"Tag appended to end times on the following day."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Granularity:     %d min\n", settings.GranularityMin)
		ctx.Printf("  Min Usage:       %g h\n", settings.MinUsageHours)
		ctx.Printf("  Max Usage:       %g h\n", settings.MaxUsageHours)
		ctx.Printf("  Cross Day:       %v\n", settings.CrossDayEnabled)
		ctx.Printf("  Now Option:      %v\n", settings.NowEnabled)
		ctx.Printf("  Next Day Hint:   %s\n", settings.NextDayHint)
		return nil
	}

	updated := false
	if c.Reset {
		settings = models.DefaultSettings()
		updated = true
	}
	if c.Granularity != nil {
		settings.GranularityMin = *c.Granularity
		updated = true
	}
	if c.MinHours != nil {
		settings.MinUsageHours = *c.MinHours
		updated = true
	}
	if c.MaxHours != nil {
		settings.MaxUsageHours = *c.MaxHours
		updated = true
	}
	if c.CrossDay != nil {
		settings.CrossDayEnabled = *c.CrossDay
		updated = true
	}
	if c.Now != nil {
		settings.NowEnabled = *c.Now
		updated = true
	}
	if c.NextDayHint != nil {
		settings.NextDayHint = *c.NextDayHint
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	result := validation.New().ValidateSettings(settings)
	if err := result.Err(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	for _, w := range result.Conflicts {
		ctx.Printf("⚠ %s\n", w.Description)
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}
