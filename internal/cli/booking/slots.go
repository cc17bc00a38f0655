package booking

import (
	"fmt"

	"github.com/julianstephens/timeslot/internal/cli"
)

type SlotsCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD, today or tomorrow). Defaults to today."`
	Free bool   `help:"Show only free slots."`
}

func (c *SlotsCmd) Run(ctx *cli.Context) error {
	date, err := ctx.Today(c.Date)
	if err != nil {
		return err
	}
	r, err := ctx.Resolver()
	if err != nil {
		return err
	}
	reservations, err := ctx.ReservationsAround(date)
	if err != nil {
		return err
	}
	day, err := r.Day(date, reservations)
	if err != nil {
		return fmt.Errorf("failed to build slots: %w", err)
	}

	slots := day.Slots
	if c.Free {
		slots = day.Free()
	}
	cli.RenderSlots(ctx.Stdout(), date, slots)
	return nil
}
