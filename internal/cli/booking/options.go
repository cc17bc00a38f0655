package booking

import (
	"fmt"

	"github.com/julianstephens/timeslot/internal/cli"
	"github.com/julianstephens/timeslot/internal/models"
)

type StartsCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD, today or tomorrow). Defaults to today."`
}

func (c *StartsCmd) Run(ctx *cli.Context) error {
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
		return fmt.Errorf("failed to resolve start times: %w", err)
	}
	cli.RenderStarts(ctx.Stdout(), date, day.Starts)
	return nil
}

type EndsCmd struct {
	Date  string `arg:"" help:"Date (YYYY-MM-DD, today or tomorrow)."`
	Start string `arg:"" help:"Start time (HH:MM) or 'now'."`
}

func (c *EndsCmd) Run(ctx *cli.Context) error {
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
	start := models.ParseStartChoice(c.Start)
	ends, err := r.Ends(date, start, reservations)
	if err != nil {
		return fmt.Errorf("failed to resolve end times: %w", err)
	}
	cli.RenderEnds(ctx.Stdout(), date, start.String(), ends)
	return nil
}
