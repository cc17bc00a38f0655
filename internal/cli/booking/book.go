package booking

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timeslot/internal/cli"
	"github.com/julianstephens/timeslot/internal/models"
)

type BookCmd struct {
	Date  string `arg:"" optional:"" help:"Date (YYYY-MM-DD, today or tomorrow). Defaults to today."`
	Start string `help:"Start time (HH:MM) or 'now'. Prompts when empty."`
	End   string `help:"End time or end label. Prompts when empty."`
	Note  string `short:"n" help:"Free-form note."`
}

func (c *BookCmd) Run(ctx *cli.Context) error {
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
	if len(day.Starts) == 0 {
		return fmt.Errorf("no start times available on %s", date)
	}

	startValue := c.Start
	if startValue == "" {
		options := make([]huh.Option[string], len(day.Starts))
		for i, o := range day.Starts {
			options[i] = huh.NewOption(o.Label, o.Value.String())
		}
		if startValue, err = cli.Choose("Start time on "+date, options); err != nil {
			return err
		}
	}
	start := models.ParseStartChoice(startValue)

	ends, err := r.Ends(date, start, reservations)
	if err != nil {
		return fmt.Errorf("failed to resolve end times: %w", err)
	}
	if len(ends) == 0 {
		return fmt.Errorf("no end times available from %s on %s", start, date)
	}

	endValue := c.End
	if endValue == "" {
		options := make([]huh.Option[string], len(ends))
		for i, o := range ends {
			options[i] = huh.NewOption(o.Label, o.Label)
		}
		if endValue, err = cli.Choose("End time", options); err != nil {
			return err
		}
	}

	booking, ok, err := r.Book(date, start, endValue, reservations)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s is not an available end time for start %s on %s", endValue, start, date)
	}

	saved, err := ctx.SaveBooking(booking, c.Note, reservations)
	if err != nil {
		return err
	}
	for _, p := range saved {
		ctx.Printf("Booked %s %s-%s (ID: %s)\n", p.Date, p.StartTime, p.EndTime, cli.ShortID(p.ID))
	}
	return nil
}
