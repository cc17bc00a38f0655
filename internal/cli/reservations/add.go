package reservations

import (
	"fmt"
	"strings"

	"github.com/julianstephens/timeslot/internal/cli"
	"github.com/julianstephens/timeslot/internal/storage"
	"github.com/julianstephens/timeslot/internal/validation"
)

type AddCmd struct {
	Date  string `arg:"" help:"Date (YYYY-MM-DD, today or tomorrow)."`
	Start string `arg:"" help:"Start time (HH:MM)."`
	End   string `arg:"" help:"End time (HH:MM, 00:00 for midnight)."`
	Note  string `short:"n" help:"Free-form note."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	date, err := ctx.Today(c.Date)
	if err != nil {
		return err
	}
	existing, err := ctx.ReservationsAround(date)
	if err != nil {
		return err
	}

	r := storage.NewReservation(date, strings.TrimSpace(c.Start), strings.TrimSpace(c.End), c.Note, ctx.Clock())
	result := validation.New().ValidateNewReservation(r, existing)
	if err := result.Err(); err != nil {
		return fmt.Errorf("cannot add reservation: %w", err)
	}
	if err := ctx.Store.AddReservation(r); err != nil {
		return fmt.Errorf("failed to add reservation: %w", err)
	}
	ctx.Printf("Added reservation %s %s-%s (ID: %s)\n", r.Date, r.StartTime, r.EndTime, cli.ShortID(r.ID))
	return nil
}
