package recur

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timeslot/internal/cli"
	"github.com/julianstephens/timeslot/internal/constants"
	"github.com/julianstephens/timeslot/internal/logger"
	"github.com/julianstephens/timeslot/internal/models"
	"github.com/julianstephens/timeslot/internal/recurrence"
	"github.com/julianstephens/timeslot/internal/storage"
	"github.com/julianstephens/timeslot/internal/validation"
)

type BookCmd struct {
	Pattern       `embed:""`
	SkipConflicts bool   `help:"Do not book conflicting dates instead of prompting for an alternative."`
	Note          string `short:"n" help:"Note stored on every booked reservation."`
}

func (c *BookCmd) Run(ctx *cli.Context) error {
	p, err := c.check(ctx)
	if err != nil {
		return err
	}

	for i := range p.conflicts {
		record := &p.conflicts[i]
		if c.SkipConflicts {
			if err := recurrence.ApplyChoice(record, constants.SkipValue, ""); err != nil {
				return err
			}
			continue
		}
		if err := resolveInteractively(ctx, record); err != nil {
			return err
		}
	}

	planned, err := p.expand()
	if err != nil {
		return err
	}
	if len(planned) == 0 {
		ctx.Println("Nothing to book.")
		return nil
	}

	v := validation.New()
	existing := append([]models.Reservation(nil), p.reservations...)
	for i, r := range planned {
		planned[i] = storage.NewReservation(r.Date, r.StartTime, r.EndTime, c.Note, ctx.Clock())
		result := v.ValidateNewReservation(planned[i], existing)
		if err := result.Err(); err != nil {
			return fmt.Errorf("cannot book %s: %w", r.Date, err)
		}
		existing = append(existing, planned[i])
	}
	for _, r := range planned {
		if err := ctx.Store.AddReservation(r); err != nil {
			return fmt.Errorf("failed to save reservation for %s: %w", r.Date, err)
		}
	}
	logger.Info("Booked recurring reservations", "from", p.from, "to", p.to, "count", len(planned))
	ctx.Printf("Booked %d reservation(s) between %s and %s.\n", len(planned), p.from, p.to)
	return nil
}

func resolveInteractively(ctx *cli.Context, record *models.ConflictRecord) error {
	writeConflict(ctx.Stdout(), *record)

	var starts []huh.Option[string]
	for _, o := range record.StartOptions {
		if o.Disabled() {
			continue
		}
		starts = append(starts, huh.NewOption(o.Label, o.Value))
	}
	start, err := cli.Choose(fmt.Sprintf("Start on %s", record.ConflictDate), starts)
	if err != nil {
		return err
	}
	if start == constants.SkipValue {
		return recurrence.ApplyChoice(record, start, "")
	}

	var ends []huh.Option[string]
	for _, o := range record.EndOptionsByStart[start] {
		if o.Disabled() {
			continue
		}
		ends = append(ends, huh.NewOption(o.Label, o.Value))
	}
	end, err := cli.Choose(fmt.Sprintf("End on %s from %s", record.ConflictDate, start), ends)
	if err != nil {
		return err
	}
	return recurrence.ApplyChoice(record, start, end)
}
