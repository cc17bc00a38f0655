package reservations

import (
	"fmt"
	"time"

	"github.com/julianstephens/timeslot/internal/cli"
	"github.com/julianstephens/timeslot/internal/constants"
	"github.com/julianstephens/timeslot/internal/models"
	"github.com/julianstephens/timeslot/internal/storage"
	"github.com/julianstephens/timeslot/internal/validation"
)

type DeleteCmd struct {
	ID string `arg:"" help:"Reservation ID or unique ID prefix."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	id, err := storage.ResolveID(ctx.Store, c.ID)
	if err != nil {
		return err
	}
	r, err := ctx.Store.GetReservation(id)
	if err != nil {
		return fmt.Errorf("failed to find reservation %s: %w", c.ID, err)
	}
	if err := ctx.Store.DeleteReservation(id); err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	ctx.Printf("Deleted reservation %s %s-%s (ID: %s)\n", r.Date, r.StartTime, r.EndTime, cli.ShortID(id))
	return nil
}

type RestoreCmd struct {
	ID string `arg:"" help:"Reservation ID or unique ID prefix."`
}

// Run brings a deleted reservation back unless its time has been taken since.
func (c *RestoreCmd) Run(ctx *cli.Context) error {
	id, err := storage.ResolveID(ctx.Store, c.ID)
	if err != nil {
		return err
	}
	all, err := ctx.Store.GetAllReservations(true)
	if err != nil {
		return fmt.Errorf("failed to get reservations: %w", err)
	}
	var r models.Reservation
	for _, candidate := range all {
		if candidate.ID == id {
			r = candidate
			break
		}
	}
	if r.ID == "" {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, c.ID)
	}
	if r.DeletedAt == nil {
		return fmt.Errorf("%w: %s", storage.ErrNotDeleted, cli.ShortID(id))
	}

	existing, err := ctx.ReservationsAround(r.Date)
	if err != nil {
		return err
	}
	result := validation.New().ValidateNewReservation(r, existing)
	if err := result.Err(); err != nil {
		return fmt.Errorf("cannot restore reservation: %w", err)
	}
	if err := ctx.Store.RestoreReservation(id); err != nil {
		return fmt.Errorf("failed to restore reservation: %w", err)
	}
	ctx.Printf("Restored reservation %s %s-%s (ID: %s)\n", r.Date, r.StartTime, r.EndTime, cli.ShortID(id))
	return nil
}

func addDays(date string, n int) string {
	d, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return date
	}
	return d.AddDate(0, 0, n).Format(constants.DateFormat)
}
