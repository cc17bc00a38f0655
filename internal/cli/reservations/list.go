package reservations

import (
	"fmt"

	"github.com/julianstephens/timeslot/internal/cli"
)

type ListCmd struct {
	From    string `help:"First date to list (default today)."`
	To      string `help:"Last date to list (default 30 days after --from)."`
	All     bool   `help:"List every reservation, deleted ones included."`
	ShowIDs bool   `help:"Show reservation IDs." name:"show-ids"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if c.All {
		all, err := ctx.Store.GetAllReservations(true)
		if err != nil {
			return fmt.Errorf("failed to get reservations: %w", err)
		}
		cli.RenderReservations(ctx.Stdout(), all, c.ShowIDs)
		return nil
	}

	from, err := ctx.Today(c.From)
	if err != nil {
		return err
	}
	to := c.To
	if to == "" {
		to = addDays(from, 30)
	} else if to, err = ctx.Today(c.To); err != nil {
		return err
	}
	if to < from {
		return fmt.Errorf("--to %s is before --from %s", to, from)
	}

	list, err := ctx.Store.GetReservations(from, to)
	if err != nil {
		return fmt.Errorf("failed to get reservations: %w", err)
	}
	cli.RenderReservations(ctx.Stdout(), list, c.ShowIDs)
	return nil
}
