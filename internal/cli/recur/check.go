package recur

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/timeslot/internal/cli"
	apperrors "github.com/julianstephens/timeslot/internal/errors"
	"github.com/julianstephens/timeslot/internal/models"
	"github.com/julianstephens/timeslot/internal/recurrence"
	"github.com/julianstephens/timeslot/internal/slots"
	"github.com/julianstephens/timeslot/internal/validation"
)

// Pattern is the weekly pattern shared by check and book.
type Pattern struct {
	From string   `required:"" help:"First date (YYYY-MM-DD, today or tomorrow)."`
	To   string   `required:"" help:"Last date (YYYY-MM-DD)."`
	On   []string `required:"" help:"Weekday selection as WEEKDAY=HH:MM-HH:MM. Repeatable."`
}

// plan is a checked pattern with remediation options filled in.
type plan struct {
	now          time.Time
	from, to     string
	selections   []models.RecurringSelection
	reservations []models.Reservation
	conflicts    []models.ConflictRecord
}

func (p Pattern) check(ctx *cli.Context) (*plan, error) {
	var selections []models.RecurringSelection
	for _, spec := range p.On {
		sel, err := cli.ParseSelection(spec)
		if err != nil {
			return nil, err
		}
		selections = append(selections, sel)
	}
	v := validation.New()
	result := v.ValidateSelections(selections)
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	selections = v.MarkSelections(selections)

	from, err := ctx.Today(p.From)
	if err != nil {
		return nil, err
	}
	to, err := ctx.Today(p.To)
	if err != nil {
		return nil, err
	}
	if to < from {
		return nil, fmt.Errorf("--to %s is before --from %s", to, from)
	}

	reservations, err := ctx.Store.GetReservations(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservations: %w", err)
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)

	now := ctx.Clock()
	checked, err := recurrence.CheckConflicts(now, recurrence.CheckRequest{
		StartDate:    from,
		EndDate:      to,
		Selections:   selections,
		Reservations: reservations,
	})
	if err != nil {
		return nil, err
	}
	if checked.AllInPast {
		return nil, apperrors.WithHint(
			fmt.Errorf("a conflicting date in the range starts in the past"),
			"start the pattern from a later date")
	}

	resolved, err := recurrence.Resolve(now, widen(checked.Conflicts, reservations), recurrence.RemediationOptions{
		Granularity:   settings.GranularityMin,
		MinUsageHours: settings.MinUsageHours,
		MaxUsageHours: settings.MaxUsageHours,
	})
	if err != nil {
		return nil, err
	}
	return &plan{
		now:          now,
		from:         from,
		to:           to,
		selections:   selections,
		reservations: reservations,
		conflicts:    resolved,
	}, nil
}

// widen treats every reservation of a conflict date as taken when building
// alternatives, not just the ones hit by the selection.
func widen(conflicts []models.ConflictRecord, reservations []models.Reservation) []models.ConflictRecord {
	out := make([]models.ConflictRecord, len(conflicts))
	for i, c := range conflicts {
		var all []models.Reservation
		for _, r := range reservations {
			if r.Date == c.ConflictDate {
				all = append(all, r)
			}
		}
		c.UsedSlots = all
		out[i] = c
	}
	return out
}

func (p *plan) expand() ([]models.Reservation, error) {
	return recurrence.Expand(p.now, recurrence.ExpandRequest{
		StartDate:  p.from,
		EndDate:    p.to,
		Selections: p.selections,
		Conflicts:  p.conflicts,
	})
}

type CheckCmd struct {
	Pattern `embed:""`
}

func (c *CheckCmd) Run(ctx *cli.Context) error {
	p, err := c.check(ctx)
	if err != nil {
		return err
	}
	w := ctx.Stdout()
	if len(p.conflicts) == 0 {
		planned, err := p.expand()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "No conflicts between %s and %s. %d reservation(s) can be booked.\n", p.from, p.to, len(planned))
		return nil
	}

	fmt.Fprintf(w, "%d conflicting date(s) between %s and %s:\n", len(p.conflicts), p.from, p.to)
	for _, record := range p.conflicts {
		writeConflict(w, record)
	}
	return nil
}

func writeConflict(w io.Writer, record models.ConflictRecord) {
	sel := record.Selection
	fmt.Fprintf(w, "\n%s (%s) wants %s-%s\n", record.ConflictDate, record.Weekday, sel.StartTime, sel.EndTime)
	for _, r := range record.UsedSlots {
		if ok, _ := overlapsSelection(record, r); ok {
			fmt.Fprintf(w, "  taken: %s-%s %s\n", r.StartTime, r.EndTime, cli.ShortID(r.ID))
		}
	}

	starts := timeOptions(record.StartOptions)
	if len(starts) == 0 {
		fmt.Fprintln(w, "  no free alternative on this date")
		return
	}
	sort.SliceStable(starts, func(i, j int) bool { return starts[i].Value < starts[j].Value })
	fmt.Fprintln(w, "  alternatives:")
	for _, s := range starts {
		var ends []string
		for _, e := range timeOptions(record.EndOptionsByStart[s.Value]) {
			ends = append(ends, e.Label)
		}
		fmt.Fprintf(w, "    %s -> %s\n", s.Label, strings.Join(ends, ", "))
	}
}

func overlapsSelection(record models.ConflictRecord, r models.Reservation) (bool, error) {
	sel := slots.Interval{Date: record.ConflictDate, Start: record.Selection.StartTime, End: record.Selection.EndTime}
	return slots.Overlaps(sel, slots.ReservationInterval(r))
}

// timeOptions drops headers and the skip entry.
func timeOptions(options []models.RecurOption) []models.RecurOption {
	var out []models.RecurOption
	for _, o := range options {
		if o.Kind == models.RecurOptionTime {
			out = append(out, o)
		}
	}
	return out
}
