package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/timeslot/internal/availability"
	"github.com/julianstephens/timeslot/internal/logger"
	"github.com/julianstephens/timeslot/internal/models"
	"github.com/julianstephens/timeslot/internal/storage"
	"github.com/julianstephens/timeslot/internal/utils"
	"github.com/julianstephens/timeslot/internal/validation"
)

type Context struct {
	Store storage.Provider
	// Now defaults to time.Now.
	Now func() time.Time
	// Out defaults to os.Stdout.
	Out io.Writer
}

func (c *Context) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Resolver builds an availability resolver from the stored settings.
func (c *Context) Resolver() (*availability.Resolver, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return availability.New(availability.Options{Settings: settings, Now: c.Clock}), nil
}

// Today resolves a date argument ("", "today", "tomorrow" or YYYY-MM-DD)
// against the context clock.
func (c *Context) Today(arg string) (string, error) {
	return utils.ResolveDate(arg, utils.Naive(c.Clock()))
}

// ReservationsAround returns the active reservations of date and the day
// after, which is everything the option resolver can collide with.
func (c *Context) ReservationsAround(date string) ([]models.Reservation, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, err
	}
	next := utils.FormatDate(day.AddDate(0, 0, 1))
	reservations, err := c.Store.GetReservations(date, next)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservations: %w", err)
	}
	return reservations, nil
}

// SaveBooking validates the reservations of b against existing and stores
// them. Nothing is stored when any piece conflicts.
func (c *Context) SaveBooking(b availability.Booking, note string, existing []models.Reservation) ([]models.Reservation, error) {
	pieces := b.Reservations()
	v := validation.New()
	for i := range pieces {
		pieces[i] = storage.NewReservation(pieces[i].Date, pieces[i].StartTime, pieces[i].EndTime, note, c.Clock())
		result := v.ValidateNewReservation(pieces[i], existing)
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("cannot book: %w", err)
		}
		existing = append(existing, pieces[i])
	}
	for _, p := range pieces {
		if err := c.Store.AddReservation(p); err != nil {
			return nil, fmt.Errorf("failed to save reservation: %w", err)
		}
		logger.Info("Booked reservation", "id", p.ID, "date", p.Date, "start", p.StartTime, "end", p.EndTime)
	}
	return pieces, nil
}

// ParseSelection parses "mon=10:00-11:00" into a recurring selection.
func ParseSelection(spec string) (models.RecurringSelection, error) {
	day, span, ok := strings.Cut(spec, "=")
	if !ok {
		return models.RecurringSelection{}, fmt.Errorf("invalid selection %q, use WEEKDAY=HH:MM-HH:MM", spec)
	}
	wd, err := utils.ParseWeekday(day)
	if err != nil {
		return models.RecurringSelection{}, err
	}
	start, end, ok := strings.Cut(span, "-")
	if !ok {
		return models.RecurringSelection{}, fmt.Errorf("invalid time range %q, use HH:MM-HH:MM", span)
	}
	return models.RecurringSelection{
		Weekday:   wd,
		StartTime: strings.TrimSpace(start),
		EndTime:   strings.TrimSpace(end),
	}, nil
}

// ShortID trims a reservation ID for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
