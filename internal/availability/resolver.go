package availability

import (
	"time"

	"github.com/julianstephens/timeslot/internal/constants"
	"github.com/julianstephens/timeslot/internal/models"
	"github.com/julianstephens/timeslot/internal/slots"
	"github.com/julianstephens/timeslot/internal/utils"
)

// Options configures a Resolver.
type Options struct {
	Settings models.Settings
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

// Resolver runs slot generation, annotation and option resolution for
// stored settings. Every method reads the clock exactly once.
type Resolver struct {
	settings models.Settings
	now      func() time.Time
}

// New returns a Resolver, filling unset settings with their defaults.
func New(opts Options) *Resolver {
	settings := opts.Settings
	models.ApplyDefaultSettings(&settings)
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Resolver{settings: settings, now: now}
}

// Settings returns the effective settings.
func (r *Resolver) Settings() models.Settings {
	return r.settings
}

// Day is a date's annotated slot grid and start options at one instant.
type Day struct {
	Date   string
	At     time.Time
	Slots  []models.TimeSlot
	Starts []models.StartTimeOption
}

// Free returns the slots that are neither reserved nor past.
func (d *Day) Free() []models.TimeSlot {
	var free []models.TimeSlot
	for _, s := range d.Slots {
		if !s.IsOverlap && !s.IsPast {
			free = append(free, s)
		}
	}
	return free
}

// Day annotates date against reservations and resolves its start options.
func (r *Resolver) Day(date string, reservations []models.Reservation) (*Day, error) {
	at := utils.Naive(r.now())
	annotated, err := slots.GenerateAnnotated(date, r.settings.GranularityMin, reservations, at)
	if err != nil {
		return nil, err
	}
	starts, err := StartOptions(at, StartRequest{
		Date:         date,
		Slots:        annotated,
		Reservations: reservations,
		Granularity:  r.settings.GranularityMin,
		NowEnabled:   r.settings.NowEnabled,
	})
	if err != nil {
		return nil, err
	}
	return &Day{Date: date, At: at, Slots: annotated, Starts: starts}, nil
}

// Ends resolves the end options of start on date.
func (r *Resolver) Ends(date string, start models.StartChoice, reservations []models.Reservation) ([]models.EndTimeOption, error) {
	return r.ends(utils.Naive(r.now()), date, start, reservations)
}

func (r *Resolver) ends(at time.Time, date string, start models.StartChoice, reservations []models.Reservation) ([]models.EndTimeOption, error) {
	annotated, err := slots.GenerateAnnotated(date, r.settings.GranularityMin, reservations, at)
	if err != nil {
		return nil, err
	}
	return EndOptions(at, EndRequest{
		Date:            date,
		Start:           start,
		Slots:           annotated,
		Reservations:    reservations,
		Granularity:     r.settings.GranularityMin,
		MinUsageHours:   r.settings.MinUsageHours,
		MaxUsageHours:   r.settings.MaxUsageHours,
		CrossDayEnabled: r.settings.CrossDayEnabled,
		NextDayHint:     r.settings.NextDayHint,
	})
}

// Booking is a start/end pair resolved to concrete times.
type Booking struct {
	Date      string
	StartTime string
	EndTime   string
	NextDay   bool
}

// Reservations splits the booking at midnight when it spills into the next
// day, since a stored reservation may only roll over to "00:00".
func (b Booking) Reservations() []models.Reservation {
	if !b.NextDay || b.EndTime == constants.Midnight {
		return []models.Reservation{{Date: b.Date, StartTime: b.StartTime, EndTime: b.EndTime}}
	}
	day, _ := utils.ParseDate(b.Date)
	return []models.Reservation{
		{Date: b.Date, StartTime: b.StartTime, EndTime: constants.Midnight},
		{Date: utils.FormatDate(day.AddDate(0, 0, 1)), StartTime: constants.Midnight, EndTime: b.EndTime},
	}
}

// Book resolves start and a chosen end into booking times. end may be an
// option label, which tells a next-day end apart from the same clock time
// today, or a bare value, which matches the earliest such option.
// ok is false when end is not one of the options for start, or when a
// clock start has already passed.
func (r *Resolver) Book(date string, start models.StartChoice, end string, reservations []models.Reservation) (Booking, bool, error) {
	at := utils.Naive(r.now())
	ends, err := r.ends(at, date, start, reservations)
	if err != nil {
		return Booking{}, false, err
	}
	for _, opt := range ends {
		if opt.Label != end && opt.Value != end {
			continue
		}
		begin, err := EffectiveStart(at, date, start, r.settings.GranularityMin)
		if err != nil {
			return Booking{}, false, err
		}
		if !start.IsNow() && begin.Before(at.Truncate(time.Minute)) {
			return Booking{}, false, nil
		}
		return Booking{
			Date:      date,
			StartTime: utils.FormatTime(begin),
			EndTime:   opt.Value,
			NextDay:   opt.NextDay,
		}, true, nil
	}
	return Booking{}, false, nil
}
