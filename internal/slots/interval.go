// Package slots discretizes calendar days into fixed-size slots and decides
// whether dated wall-clock ranges overlap.
package slots

import (
	"fmt"
	"time"

	"github.com/julianstephens/timeslot/internal/models"
	"github.com/julianstephens/timeslot/internal/utils"
)

// Interval is a wall-clock range on a calendar date. An End of "00:00"
// that does not come after Start means midnight of the following day.
type Interval struct {
	Date  string // YYYY-MM-DD
	Start string // HH:MM
	End   string // HH:MM
}

// Span is an Interval resolved to instants, end already rolled over.
type Span struct {
	Start time.Time
	End   time.Time
}

// ParseSpan resolves an Interval, applying the midnight rollover to its end.
func ParseSpan(iv Interval) (Span, error) {
	start, err := utils.CombineDateAndTime(iv.Date, iv.Start)
	if err != nil {
		return Span{}, fmt.Errorf("interval start %s %s: %w", iv.Date, iv.Start, err)
	}
	end, err := utils.CombineDateAndTime(iv.Date, iv.End)
	if err != nil {
		return Span{}, fmt.Errorf("interval end %s %s: %w", iv.Date, iv.End, err)
	}
	return Span{Start: start, End: utils.RollOver(start, end, iv.End)}, nil
}

// Overlaps reports whether two spans share any instant. Spans are half-open,
// so touching endpoints do not overlap.
func (s Span) Overlaps(other Span) bool {
	return s.Start.Before(other.End) && s.End.After(other.Start)
}

// Duration returns the length of the span.
func (s Span) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Overlaps reports whether candidate and slot overlap. It is the single
// overlap rule used across slot annotation, option resolution and
// recurrence conflict detection.
func Overlaps(candidate, slot Interval) (bool, error) {
	a, err := ParseSpan(candidate)
	if err != nil {
		return false, err
	}
	b, err := ParseSpan(slot)
	if err != nil {
		return false, err
	}
	return a.Overlaps(b), nil
}

// ReservationInterval returns the interval occupied by a reservation.
func ReservationInterval(r models.Reservation) Interval {
	return Interval{Date: r.Date, Start: r.StartTime, End: r.EndTime}
}

// SlotInterval returns the interval covered by a slot.
func SlotInterval(s models.TimeSlot) Interval {
	return Interval{Date: s.Date, Start: s.Start, End: s.End}
}

// ReservationSpans resolves every reservation, failing on the first malformed one.
func ReservationSpans(reservations []models.Reservation) ([]Span, error) {
	spans := make([]Span, 0, len(reservations))
	for _, r := range reservations {
		sp, err := ParseSpan(ReservationInterval(r))
		if err != nil {
			return nil, fmt.Errorf("reservation %q: %w", r.ID, err)
		}
		spans = append(spans, sp)
	}
	return spans, nil
}

// AnyOverlap reports whether s overlaps at least one of spans.
func AnyOverlap(s Span, spans []Span) bool {
	for _, other := range spans {
		if s.Overlaps(other) {
			return true
		}
	}
	return false
}

// SpansOverlap is Overlaps for spans that were already resolved with ParseSpan.
func SpansOverlap(a, b Span) bool {
	return a.Overlaps(b)
}
