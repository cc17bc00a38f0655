// Package availability turns an annotated day of slots into the start and
// end times a user may pick for a new reservation.
package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/timeslot/internal/constants"
	"github.com/julianstephens/timeslot/internal/models"
	"github.com/julianstephens/timeslot/internal/slots"
	"github.com/julianstephens/timeslot/internal/utils"
)

// StartRequest describes one day for which start options are wanted.
type StartRequest struct {
	Date string
	// Slots must already be annotated against Reservations.
	Slots        []models.TimeSlot
	Reservations []models.Reservation
	Granularity  int
	NowEnabled   bool
}

type dayState int

const (
	dayPast dayState = iota
	dayToday
	dayFuture
)

func classifyDay(date string, now time.Time) (dayState, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return dayPast, fmt.Errorf("invalid date %q: %w", date, err)
	}
	today := utils.StartOfDay(now)
	switch {
	case day.Before(today):
		return dayPast, nil
	case day.Equal(today):
		return dayToday, nil
	default:
		return dayFuture, nil
	}
}

// StartOptions lists the free starts of req.Date as seen at now.
//
// Past days yield nothing. On the current day only slots starting at or after
// now qualify, and when NowEnabled a synthetic "now" option is put first
// unless its slot is reserved or a regular option already starts this minute.
func StartOptions(now time.Time, req StartRequest) ([]models.StartTimeOption, error) {
	now = utils.Naive(now).Truncate(time.Minute)
	state, err := classifyDay(req.Date, now)
	if err != nil {
		return nil, err
	}
	if state == dayPast {
		return nil, nil
	}

	type candidate struct {
		at   time.Time
		slot models.TimeSlot
	}
	var candidates []candidate
	nowClock := utils.FormatTime(now)
	nowCovered := false
	for _, slot := range req.Slots {
		if slot.IsOverlap {
			continue
		}
		at, err := utils.CombineDateAndTime(req.Date, slot.Start)
		if err != nil {
			return nil, fmt.Errorf("slot %s: %w", slot.Start, err)
		}
		if state == dayToday && at.Before(now) {
			continue
		}
		if state == dayToday && slot.Start == nowClock {
			nowCovered = true
		}
		candidates = append(candidates, candidate{at: at, slot: slot})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].at.Before(candidates[j].at)
	})

	options := make([]models.StartTimeOption, 0, len(candidates)+1)
	if req.NowEnabled && state == dayToday && !nowCovered {
		opt, ok, err := nowOption(now, req)
		if err != nil {
			return nil, err
		}
		if ok {
			options = append(options, opt)
		}
	}
	for _, c := range candidates {
		options = append(options, models.StartTimeOption{
			Label:      c.slot.Start,
			Value:      models.StartAt(c.slot.Start),
			Slot:       c.slot,
			FullString: fullString(c.slot),
		})
	}
	return options, nil
}

// nowOption builds the synthetic option covering the grid cell that contains now.
func nowOption(now time.Time, req StartRequest) (models.StartTimeOption, bool, error) {
	if err := slots.ValidateGranularity(req.Granularity); err != nil {
		return models.StartTimeOption{}, false, err
	}
	start := utils.FloorToGranularity(now, req.Granularity)
	end := start.Add(time.Duration(req.Granularity) * time.Minute)
	if dayEnd := utils.StartOfDay(start).AddDate(0, 0, 1); end.After(dayEnd) {
		end = dayEnd
	}

	used, err := slots.ReservationSpans(req.Reservations)
	if err != nil {
		return models.StartTimeOption{}, false, err
	}
	if slots.AnyOverlap(slots.Span{Start: start, End: end}, used) {
		return models.StartTimeOption{}, false, nil
	}

	slot := models.TimeSlot{
		Start: utils.FormatTime(start),
		End:   utils.FormatTime(end),
		Date:  req.Date,
	}
	return models.StartTimeOption{
		Label:      constants.NowLabel,
		Value:      models.StartAtNow(),
		Slot:       slot,
		IsNow:      true,
		FullString: fullString(slot),
	}, true, nil
}

func fullString(slot models.TimeSlot) string {
	return fmt.Sprintf("%s_%s-%s", slot.Date, slot.Start, slot.End)
}
