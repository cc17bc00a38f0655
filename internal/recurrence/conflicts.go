// Package recurrence detects where a weekly booking pattern collides with
// existing reservations and builds the alternatives offered for each
// colliding date.
package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/timeslot/internal/logger"
	"github.com/julianstephens/timeslot/internal/models"
	"github.com/julianstephens/timeslot/internal/slots"
	"github.com/julianstephens/timeslot/internal/utils"
)

var (
	ErrDuplicateWeekday = errors.New("more than one selection for the same weekday")
	ErrInvalidChoice    = errors.New("choice is not one of the offered options")
)

// CheckRequest is a weekly pattern applied over an inclusive date range.
type CheckRequest struct {
	StartDate    string
	EndDate      string
	Selections   []models.RecurringSelection
	Reservations []models.Reservation
}

// Result of a conflict walk. When AllInPast is set the walk stopped early
// and Conflicts must not be used.
type Result struct {
	HasConflict bool                    `json:"has_conflict"`
	Conflicts   []models.ConflictRecord `json:"conflict_list"`
	AllInPast   bool                    `json:"all_in_past"`
}

// selectionsByWeekday indexes selections, rejecting a weekday given twice.
func selectionsByWeekday(selections []models.RecurringSelection) (map[time.Weekday]models.RecurringSelection, error) {
	byDay := make(map[time.Weekday]models.RecurringSelection, len(selections))
	for _, sel := range selections {
		if _, ok := byDay[sel.Weekday]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateWeekday, sel.Weekday)
		}
		byDay[sel.Weekday] = sel
	}
	return byDay, nil
}

func dateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	return start, end, nil
}

// CheckConflicts walks every date of the range in order and records, per
// date, the reservations overlapping that weekday's selection.
//
// On the current date reservations that already ended are ignored. If a
// date with a selection and reservations has its selection start before now,
// the walk stops and AllInPast is set.
func CheckConflicts(now time.Time, req CheckRequest) (Result, error) {
	now = utils.Naive(now)
	first, last, err := dateRange(req.StartDate, req.EndDate)
	if err != nil {
		return Result{}, err
	}
	byDay, err := selectionsByWeekday(req.Selections)
	if err != nil {
		return Result{}, err
	}

	byDate := make(map[string][]models.Reservation)
	for _, r := range req.Reservations {
		byDate[r.Date] = append(byDate[r.Date], r)
	}
	today := utils.FormatDate(now)

	var result Result
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		date := utils.FormatDate(day)
		sel, ok := byDay[day.Weekday()]
		if !ok {
			continue
		}
		sameDay, err := pending(byDate[date], date == today, now)
		if err != nil {
			return Result{}, err
		}
		if len(sameDay) == 0 {
			continue
		}

		selStart, err := utils.CombineDateAndTime(date, sel.StartTime)
		if err != nil {
			return Result{}, fmt.Errorf("selection for %s: %w", sel.Weekday, err)
		}
		if selStart.Before(now) {
			logger.Debug("Recurring selection starts in the past, stopping", "date", date, "start", sel.StartTime)
			result.AllInPast = true
			break
		}

		candidate := slots.Interval{Date: date, Start: sel.StartTime, End: sel.EndTime}
		var record *models.ConflictRecord
		for _, r := range sameDay {
			hit, err := slots.Overlaps(candidate, slots.ReservationInterval(r))
			if err != nil {
				return Result{}, err
			}
			if !hit {
				continue
			}
			if record == nil {
				record = &models.ConflictRecord{
					ConflictDate: date,
					Weekday:      day.Weekday(),
					Selection:    sel,
				}
			}
			record.UsedSlots = append(record.UsedSlots, r)
		}
		if record != nil {
			result.Conflicts = append(result.Conflicts, *record)
		}
	}

	result.HasConflict = len(result.Conflicts) > 0
	logger.Debug("Checked recurring selections", "from", req.StartDate, "to", req.EndDate, "conflicts", len(result.Conflicts), "all_in_past", result.AllInPast)
	return result, nil
}

// pending drops, on the current date, reservations whose end is not after now.
func pending(reservations []models.Reservation, isToday bool, now time.Time) ([]models.Reservation, error) {
	if !isToday {
		return reservations, nil
	}
	var kept []models.Reservation
	for _, r := range reservations {
		sp, err := slots.ParseSpan(slots.ReservationInterval(r))
		if err != nil {
			return nil, fmt.Errorf("reservation %q: %w", r.ID, err)
		}
		if sp.End.After(now) {
			kept = append(kept, r)
		}
	}
	return kept, nil
}
