package recurrence

import (
	"time"

	"github.com/julianstephens/timeslot/internal/models"
	"github.com/julianstephens/timeslot/internal/utils"
)

// ExpandRequest is a recurring pattern plus the resolved conflicts of a check.
type ExpandRequest struct {
	StartDate  string
	EndDate    string
	Selections []models.RecurringSelection
	Conflicts  []models.ConflictRecord
}

// Expand lists the reservations a recurring pattern produces over the range.
// Dates without a conflict use the weekday's selection; conflicting dates use
// their final choice and are left out when skipped or unresolved. Dates whose
// start is already before now are left out.
func Expand(now time.Time, req ExpandRequest) ([]models.Reservation, error) {
	now = utils.Naive(now)
	first, last, err := dateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	byDay, err := selectionsByWeekday(req.Selections)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]models.ConflictRecord, len(req.Conflicts))
	for _, c := range req.Conflicts {
		byDate[c.ConflictDate] = c
	}

	var out []models.Reservation
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		sel, ok := byDay[day.Weekday()]
		if !ok {
			continue
		}
		date := utils.FormatDate(day)
		start, end := sel.StartTime, sel.EndTime
		if record, conflicted := byDate[date]; conflicted {
			if Skipped(record) || record.FinalSelectedStartTime == "" {
				continue
			}
			start, end = record.FinalSelectedStartTime, record.FinalSelectedEndTime
		}

		at, err := utils.CombineDateAndTime(date, start)
		if err != nil {
			return nil, err
		}
		if at.Before(now) {
			continue
		}
		out = append(out, models.Reservation{Date: date, StartTime: start, EndTime: end})
	}
	return out, nil
}
