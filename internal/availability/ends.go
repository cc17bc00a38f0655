package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/timeslot/internal/constants"
	"github.com/julianstephens/timeslot/internal/logger"
	"github.com/julianstephens/timeslot/internal/models"
	"github.com/julianstephens/timeslot/internal/slots"
	"github.com/julianstephens/timeslot/internal/utils"
)

// EndRequest describes a chosen start for which end options are wanted.
type EndRequest struct {
	Date  string
	Start models.StartChoice
	// Slots are the annotated slots of Date.
	Slots []models.TimeSlot
	// Reservations must include those of the following day when
	// CrossDayEnabled is set.
	Reservations    []models.Reservation
	Granularity     int
	MinUsageHours   float64
	MaxUsageHours   float64
	CrossDayEnabled bool
	// NextDayHint tags ends that fall on the following day. Defaults to "next-day".
	NextDayHint string
}

func (r EndRequest) bounds() (minHours, maxHours float64) {
	minHours, maxHours = r.MinUsageHours, r.MaxUsageHours
	if maxHours <= 0 {
		maxHours = 24
	}
	if minHours < 0 {
		minHours = 0
	}
	return minHours, maxHours
}

func (r EndRequest) hint() string {
	if r.NextDayHint == "" {
		return constants.DefaultNextDayHint
	}
	return r.NextDayHint
}

// EffectiveStart resolves a start choice to an instant. "now" is rounded down
// to the granularity grid.
func EffectiveStart(now time.Time, date string, start models.StartChoice, granularity int) (time.Time, error) {
	if start.IsNow() {
		if err := slots.ValidateGranularity(granularity); err != nil {
			return time.Time{}, err
		}
		return utils.FloorToGranularity(utils.Naive(now), granularity), nil
	}
	clock, ok := start.Clock()
	if !ok {
		return time.Time{}, fmt.Errorf("empty start time")
	}
	return utils.CombineDateAndTime(date, clock)
}

// EndOptions lists the ends reachable from req.Start without crossing a
// reservation, as seen at now.
//
// Same-day ends come from the contiguous run of free slots beginning with the
// slot that contains the start; the walk stops at the first reserved slot.
// If the run reaches midnight and CrossDayEnabled is set, it continues into
// the next day up to the earlier of start+MaxUsageHours and the first
// next-day reservation.
// Only ends whose distance from the reference instant lies within the usage
// bounds are kept. The reference is now for a "now" start and the effective
// start otherwise.
func EndOptions(now time.Time, req EndRequest) ([]models.EndTimeOption, error) {
	if req.Date == "" || req.Start.IsZero() {
		return nil, nil
	}
	now = utils.Naive(now).Truncate(time.Minute)
	state, err := classifyDay(req.Date, now)
	if err != nil {
		return nil, err
	}
	if state == dayPast || (state == dayFuture && req.Start.IsNow()) {
		return nil, nil
	}
	if err := slots.ValidateGranularity(req.Granularity); err != nil {
		return nil, err
	}

	start, err := EffectiveStart(now, req.Date, req.Start, req.Granularity)
	if err != nil {
		return nil, err
	}
	reference := start
	if req.Start.IsNow() {
		reference = now
	}
	minHours, maxHours := req.bounds()
	hint := req.hint()

	type walked struct {
		at   time.Time
		slot models.TimeSlot
		end  time.Time
	}
	ordered := make([]walked, 0, len(req.Slots))
	for _, slot := range req.Slots {
		sp, err := slots.ParseSpan(slots.SlotInterval(slot))
		if err != nil {
			return nil, fmt.Errorf("slot %s: %w", slot.Start, err)
		}
		ordered = append(ordered, walked{at: sp.Start, slot: slot, end: sp.End})
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].at.Before(ordered[j].at) })

	day, _ := utils.ParseDate(req.Date)
	dayEnd := day.AddDate(0, 0, 1)

	var options []models.EndTimeOption
	keep := func(end time.Time, slot models.TimeSlot) {
		hours := float64(int(end.Sub(reference).Minutes())) / 60
		if hours < minHours || hours > maxHours {
			return
		}
		nextDay := !end.Before(dayEnd)
		label := slot.End
		if nextDay {
			label = fmt.Sprintf("%s (%s)", slot.End, hint)
		}
		options = append(options, models.EndTimeOption{
			Label:   label,
			Value:   slot.End,
			Slot:    slot,
			NextDay: nextDay,
		})
	}

	blocked := false
	for _, w := range ordered {
		// an off-grid start joins the run at the slot containing it
		if !w.end.After(start) {
			continue
		}
		if w.slot.IsOverlap {
			blocked = true
			break
		}
		keep(w.end, w.slot)
	}

	if !blocked && req.CrossDayEnabled {
		limit, err := crossDayLimit(start, dayEnd, maxHours, req)
		if err != nil {
			return nil, err
		}
		step := time.Duration(req.Granularity) * time.Minute
		nextDate := utils.FormatDate(dayEnd)
		for cur := dayEnd; ; cur = cur.Add(step) {
			end := cur.Add(step)
			if end.After(limit) {
				break
			}
			keep(end, models.TimeSlot{
				Start: utils.FormatTime(cur),
				End:   utils.FormatTime(end),
				Date:  nextDate,
			})
		}
	}

	logger.Debug("Resolved end options", "date", req.Date, "start", req.Start.String(), "count", len(options), "blocked", blocked)
	return options, nil
}

// crossDayLimit is the latest instant a spill into the following day may reach.
func crossDayLimit(start, dayEnd time.Time, maxHours float64, req EndRequest) (time.Time, error) {
	limit := start.Add(time.Duration(maxHours * float64(time.Hour)))
	if nextDayEnd := dayEnd.AddDate(0, 0, 1); limit.After(nextDayEnd) {
		limit = nextDayEnd
	}
	nextDate := utils.FormatDate(dayEnd)
	for _, r := range req.Reservations {
		if r.Date != nextDate {
			continue
		}
		at, err := utils.CombineDateAndTime(r.Date, r.StartTime)
		if err != nil {
			return time.Time{}, fmt.Errorf("reservation %q: %w", r.ID, err)
		}
		if aligned := utils.FloorToGranularity(at, req.Granularity); aligned.Before(limit) {
			limit = aligned
		}
	}
	return limit, nil
}
