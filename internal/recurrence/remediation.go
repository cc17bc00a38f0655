package recurrence

import (
	"fmt"
	"time"

	"github.com/julianstephens/timeslot/internal/constants"
	"github.com/julianstephens/timeslot/internal/logger"
	"github.com/julianstephens/timeslot/internal/models"
	"github.com/julianstephens/timeslot/internal/slots"
	"github.com/julianstephens/timeslot/internal/utils"
)

// RemediationOptions bounds the alternatives offered for a conflict.
type RemediationOptions struct {
	Granularity   int
	MinUsageHours float64
	// MaxUsageHours <= 0 means 24.
	MaxUsageHours float64
}

// Remediation is the pick list for one conflicting date.
type Remediation struct {
	// StartOptions begins with a disabled "start" header and the skip entry.
	StartOptions []models.RecurOption
	// EndOptionsByStart maps a start value to its ends, headed by a disabled
	// "end" entry. An empty list means the start cannot be booked.
	EndOptionsByStart map[string][]models.RecurOption
}

type daySlot struct {
	slot  models.TimeSlot
	start time.Time
	end   time.Time
}

// GenerateOptions rebuilds a full day of starts for record.ConflictDate,
// treating only record.UsedSlots as reserved, and for each start the ends
// reachable without crossing them. Ends never leave the day. Starts with
// no reachable end are left out of StartOptions.
func GenerateOptions(now time.Time, record models.ConflictRecord, opts RemediationOptions) (Remediation, error) {
	now = utils.Naive(now).Truncate(time.Minute)
	date := record.ConflictDate
	annotated, err := slots.GenerateAnnotated(date, opts.Granularity, record.UsedSlots, now)
	if err != nil {
		return Remediation{}, err
	}

	day := make([]daySlot, len(annotated))
	for i, s := range annotated {
		sp, err := slots.ParseSpan(slots.SlotInterval(s))
		if err != nil {
			return Remediation{}, err
		}
		day[i] = daySlot{slot: s, start: sp.Start, end: sp.End}
	}

	minHours, maxHours := opts.MinUsageHours, opts.MaxUsageHours
	if maxHours <= 0 {
		maxHours = 24
	}
	if minHours < 0 {
		minHours = 0
	}

	rem := Remediation{
		StartOptions: []models.RecurOption{
			{Date: date, Label: constants.StartHeaderLabel, Kind: models.RecurOptionHeader},
			{Date: date, Label: constants.SkipLabel, Value: constants.SkipValue, Kind: models.RecurOptionSkip},
		},
		EndOptionsByStart: make(map[string][]models.RecurOption),
	}

	for i, ds := range day {
		if ds.slot.IsOverlap || ds.start.Before(now) {
			continue
		}
		ends := endsFrom(day[i:], ds.start, minHours, maxHours, date)
		rem.EndOptionsByStart[ds.slot.Start] = ends
		if len(ends) == 0 {
			continue
		}
		rem.StartOptions = append(rem.StartOptions, models.RecurOption{
			Date:  date,
			Label: ds.slot.Start,
			Value: ds.slot.Start,
			Kind:  models.RecurOptionTime,
		})
	}

	logger.Debug("Generated conflict options", "date", date, "starts", len(rem.StartOptions)-2)
	return rem, nil
}

// endsFrom walks the contiguous free run beginning at run[0].
func endsFrom(run []daySlot, start time.Time, minHours, maxHours float64, date string) []models.RecurOption {
	var ends []models.RecurOption
	for _, ds := range run {
		if ds.slot.IsOverlap {
			break
		}
		hours := float64(int(ds.end.Sub(start).Minutes())) / 60
		if hours < minHours || hours > maxHours {
			continue
		}
		label := ds.slot.End
		if label == constants.Midnight {
			label = constants.EndOfDayLabel
		}
		ends = append(ends, models.RecurOption{
			Date:  date,
			Label: label,
			Value: ds.slot.End,
			Kind:  models.RecurOptionTime,
		})
	}
	if len(ends) == 0 {
		return []models.RecurOption{}
	}
	header := models.RecurOption{Date: date, Label: constants.EndHeaderLabel, Kind: models.RecurOptionHeader}
	return append([]models.RecurOption{header}, ends...)
}

// Resolve returns a copy of conflicts with StartOptions and EndOptionsByStart
// filled for each record.
func Resolve(now time.Time, conflicts []models.ConflictRecord, opts RemediationOptions) ([]models.ConflictRecord, error) {
	resolved := make([]models.ConflictRecord, len(conflicts))
	for i, record := range conflicts {
		rem, err := GenerateOptions(now, record, opts)
		if err != nil {
			return nil, fmt.Errorf("conflict on %s: %w", record.ConflictDate, err)
		}
		record.StartOptions = rem.StartOptions
		record.EndOptionsByStart = rem.EndOptionsByStart
		record.EndOptions = nil
		resolved[i] = record
	}
	return resolved, nil
}

// ApplyChoice records the final start and end for a resolved conflict.
// Passing the skip value as start marks the date as not to be booked.
func ApplyChoice(record *models.ConflictRecord, start, end string) error {
	if start == constants.SkipValue {
		record.FinalSelectedStartTime = constants.SkipValue
		record.FinalSelectedEndTime = ""
		record.EndOptions = nil
		return nil
	}
	if !hasTimeOption(record.StartOptions, start) {
		return fmt.Errorf("%w: start %q on %s", ErrInvalidChoice, start, record.ConflictDate)
	}
	ends := record.EndOptionsByStart[start]
	if !hasTimeOption(ends, end) {
		return fmt.Errorf("%w: end %q for start %s on %s", ErrInvalidChoice, end, start, record.ConflictDate)
	}
	record.FinalSelectedStartTime = start
	record.FinalSelectedEndTime = end
	record.EndOptions = ends
	return nil
}

// Skipped reports whether the record was resolved as "do not book".
func Skipped(record models.ConflictRecord) bool {
	return record.FinalSelectedStartTime == constants.SkipValue
}

func hasTimeOption(options []models.RecurOption, value string) bool {
	for _, o := range options {
		if o.Kind == models.RecurOptionTime && o.Value == value {
			return true
		}
	}
	return false
}
