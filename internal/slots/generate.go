package slots

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/timeslot/internal/constants"
	"github.com/julianstephens/timeslot/internal/logger"
	"github.com/julianstephens/timeslot/internal/models"
	"github.com/julianstephens/timeslot/internal/utils"
)

var ErrInvalidGranularity = errors.New("granularity must be between 1 and 1440 minutes")

// ValidateGranularity rejects slot lengths that cannot partition a day.
func ValidateGranularity(granularityMin int) error {
	if granularityMin < 1 || granularityMin > constants.MinutesPerDay {
		return fmt.Errorf("%w: got %d", ErrInvalidGranularity, granularityMin)
	}
	return nil
}

// DividesDay reports whether slots of granularityMin minutes end exactly at midnight.
func DividesDay(granularityMin int) bool {
	return granularityMin > 0 && constants.MinutesPerDay%granularityMin == 0
}

// Generate partitions date into consecutive slots of granularityMin minutes,
// from 00:00 up to midnight of the next day (rendered as "00:00").
//
// When granularityMin does not divide 1440 the last slot is shorter, ends at
// midnight and has Truncated set.
func Generate(date string, granularityMin int) ([]models.TimeSlot, error) {
	if err := ValidateGranularity(granularityMin); err != nil {
		return nil, err
	}
	dayStart, err := utils.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	dayEnd := dayStart.AddDate(0, 0, 1)
	step := time.Duration(granularityMin) * time.Minute

	slots := make([]models.TimeSlot, 0, (constants.MinutesPerDay+granularityMin-1)/granularityMin)
	for start := dayStart; start.Before(dayEnd); {
		end := start.Add(step)
		truncated := false
		if end.After(dayEnd) {
			end = dayEnd
			truncated = true
			logger.Debug("Clipped trailing slot at midnight", "date", date, "granularity", granularityMin, "start", utils.FormatTime(start))
		}

		slots = append(slots, models.TimeSlot{
			Start:     utils.FormatTime(start),
			End:       utils.FormatTime(end),
			Date:      date,
			Truncated: truncated,
		})
		start = end
	}
	return slots, nil
}
