package slots

import (
	"fmt"
	"time"

	"github.com/julianstephens/timeslot/internal/models"
	"github.com/julianstephens/timeslot/internal/utils"
)

// Annotate returns a copy of slots with IsOverlap and IsPast recomputed.
//
// A slot overlaps when any reservation overlaps it; it is past when its end
// is strictly before now. The input slice is not modified and nothing is
// filtered out.
func Annotate(slots []models.TimeSlot, reservations []models.Reservation, now time.Time) ([]models.TimeSlot, error) {
	used, err := ReservationSpans(reservations)
	if err != nil {
		return nil, err
	}
	now = utils.Naive(now)

	annotated := make([]models.TimeSlot, len(slots))
	for i, slot := range slots {
		sp, err := ParseSpan(SlotInterval(slot))
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		slot.IsOverlap = AnyOverlap(sp, used)
		slot.IsPast = sp.End.Before(now)
		annotated[i] = slot
	}
	return annotated, nil
}

// GenerateAnnotated runs Generate then Annotate for one date.
func GenerateAnnotated(date string, granularityMin int, reservations []models.Reservation, now time.Time) ([]models.TimeSlot, error) {
	generated, err := Generate(date, granularityMin)
	if err != nil {
		return nil, err
	}
	return Annotate(generated, reservations, now)
}
