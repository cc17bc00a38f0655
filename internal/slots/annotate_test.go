package slots

import (
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/timeslot/internal/models"
)

func TestAnnotate(t *testing.T) {
	generated, err := Generate("2024-08-05", 30)
	if err != nil {
		t.Fatal(err)
	}
	reservations := []models.Reservation{
		{ID: "r1", Date: "2024-08-05", StartTime: "10:15", EndTime: "11:00"},
		{ID: "r2", Date: "2024-08-04", StartTime: "23:00", EndTime: "00:00"},
	}
	now := time.Date(2024, 8, 5, 9, 10, 0, 0, time.UTC)

	got, err := Annotate(generated, reservations, now)
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	if len(got) != len(generated) {
		t.Fatalf("Annotate() returned %d slots, want %d", len(got), len(generated))
	}

	byStart := map[string]models.TimeSlot{}
	for _, s := range got {
		byStart[s.Start] = s
	}

	for _, start := range []string{"10:00", "10:30"} {
		if !byStart[start].IsOverlap {
			t.Errorf("slot %s should overlap r1", start)
		}
	}
	for _, start := range []string{"00:00", "09:30", "11:00"} {
		if byStart[start].IsOverlap {
			t.Errorf("slot %s should be free", start)
		}
	}

	if !byStart["08:30"].IsPast {
		t.Error("slot 08:30-09:00 should be past at 09:10")
	}
	if byStart["09:00"].IsPast {
		t.Error("slot 09:00-09:30 contains now and should not be past")
	}

	// input is left untouched
	for _, s := range generated {
		if s.IsOverlap || s.IsPast {
			t.Fatalf("Annotate() mutated its input: %+v", s)
		}
	}
}

func TestAnnotateIdempotent(t *testing.T) {
	reservations := []models.Reservation{{ID: "r", Date: "2024-08-05", StartTime: "12:00", EndTime: "13:00"}}
	now := time.Date(2024, 8, 5, 12, 30, 0, 0, time.UTC)

	once, err := GenerateAnnotated("2024-08-05", 15, reservations, now)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := Annotate(once, reservations, now)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Error("Annotate() is not idempotent")
	}
}

func TestAnnotateTouchingReservation(t *testing.T) {
	reservations := []models.Reservation{{ID: "r", Date: "2024-08-05", StartTime: "11:00", EndTime: "12:00"}}
	got, err := GenerateAnnotated("2024-08-05", 60, reservations, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if got[10].IsOverlap || got[12].IsOverlap {
		t.Error("slots touching a reservation must not overlap it")
	}
	if !got[11].IsOverlap {
		t.Error("slot 11:00-12:00 should overlap")
	}
}

func TestAnnotateLastSlotOfDay(t *testing.T) {
	reservations := []models.Reservation{{ID: "r", Date: "2024-08-05", StartTime: "23:30", EndTime: "00:00"}}
	now := time.Date(2024, 8, 5, 23, 59, 0, 0, time.UTC)

	got, err := GenerateAnnotated("2024-08-05", 30, reservations, now)
	if err != nil {
		t.Fatal(err)
	}
	last := got[len(got)-1]
	if !last.IsOverlap {
		t.Error("23:30-00:00 should overlap a 23:30-00:00 reservation")
	}
	if last.IsPast {
		t.Error("23:30-00:00 ends at next midnight and is not past at 23:59")
	}
}

func TestAnnotateMalformedReservation(t *testing.T) {
	generated, _ := Generate("2024-08-05", 60)
	_, err := Annotate(generated, []models.Reservation{{ID: "x", Date: "bad", StartTime: "10:00", EndTime: "11:00"}}, time.Now())
	if err == nil {
		t.Error("Annotate() with malformed reservation should fail")
	}
}
