package recurrence

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/timeslot/internal/models"
)

func conflictOn(date string, used ...models.Reservation) models.ConflictRecord {
	return models.ConflictRecord{
		ConflictDate: date,
		Weekday:      time.Monday,
		Selection:    monday("10:00", "11:00"),
		UsedSlots:    used,
	}
}

var shortReservation = models.Reservation{ID: "r1", Date: "2024-08-05", StartTime: "10:30", EndTime: "10:45"}

func TestGenerateOptions(t *testing.T) {
	rem, err := GenerateOptions(beforeRange, conflictOn("2024-08-05", shortReservation), RemediationOptions{Granularity: 30})
	if err != nil {
		t.Fatalf("GenerateOptions() error = %v", err)
	}

	starts := rem.StartOptions
	if starts[0].Kind != models.RecurOptionHeader || starts[0].Label != "start" || !starts[0].Disabled() {
		t.Errorf("StartOptions[0] = %+v, want disabled start header", starts[0])
	}
	if starts[1].Kind != models.RecurOptionSkip || starts[1].Value != "no-booked" || starts[1].Label != "do-not-book" {
		t.Errorf("StartOptions[1] = %+v, want skip entry", starts[1])
	}
	// 48 half hours minus the reserved 10:30
	if len(starts) != 2+47 {
		t.Errorf("len(StartOptions) = %d, want %d", len(starts), 2+47)
	}
	for _, o := range starts[2:] {
		if o.Value == "10:30" {
			t.Error("reserved slot offered as a start")
		}
	}

	ends := rem.EndOptionsByStart["10:00"]
	if len(ends) != 2 || ends[0].Kind != models.RecurOptionHeader || ends[0].Label != "end" || ends[1].Value != "10:30" {
		t.Errorf("ends for 10:00 = %+v, want [end 10:30]", ends)
	}

	last := rem.EndOptionsByStart["23:30"]
	if len(last) != 2 || last[1].Label != "24:00" || last[1].Value != "00:00" {
		t.Errorf("ends for 23:30 = %+v, want a single 24:00 end", last)
	}

	after := rem.EndOptionsByStart["11:00"]
	if got := after[len(after)-1].Value; got != "00:00" {
		t.Errorf("ends for 11:00 finish at %s, want 00:00 without crossing the day", got)
	}
}

func TestGenerateOptionsDurationBounds(t *testing.T) {
	rem, err := GenerateOptions(beforeRange, conflictOn("2024-08-05", shortReservation), RemediationOptions{
		Granularity:   30,
		MinUsageHours: 1,
		MaxUsageHours: 2,
	})
	if err != nil {
		t.Fatalf("GenerateOptions() error = %v", err)
	}

	// 10:00 can only reach 10:30 before the reservation
	if ends, ok := rem.EndOptionsByStart["10:00"]; !ok || len(ends) != 0 {
		t.Errorf("ends for 10:00 = %+v, want present and empty", ends)
	}
	for _, o := range rem.StartOptions {
		if o.Value == "10:00" || o.Value == "23:30" {
			t.Errorf("start %s has no valid end but is offered", o.Value)
		}
	}

	ends := rem.EndOptionsByStart["11:00"]
	var values []string
	for _, o := range ends[1:] {
		values = append(values, o.Value)
	}
	want := []string{"12:00", "12:30", "13:00"}
	if len(values) != len(want) {
		t.Fatalf("ends for 11:00 = %v, want %v", values, want)
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("ends for 11:00 = %v, want %v", values, want)
			break
		}
	}
}

func TestGenerateOptionsToday(t *testing.T) {
	now := time.Date(2024, 8, 5, 9, 10, 0, 0, time.UTC)
	rem, err := GenerateOptions(now, conflictOn("2024-08-05", shortReservation), RemediationOptions{Granularity: 30})
	if err != nil {
		t.Fatalf("GenerateOptions() error = %v", err)
	}
	if first := rem.StartOptions[2].Value; first != "09:30" {
		t.Errorf("first start = %s, want 09:30", first)
	}
}

func TestResolveAndApplyChoice(t *testing.T) {
	resolved, err := Resolve(beforeRange, []models.ConflictRecord{conflictOn("2024-08-05", shortReservation)}, RemediationOptions{Granularity: 30})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	record := resolved[0]
	if len(record.StartOptions) == 0 || len(record.EndOptionsByStart) == 0 {
		t.Fatal("Resolve() did not fill the options")
	}

	if err := ApplyChoice(&record, "11:00", "12:00"); err != nil {
		t.Fatalf("ApplyChoice() error = %v", err)
	}
	if record.FinalSelectedStartTime != "11:00" || record.FinalSelectedEndTime != "12:00" {
		t.Errorf("final selection = %s-%s, want 11:00-12:00", record.FinalSelectedStartTime, record.FinalSelectedEndTime)
	}
	if len(record.EndOptions) == 0 {
		t.Error("ApplyChoice() should expose the ends of the chosen start")
	}

	tests := []struct {
		name       string
		start, end string
	}{
		{"reserved start", "10:30", "11:00"},
		{"end across reservation", "10:00", "11:30"},
		{"header as end", "11:00", ""},
		{"unknown start", "10:15", "11:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := resolved[0]
			if err := ApplyChoice(&r, tt.start, tt.end); !errors.Is(err, ErrInvalidChoice) {
				t.Errorf("ApplyChoice(%s, %s) error = %v, want ErrInvalidChoice", tt.start, tt.end, err)
			}
		})
	}

	skip := resolved[0]
	if err := ApplyChoice(&skip, "no-booked", ""); err != nil {
		t.Fatalf("ApplyChoice(skip) error = %v", err)
	}
	if !Skipped(skip) {
		t.Error("Skipped() = false after choosing the skip entry")
	}
}
