package availability

import (
	"testing"
	"time"

	"github.com/julianstephens/timeslot/internal/models"
	"github.com/julianstephens/timeslot/internal/slots"
)

// 2024-08-05 is a Monday.
var testNow = time.Date(2024, 8, 5, 10, 17, 0, 0, time.UTC)

func annotated(t *testing.T, date string, g int, reservations []models.Reservation, now time.Time) []models.TimeSlot {
	t.Helper()
	got, err := slots.GenerateAnnotated(date, g, reservations, now)
	if err != nil {
		t.Fatalf("GenerateAnnotated() error = %v", err)
	}
	return got
}

func endValues(opts []models.EndTimeOption) []string {
	values := make([]string, len(opts))
	for i, o := range opts {
		values[i] = o.Value
	}
	return values
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStartOptionsPastDay(t *testing.T) {
	got, err := StartOptions(testNow, StartRequest{
		Date:        "2024-08-04",
		Slots:       annotated(t, "2024-08-04", 30, nil, testNow),
		Granularity: 30,
		NowEnabled:  true,
	})
	if err != nil {
		t.Fatalf("StartOptions() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("StartOptions() for a past day returned %d options, want 0", len(got))
	}
}

func TestStartOptionsToday(t *testing.T) {
	reservations := []models.Reservation{{ID: "r", Date: "2024-08-05", StartTime: "11:00", EndTime: "12:00"}}
	got, err := StartOptions(testNow, StartRequest{
		Date:         "2024-08-05",
		Slots:        annotated(t, "2024-08-05", 30, reservations, testNow),
		Reservations: reservations,
		Granularity:  30,
		NowEnabled:   true,
	})
	if err != nil {
		t.Fatalf("StartOptions() error = %v", err)
	}
	if len(got) == 0 || !got[0].IsNow {
		t.Fatalf("StartOptions() first option = %+v, want now option", got)
	}
	now := got[0]
	if !now.Value.IsNow() || now.Slot.Start != "10:00" || now.Slot.End != "10:30" {
		t.Errorf("now option = %+v, want slot 10:00-10:30", now)
	}
	if now.FullString != "2024-08-05_10:00-10:30" {
		t.Errorf("now option FullString = %q", now.FullString)
	}

	if got[1].Label != "10:30" {
		t.Errorf("first regular option = %s, want 10:30", got[1].Label)
	}
	for _, opt := range got[1:] {
		if opt.IsNow {
			t.Errorf("duplicate now option %+v", opt)
		}
		if opt.Label == "11:00" || opt.Label == "11:30" {
			t.Errorf("reserved start %s offered", opt.Label)
		}
		if opt.Label < "10:30" {
			t.Errorf("start %s is before now", opt.Label)
		}
	}
	// 10:30..23:30 is 27 starts, minus two reserved, plus now
	if len(got) != 26 {
		t.Errorf("StartOptions() returned %d options, want 26", len(got))
	}
}

func TestStartOptionsNowSlotReserved(t *testing.T) {
	reservations := []models.Reservation{{ID: "r", Date: "2024-08-05", StartTime: "10:00", EndTime: "10:30"}}
	got, err := StartOptions(testNow, StartRequest{
		Date:         "2024-08-05",
		Slots:        annotated(t, "2024-08-05", 30, reservations, testNow),
		Reservations: reservations,
		Granularity:  30,
		NowEnabled:   true,
	})
	if err != nil {
		t.Fatalf("StartOptions() error = %v", err)
	}
	for _, opt := range got {
		if opt.IsNow {
			t.Fatal("now option offered although its slot is reserved")
		}
	}
}

func TestStartOptionsNowAlreadyRepresented(t *testing.T) {
	now := time.Date(2024, 8, 5, 10, 30, 20, 0, time.UTC)
	got, err := StartOptions(now, StartRequest{
		Date:        "2024-08-05",
		Slots:       annotated(t, "2024-08-05", 30, nil, now),
		Granularity: 30,
		NowEnabled:  true,
	})
	if err != nil {
		t.Fatalf("StartOptions() error = %v", err)
	}
	if got[0].IsNow || got[0].Label != "10:30" {
		t.Errorf("StartOptions()[0] = %+v, want the 10:30 slot and no now option", got[0])
	}
}

func TestStartOptionsFutureDay(t *testing.T) {
	got, err := StartOptions(testNow, StartRequest{
		Date:        "2024-08-06",
		Slots:       annotated(t, "2024-08-06", 60, nil, testNow),
		Granularity: 60,
		NowEnabled:  true,
	})
	if err != nil {
		t.Fatalf("StartOptions() error = %v", err)
	}
	if len(got) != 24 {
		t.Fatalf("StartOptions() returned %d options, want 24", len(got))
	}
	if got[0].IsNow || got[0].Label != "00:00" {
		t.Errorf("StartOptions()[0] = %+v, want 00:00", got[0])
	}
}

func TestEndOptionsContiguousRun(t *testing.T) {
	// ten hourly slots, the fourth reserved
	reservations := []models.Reservation{{ID: "r", Date: "2024-08-06", StartTime: "03:00", EndTime: "04:00"}}
	day := annotated(t, "2024-08-06", 60, reservations, testNow)[:10]

	got, err := EndOptions(testNow, EndRequest{
		Date:            "2024-08-06",
		Start:           models.StartAt("00:00"),
		Slots:           day,
		Reservations:    reservations,
		Granularity:     60,
		CrossDayEnabled: true,
	})
	if err != nil {
		t.Fatalf("EndOptions() error = %v", err)
	}
	want := []string{"01:00", "02:00", "03:00"}
	if !equalStrings(endValues(got), want) {
		t.Errorf("EndOptions() = %v, want %v", endValues(got), want)
	}
}

func TestEndOptionsDurationBounds(t *testing.T) {
	got, err := EndOptions(testNow, EndRequest{
		Date:          "2024-08-06",
		Start:         models.StartAt("10:00"),
		Slots:         annotated(t, "2024-08-06", 30, nil, testNow),
		Granularity:   30,
		MinUsageHours: 1,
		MaxUsageHours: 2,
	})
	if err != nil {
		t.Fatalf("EndOptions() error = %v", err)
	}
	want := []string{"11:00", "11:30", "12:00"}
	if !equalStrings(endValues(got), want) {
		t.Errorf("EndOptions() = %v, want %v", endValues(got), want)
	}
	start := time.Date(2024, 8, 6, 10, 0, 0, 0, time.UTC)
	for _, opt := range got {
		end, _ := time.Parse("2006-01-02 15:04", "2024-08-06 "+opt.Value)
		if d := end.Sub(start); d < time.Hour || d > 2*time.Hour {
			t.Errorf("end %s is %v from start", opt.Value, d)
		}
	}
}

func TestEndOptionsNowStart(t *testing.T) {
	got, err := EndOptions(testNow, EndRequest{
		Date:          "2024-08-05",
		Start:         models.StartAtNow(),
		Slots:         annotated(t, "2024-08-05", 30, nil, testNow),
		Granularity:   30,
		MaxUsageHours: 1,
	})
	if err != nil {
		t.Fatalf("EndOptions() error = %v", err)
	}
	// measured from 10:17, 11:30 is 73 minutes away
	want := []string{"10:30", "11:00"}
	if !equalStrings(endValues(got), want) {
		t.Errorf("EndOptions() = %v, want %v", endValues(got), want)
	}
}

func TestEndOptionsRejected(t *testing.T) {
	tests := []struct {
		name string
		date string
		pick models.StartChoice
	}{
		{"no date", "", models.StartAt("10:00")},
		{"no start", "2024-08-06", models.StartChoice{}},
		{"past day", "2024-08-04", models.StartAt("10:00")},
		{"future day with now", "2024-08-06", models.StartAtNow()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var day []models.TimeSlot
			if tt.date != "" {
				day = annotated(t, tt.date, 30, nil, testNow)
			}
			got, err := EndOptions(testNow, EndRequest{
				Date:            tt.date,
				Start:           tt.pick,
				Slots:           day,
				Granularity:     30,
				CrossDayEnabled: true,
			})
			if err != nil {
				t.Fatalf("EndOptions() error = %v", err)
			}
			if len(got) != 0 {
				t.Errorf("EndOptions() = %v, want none", endValues(got))
			}
		})
	}
}

func TestEndOptionsCrossDay(t *testing.T) {
	tests := []struct {
		name         string
		crossDay     bool
		maxHours     float64
		reservations []models.Reservation
		want         []string
		nextDay      int
	}{
		{
			name:     "limited by next day reservation",
			crossDay: true,
			reservations: []models.Reservation{
				{ID: "n", Date: "2024-08-07", StartTime: "03:30", EndTime: "05:00"},
			},
			want:    []string{"23:00", "00:00", "01:00", "02:00", "03:00"},
			nextDay: 4,
		},
		{
			name:     "limited by max hours",
			crossDay: true,
			maxHours: 3,
			want:     []string{"23:00", "00:00", "01:00"},
			nextDay:  2,
		},
		{
			name:    "disabled",
			want:    []string{"23:00", "00:00"},
			nextDay: 1,
		},
		{
			name:     "next day reserved from midnight",
			crossDay: true,
			reservations: []models.Reservation{
				{ID: "n", Date: "2024-08-07", StartTime: "00:00", EndTime: "08:00"},
			},
			want:    []string{"23:00", "00:00"},
			nextDay: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EndOptions(testNow, EndRequest{
				Date:            "2024-08-06",
				Start:           models.StartAt("22:00"),
				Slots:           annotated(t, "2024-08-06", 60, tt.reservations, testNow),
				Reservations:    tt.reservations,
				Granularity:     60,
				MaxUsageHours:   tt.maxHours,
				CrossDayEnabled: tt.crossDay,
			})
			if err != nil {
				t.Fatalf("EndOptions() error = %v", err)
			}
			if !equalStrings(endValues(got), tt.want) {
				t.Fatalf("EndOptions() = %v, want %v", endValues(got), tt.want)
			}
			nextDay := 0
			for _, opt := range got {
				if opt.NextDay {
					nextDay++
				}
			}
			if nextDay != tt.nextDay {
				t.Errorf("next-day options = %d, want %d", nextDay, tt.nextDay)
			}
			if got[1].Label != "00:00 (next-day)" {
				t.Errorf("midnight label = %q, want %q", got[1].Label, "00:00 (next-day)")
			}
		})
	}
}

func TestEndOptionsOffGridStart(t *testing.T) {
	got, err := EndOptions(testNow, EndRequest{
		Date:          "2024-08-06",
		Start:         models.StartAt("10:10"),
		Slots:         annotated(t, "2024-08-06", 30, nil, testNow),
		Granularity:   30,
		MaxUsageHours: 1,
	})
	if err != nil {
		t.Fatalf("EndOptions() error = %v", err)
	}
	want := []string{"10:30", "11:00"}
	if !equalStrings(endValues(got), want) {
		t.Errorf("EndOptions() = %v, want %v", endValues(got), want)
	}
}

func TestEndOptionsInvalidGranularity(t *testing.T) {
	_, err := EndOptions(testNow, EndRequest{
		Date:        "2024-08-06",
		Start:       models.StartAt("10:00"),
		Granularity: 0,
	})
	if err == nil {
		t.Error("EndOptions() with zero granularity should fail")
	}
}
