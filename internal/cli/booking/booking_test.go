package booking

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timeslot/internal/cli"
	"github.com/julianstephens/timeslot/internal/models"
	"github.com/julianstephens/timeslot/internal/storage"
	"github.com/julianstephens/timeslot/internal/storage/sqlite"
)

var testNow = time.Date(2024, 8, 5, 10, 17, 0, 0, time.UTC)

func setupTestDB(t *testing.T, reservations ...models.Reservation) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	for _, r := range reservations {
		if err := store.AddReservation(storage.NewReservation(r.Date, r.StartTime, r.EndTime, "", testNow)); err != nil {
			t.Fatal(err)
		}
	}
	var out bytes.Buffer
	return &cli.Context{Store: store, Now: func() time.Time { return testNow }, Out: &out}, &out
}

// scriptChoices makes cli.Choose answer with the option whose label matches
// the next scripted answer.
func scriptChoices(t *testing.T, answers ...string) {
	t.Helper()
	orig := cli.Choose
	t.Cleanup(func() { cli.Choose = orig })
	cli.Choose = func(title string, options []huh.Option[string]) (string, error) {
		if len(answers) == 0 {
			t.Fatalf("unexpected prompt %q", title)
		}
		want := answers[0]
		answers = answers[1:]
		for _, o := range options {
			if o.Key == want {
				return o.Value, nil
			}
		}
		t.Fatalf("prompt %q has no option %q", title, want)
		return "", nil
	}
}

func TestSlotsCmd(t *testing.T) {
	ctx, out := setupTestDB(t, models.Reservation{Date: "2024-08-06", StartTime: "10:00", EndTime: "11:00"})

	if err := (&SlotsCmd{Date: "2024-08-06"}).Run(ctx); err != nil {
		t.Fatalf("slots failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Slots for 2024-08-06") || !strings.Contains(got, "reserved") {
		t.Errorf("slots output = %q", got)
	}
	if !strings.Contains(got, "46 of 48 slots free") {
		t.Errorf("slots output = %q, want 46 of 48 free", got)
	}

	out.Reset()
	if err := (&SlotsCmd{Date: "2024-08-06", Free: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "reserved") {
		t.Errorf("slots --free output lists reserved slots: %q", out.String())
	}

	if err := (&SlotsCmd{Date: "next week"}).Run(ctx); err == nil {
		t.Error("slots with a bad date succeeded")
	}
}

func TestStartsCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	if err := (&StartsCmd{}).Run(ctx); err != nil {
		t.Fatalf("starts failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Start times for 2024-08-05") || !strings.Contains(got, "now") {
		t.Errorf("starts output = %q, want today's list with a now option", got)
	}

	out.Reset()
	if err := (&StartsCmd{Date: "2024-08-01"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No start times available.") {
		t.Errorf("starts output for a past day = %q", out.String())
	}
}

func TestEndsCmd(t *testing.T) {
	ctx, out := setupTestDB(t, models.Reservation{Date: "2024-08-06", StartTime: "12:00", EndTime: "13:00"})
	if err := (&EndsCmd{Date: "2024-08-06", Start: "10:00"}).Run(ctx); err != nil {
		t.Fatalf("ends failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"10:30", "11:00", "11:30", "12:00"} {
		if !strings.Contains(got, want) {
			t.Errorf("ends output missing %s: %q", want, got)
		}
	}
	if strings.Contains(got, "12:30") {
		t.Errorf("ends output runs past the reservation: %q", got)
	}
}

func TestBookCmdWithFlags(t *testing.T) {
	ctx, out := setupTestDB(t)
	if err := (&BookCmd{Date: "2024-08-06", Start: "10:00", End: "11:00", Note: "review"}).Run(ctx); err != nil {
		t.Fatalf("book failed: %v", err)
	}
	if !strings.Contains(out.String(), "Booked 2024-08-06 10:00-11:00") {
		t.Errorf("book output = %q", out.String())
	}
	got, _ := ctx.Store.GetReservations("2024-08-06", "2024-08-06")
	if len(got) != 1 || got[0].Note != "review" {
		t.Fatalf("reservations = %+v", got)
	}

	// the same time is no longer offered
	if err := (&BookCmd{Date: "2024-08-06", Start: "10:00", End: "11:00"}).Run(ctx); err == nil {
		t.Error("double booking succeeded")
	}
	if err := (&BookCmd{Date: "2024-08-06", Start: "12:00", End: "12:10"}).Run(ctx); err == nil {
		t.Error("booking an off-grid end succeeded")
	}
}

func TestBookCmdNow(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := (&BookCmd{Start: "now", End: "11:00"}).Run(ctx); err != nil {
		t.Fatalf("book now failed: %v", err)
	}
	got, _ := ctx.Store.GetReservations("2024-08-05", "2024-08-05")
	if len(got) != 1 || got[0].StartTime != "10:00" || got[0].EndTime != "11:00" {
		t.Errorf("reservations = %+v, want 10:00-11:00", got)
	}
}

func TestBookCmdPromptsAcrossMidnight(t *testing.T) {
	ctx, _ := setupTestDB(t)
	scriptChoices(t, "23:00", "01:00 (next-day)")

	if err := (&BookCmd{Date: "2024-08-06"}).Run(ctx); err != nil {
		t.Fatalf("book failed: %v", err)
	}
	got, _ := ctx.Store.GetReservations("2024-08-06", "2024-08-07")
	if len(got) != 2 {
		t.Fatalf("reservations = %+v, want two pieces", got)
	}
	if got[0].Date != "2024-08-06" || got[0].StartTime != "23:00" || got[0].EndTime != "00:00" {
		t.Errorf("first piece = %+v", got[0])
	}
	if got[1].Date != "2024-08-07" || got[1].StartTime != "00:00" || got[1].EndTime != "01:00" {
		t.Errorf("second piece = %+v", got[1])
	}
}

func TestBookCmdCancelled(t *testing.T) {
	ctx, _ := setupTestDB(t)
	orig := cli.Choose
	t.Cleanup(func() { cli.Choose = orig })
	cli.Choose = func(string, []huh.Option[string]) (string, error) { return "", cli.ErrCancelled }

	if err := (&BookCmd{Date: "2024-08-06"}).Run(ctx); err != cli.ErrCancelled {
		t.Errorf("book error = %v, want ErrCancelled", err)
	}
	all, _ := ctx.Store.GetAllReservations(true)
	if len(all) != 0 {
		t.Errorf("cancelled booking saved %d reservations", len(all))
	}
}
