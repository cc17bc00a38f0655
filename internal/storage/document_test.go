package storage

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/timeslot/internal/models"
)

var importNow = time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)

func TestExportImportRoundTrip(t *testing.T) {
	src := setupFileStore(t)
	kept := NewReservation("2024-08-05", "10:00", "11:00", "standup", importNow)
	gone := NewReservation("2024-08-05", "12:00", "13:00", "", importNow)
	for _, r := range []models.Reservation{kept, gone} {
		if err := src.AddReservation(r); err != nil {
			t.Fatal(err)
		}
	}
	if err := src.DeleteReservation(gone.ID); err != nil {
		t.Fatal(err)
	}
	settings, _ := src.GetSettings()
	settings.GranularityMin = 15
	if err := src.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	n, err := Export(&buf, src, importNow)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Export() = %d reservations, want 1", n)
	}
	if !strings.Contains(buf.String(), "2024-08-01T12:00:00Z") {
		t.Errorf("Export() document missing timestamp:\n%s", buf.String())
	}

	dst := setupFileStore(t)
	result, err := Import(bytes.NewReader(buf.Bytes()), dst, importNow, true)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.Added != 1 || result.Skipped != 0 {
		t.Errorf("Import() = %+v, want 1 added", result)
	}
	got, err := dst.GetReservation(kept.ID)
	if err != nil || got.Note != "standup" || got.CreatedAt != kept.CreatedAt {
		t.Errorf("GetReservation() = %+v, %v", got, err)
	}
	if s, _ := dst.GetSettings(); s.GranularityMin != 15 {
		t.Errorf("GranularityMin = %d, want 15 after import", s.GranularityMin)
	}

	// a second import finds every id already present
	again, err := Import(bytes.NewReader(buf.Bytes()), dst, importNow, false)
	if err != nil {
		t.Fatalf("second Import() error = %v", err)
	}
	if again.Added != 0 || again.Skipped != 1 {
		t.Errorf("second Import() = %+v, want 1 skipped", again)
	}
}

func TestImportRejectsConflicts(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "overlaps existing",
			doc: `reservations:
  - date: "2024-08-05"
    start_time: "10:30"
    end_time: "11:30"
`,
		},
		{
			name: "overlaps within document",
			doc: `reservations:
  - date: "2024-08-06"
    start_time: "09:00"
    end_time: "10:00"
  - date: "2024-08-06"
    start_time: "09:30"
    end_time: "10:30"
`,
		},
		{
			name: "malformed time",
			doc: `reservations:
  - date: "2024-08-06"
    start_time: "9am"
    end_time: "10:00"
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupFileStore(t)
			if err := store.AddReservation(NewReservation("2024-08-05", "10:00", "11:00", "", importNow)); err != nil {
				t.Fatal(err)
			}
			if _, err := Import(strings.NewReader(tt.doc), store, importNow, false); err == nil {
				t.Fatal("Import() error = nil, want conflict")
			}
			all, _ := store.GetAllReservations(true)
			if len(all) != 1 {
				t.Errorf("store has %d reservations after rejected import, want 1", len(all))
			}
		})
	}
}

func TestImportGeneratesIDs(t *testing.T) {
	store := setupFileStore(t)
	doc := `version: 1
reservations:
  - date: "2024-08-05"
    start_time: "23:00"
    end_time: "00:00"
    note: late
`
	result, err := Import(strings.NewReader(doc), store, importNow, false)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.Added != 1 {
		t.Fatalf("Import() = %+v, want 1 added", result)
	}
	all, _ := store.GetAllReservations(false)
	if all[0].ID == "" || all[0].CreatedAt != "2024-08-01T12:00:00Z" {
		t.Errorf("imported reservation = %+v, want generated id and creation time", all[0])
	}
}

func TestDecodeDocumentEmpty(t *testing.T) {
	doc, err := DecodeDocument(strings.NewReader(""))
	if err != nil {
		t.Fatalf("DecodeDocument() error = %v", err)
	}
	if doc.Version != DocumentVersion || len(doc.Reservations) != 0 {
		t.Errorf("DecodeDocument() = %+v", doc)
	}
}

func TestResolveIDEmpty(t *testing.T) {
	store := setupFileStore(t)
	if _, err := ResolveID(store, ""); err == nil {
		t.Error("ResolveID(\"\") error = nil")
	}
}
