package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/timeslot/internal/models"
	"github.com/julianstephens/timeslot/internal/storage"
	"github.com/julianstephens/timeslot/internal/storage/sqlite"
	"github.com/julianstephens/timeslot/internal/tui/components/reservations"
)

var testNow = time.Date(2024, 8, 5, 10, 17, 0, 0, time.UTC)

func setupTestModel(t *testing.T) (Model, models.Reservation) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	existing := storage.NewReservation("2024-08-05", "14:00", "15:00", "standup", testNow)
	if err := store.AddReservation(existing); err != nil {
		t.Fatal(err)
	}

	m, err := NewModel(store, func() time.Time { return testNow })
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m, existing
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	m, _ := setupTestModel(t)

	if m.date != "2024-08-05" {
		t.Errorf("date = %s, want 2024-08-05", m.date)
	}
	if got := len(m.dayModel.Slots); got != 48 {
		t.Errorf("len(Slots) = %d, want 48", got)
	}
	reserved := 0
	for _, s := range m.dayModel.Slots {
		if s.IsOverlap {
			reserved++
		}
	}
	if reserved != 2 {
		t.Errorf("reserved slots = %d, want 2", reserved)
	}
	if m.validationWarning != "" {
		t.Errorf("validationWarning = %q, want empty", m.validationWarning)
	}
}

func TestDateNavigation(t *testing.T) {
	m, _ := setupTestModel(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.date != "2024-08-06" {
		t.Errorf("after right: date = %s, want 2024-08-06", m.date)
	}
	if m.dayModel.Free() != 48 {
		t.Errorf("free slots tomorrow = %d, want 48", m.dayModel.Free())
	}

	m = send(t, m, keyRunes("h"))
	m = send(t, m, keyRunes("h"))
	if m.date != "2024-08-04" {
		t.Errorf("after two lefts: date = %s, want 2024-08-04", m.date)
	}
	if m.dayModel.Free() != 0 {
		t.Errorf("free slots yesterday = %d, want 0", m.dayModel.Free())
	}

	m = send(t, m, keyRunes("t"))
	if m.date != "2024-08-05" {
		t.Errorf("after today: date = %s, want 2024-08-05", m.date)
	}
}

func TestTabSwitching(t *testing.T) {
	m, _ := setupTestModel(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateReservations {
		t.Fatalf("state = %v, want StateReservations", m.state)
	}
	// day keys do nothing on the reservation tab
	m = send(t, m, keyRunes("t"))
	if m.date != "2024-08-05" {
		t.Errorf("date = %s", m.date)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateDay {
		t.Errorf("state = %v, want StateDay", m.state)
	}
}

func TestBook(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantCount int
		wantErr   bool
	}{
		{"same day", "16:00", "17:00", 1, false},
		{"now", "now", "11:00", 1, false},
		{"across midnight", "23:00", "01:00 (next-day)", 2, false},
		{"ends at midnight", "23:00", "00:00 (next-day)", 1, false},
		{"overlaps existing", "13:30", "14:30", 0, true},
		{"start in the past", "09:00", "09:30", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := setupTestModel(t)
			m.bookForm = &BookFormModel{Start: tt.start, End: tt.end, Note: "focus"}

			err := m.book()
			if (err != nil) != tt.wantErr {
				t.Fatalf("book() error = %v, wantErr %v", err, tt.wantErr)
			}

			all, err := m.ctx.Store.GetAllReservations(false)
			if err != nil {
				t.Fatal(err)
			}
			if got := len(all) - 1; got != tt.wantCount {
				t.Errorf("new reservations = %d, want %d", got, tt.wantCount)
			}
		})
	}
}

func TestBookRefreshesDay(t *testing.T) {
	m, _ := setupTestModel(t)
	free := m.dayModel.Free()

	m.bookForm = &BookFormModel{Start: "16:00", End: "17:00"}
	if err := m.book(); err != nil {
		t.Fatal(err)
	}
	if got := m.dayModel.Free(); got != free-2 {
		t.Errorf("Free() = %d, want %d", got, free-2)
	}
}

func TestStartBookingOpensForm(t *testing.T) {
	m, _ := setupTestModel(t)

	m = send(t, m, keyRunes("a"))
	if m.state != StateBookStart {
		t.Fatalf("state = %v, want StateBookStart", m.state)
	}
	if m.form == nil || m.bookForm == nil {
		t.Fatal("booking form not created")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateDay {
		t.Errorf("state after esc = %v, want StateDay", m.state)
	}
}

func TestStartBookingInThePast(t *testing.T) {
	m, _ := setupTestModel(t)
	m = send(t, m, keyRunes("h"))

	m = send(t, m, keyRunes("a"))
	if m.state != StateDay {
		t.Errorf("state = %v, want StateDay", m.state)
	}
	if !strings.Contains(m.status, "No start times available on 2024-08-04") {
		t.Errorf("status = %q", m.status)
	}
}

func TestDeleteAndRestore(t *testing.T) {
	m, existing := setupTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m = send(t, m, reservations.DeleteReservationMsg{ID: existing.ID})
	if m.state != StateConfirmDelete {
		t.Fatalf("state = %v, want StateConfirmDelete", m.state)
	}
	if !strings.Contains(m.View(), "delete this reservation?") {
		t.Errorf("confirm view = %q", m.View())
	}

	m = send(t, m, keyRunes("n"))
	if m.state != StateReservations {
		t.Fatalf("state after no = %v", m.state)
	}
	if active, _ := m.ctx.Store.GetAllReservations(false); len(active) != 1 {
		t.Fatalf("reservation deleted after answering no")
	}

	m = send(t, m, reservations.DeleteReservationMsg{ID: existing.ID})
	m = send(t, m, keyRunes("y"))
	if active, _ := m.ctx.Store.GetAllReservations(false); len(active) != 0 {
		t.Fatalf("active reservations = %d, want 0", len(active))
	}
	if m.dayModel.Free() == 0 {
		t.Error("day grid not refreshed after delete")
	}

	m = send(t, m, reservations.RestoreReservationMsg{ID: existing.ID})
	if m.status != "Reservation restored" {
		t.Errorf("status = %q", m.status)
	}
	if active, _ := m.ctx.Store.GetAllReservations(false); len(active) != 1 {
		t.Errorf("active reservations after restore = %d, want 1", len(active))
	}
}

func TestRestoreRejectsOverlap(t *testing.T) {
	m, existing := setupTestModel(t)
	if err := m.delete(existing.ID); err != nil {
		t.Fatal(err)
	}
	m.bookForm = &BookFormModel{Start: "14:30", End: "15:30"}
	if err := m.book(); err != nil {
		t.Fatal(err)
	}

	m = send(t, m, reservations.RestoreReservationMsg{ID: existing.ID})
	if !strings.HasPrefix(m.status, "Error: cannot restore") {
		t.Errorf("status = %q", m.status)
	}
}

func TestQuit(t *testing.T) {
	m, _ := setupTestModel(t)

	next, cmd := m.Update(keyRunes("q"))
	m = next.(Model)
	if !m.quitting || cmd == nil {
		t.Errorf("quitting = %v, cmd = %v", m.quitting, cmd)
	}
	if m.View() != "" {
		t.Errorf("View() after quit = %q", m.View())
	}
}

func TestViewDay(t *testing.T) {
	m, _ := setupTestModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 60})

	view := m.View()
	for _, want := range []string{"Day", "Reservations", "2024-08-05", "14:00 - 14:30", "reserved"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
