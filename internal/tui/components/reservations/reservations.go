package reservations

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/timeslot/internal/models"
)

type DeleteReservationMsg struct {
	ID string
}

type RestoreReservationMsg struct {
	ID string
}

type Item struct {
	Reservation models.Reservation
}

func (i Item) Title() string {
	r := i.Reservation
	title := fmt.Sprintf("%s %s-%s", r.Date, r.StartTime, r.EndTime)
	if r.DeletedAt != nil {
		return title + " (deleted)"
	}
	return title
}

func (i Item) Description() string {
	desc := i.Reservation.Note
	if desc == "" {
		desc = "no note"
	}
	if i.Reservation.DeletedAt != nil {
		desc += " | can restore with 'r'"
	}
	return desc
}

func (i Item) FilterValue() string {
	return i.Reservation.Date + " " + i.Reservation.Note
}

type KeyMap struct {
	Delete  key.Binding
	Restore key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(reservations []models.Reservation, width, height int) Model {
	l := list.New(items(reservations), list.NewDefaultDelegate(), width, height)
	l.Title = "Reservations"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Delete, keys.Restore}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Delete, keys.Restore}
	}

	return Model{list: l, keys: keys}
}

func items(reservations []models.Reservation) []list.Item {
	out := make([]list.Item, len(reservations))
	for i, r := range reservations {
		out[i] = Item{Reservation: r}
	}
	return out
}

func (m *Model) SetReservations(reservations []models.Reservation) {
	m.list.SetItems(items(reservations))
}

// Filtering reports whether the list filter is taking keystrokes.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok && i.Reservation.DeletedAt == nil {
				return m, func() tea.Msg { return DeleteReservationMsg{ID: i.Reservation.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Restore):
			if i, ok := m.list.SelectedItem().(Item); ok && i.Reservation.DeletedAt != nil {
				return m, func() tea.Msg { return RestoreReservationMsg{ID: i.Reservation.ID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No reservations yet.\n  Press 'a' to book one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
