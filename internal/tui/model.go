package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timeslot/internal/cli"
	"github.com/julianstephens/timeslot/internal/storage"
	"github.com/julianstephens/timeslot/internal/tui/components/day"
	"github.com/julianstephens/timeslot/internal/tui/components/reservations"
	"github.com/julianstephens/timeslot/internal/validation"
)

type SessionState int

const (
	StateDay SessionState = iota
	StateReservations
	StateBookStart
	StateBookEnd
	StateConfirmDelete
)

// tabCount is the number of states reachable with tab.
const tabCount = 2

type BookFormModel struct {
	Start string
	End   string
	Note  string
}

type Model struct {
	ctx                *cli.Context
	state              SessionState
	previousState      SessionState
	keys               KeyMap
	help               help.Model
	dayModel           day.Model
	reservationList    reservations.Model
	form               *huh.Form
	bookForm           *BookFormModel
	date               string
	reservationToDelID string
	status             string // result of the last action
	validationWarning  string
	quitting           bool
	width              int
	height             int
}

// NewModel opens the day view on today's date according to now.
func NewModel(store storage.Provider, now func() time.Time) (Model, error) {
	ctx := &cli.Context{Store: store, Now: now, Out: io.Discard}
	date, err := ctx.Today("")
	if err != nil {
		return Model{}, err
	}

	m := Model{
		ctx:             ctx,
		state:           StateDay,
		keys:            DefaultKeyMap(),
		help:            help.New(),
		dayModel:        day.New(0, 0),
		reservationList: reservations.New(nil, 0, 0),
		date:            date,
	}
	if err := m.refresh(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.Book}
	switch m.state {
	case StateDay:
		keys = append(keys, m.keys.PrevDay, m.keys.NextDay)
	case StateReservations:
		keys = append(keys, m.keys.Delete, m.keys.Restore)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	actions := []key.Binding{m.keys.Book}
	switch m.state {
	case StateDay:
		navigation = append(navigation, m.keys.PrevDay, m.keys.NextDay, m.keys.Today)
	case StateReservations:
		actions = append(actions, m.keys.Delete, m.keys.Restore)
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads the day grid, the reservation list and the validation
// status from storage.
func (m *Model) refresh() error {
	r, err := m.ctx.Resolver()
	if err != nil {
		return err
	}
	around, err := m.ctx.ReservationsAround(m.date)
	if err != nil {
		return err
	}
	d, err := r.Day(m.date, around)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", m.date, err)
	}
	m.dayModel.SetDay(m.date, d.Slots)

	all, err := m.ctx.Store.GetAllReservations(true)
	if err != nil {
		return fmt.Errorf("failed to get reservations: %w", err)
	}
	m.reservationList.SetReservations(all)

	result := validation.New().ValidateReservations(all)
	if result.HasErrors() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
	return nil
}
