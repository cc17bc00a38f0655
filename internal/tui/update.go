package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timeslot/internal/tui/components/reservations"
	"github.com/julianstephens/timeslot/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateBookStart, StateBookEnd:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// tabs, status line and help take four rows
		m.dayModel.SetSize(msg.Width, msg.Height-5)
		m.reservationList.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case reservations.DeleteReservationMsg:
		m.reservationToDelID = msg.ID
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil

	case reservations.RestoreReservationMsg:
		m.setResult("Reservation restored", m.restore(msg.ID))
		return m, nil

	case tea.KeyMsg:
		if m.state == StateReservations && m.reservationList.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Book):
			return m.startBooking()
		}
		if m.state == StateDay {
			switch {
			case key.Matches(msg, m.keys.PrevDay):
				return m.shiftDate(-1), nil
			case key.Matches(msg, m.keys.NextDay):
				return m.shiftDate(1), nil
			case key.Matches(msg, m.keys.Today):
				date, err := m.ctx.Today("")
				if err == nil {
					m.date = date
					m.setResult("", m.refresh())
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateDay:
		m.dayModel, cmd = m.dayModel.Update(msg)
	case StateReservations:
		m.reservationList, cmd = m.reservationList.Update(msg)
	}
	return m, cmd
}

func (m Model) shiftDate(days int) Model {
	d, err := utils.ParseDate(m.date)
	if err != nil {
		return m
	}
	m.date = utils.FormatDate(d.AddDate(0, 0, days))
	m.setResult("", m.refresh())
	return m
}

// setResult shows err when set, otherwise msg.
func (m *Model) setResult(msg string, err error) {
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	m.status = msg
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.state == StateBookStart {
			return m.chooseEnd()
		}
		err := m.book()
		m.state = m.previousState
		m.setResult("Booked "+m.bookForm.Start+" to "+m.bookForm.End, err)
		return m, nil
	case huh.StateAborted:
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			m.setResult("Reservation deleted", m.delete(m.reservationToDelID))
			m.reservationToDelID = ""
			m.state = m.previousState
		case "n", "N", "esc":
			m.reservationToDelID = ""
			m.state = m.previousState
		}
	}
	return m, nil
}
