package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDay:
		content = m.viewDay()
	case StateReservations:
		content = docStyle.Render(m.reservationList.View())
	case StateBookStart, StateBookEnd:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewStatus(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active >= tabCount {
		active = m.previousState
	}
	var tabs []string
	for i, title := range []string{"Day", "Reservations"} {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	switch {
	case m.status != "":
		return statusStyle.Render(m.status)
	case m.validationWarning != "":
		return warningStyle.Render(m.validationWarning)
	}
	return ""
}

func (m Model) viewDay() string {
	header := headerStyle.Render(fmt.Sprintf("%s  %d of %d slots free", m.date, m.dayModel.Free(), len(m.dayModel.Slots)))
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, m.dayModel.View()))
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Are you sure you want to delete this reservation?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
