package day

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/timeslot/internal/cli"
	"github.com/julianstephens/timeslot/internal/models"
)

var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	freeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	reservedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	pastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model shows the annotated slot grid of one day.
type Model struct {
	viewport viewport.Model
	Date     string
	Slots    []models.TimeSlot
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Date == "" {
		return "No day loaded."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetDay(date string, slots []models.TimeSlot) {
	m.Date = date
	m.Slots = slots
	m.Render()
	m.viewport.GotoTop()
}

// Free counts the slots that are neither reserved nor past.
func (m Model) Free() int {
	n := 0
	for _, s := range m.Slots {
		if !s.IsOverlap && !s.IsPast {
			n++
		}
	}
	return n
}

func (m *Model) Render() {
	if m.Date == "" {
		m.viewport.SetContent("No day loaded.")
		return
	}

	var b strings.Builder
	for _, s := range m.Slots {
		style := freeStyle
		switch {
		case s.IsOverlap:
			style = reservedStyle
		case s.IsPast:
			style = pastStyle
		}
		status := cli.SlotStatus(s)
		if s.Truncated {
			status += " (short)"
		}
		fmt.Fprintf(&b, "%s %s\n", timeStyle.Render(s.Start+" - "+s.End), style.Render(status))
	}
	m.viewport.SetContent(b.String())
}
