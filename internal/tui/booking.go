package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timeslot/internal/models"
	"github.com/julianstephens/timeslot/internal/validation"
)

// startBooking opens the start time form for the selected date.
func (m Model) startBooking() (tea.Model, tea.Cmd) {
	r, err := m.ctx.Resolver()
	if err != nil {
		m.setResult("", err)
		return m, nil
	}
	around, err := m.ctx.ReservationsAround(m.date)
	if err != nil {
		m.setResult("", err)
		return m, nil
	}
	d, err := r.Day(m.date, around)
	if err != nil {
		m.setResult("", err)
		return m, nil
	}
	if len(d.Starts) == 0 {
		m.status = "No start times available on " + m.date
		return m, nil
	}

	options := make([]huh.Option[string], len(d.Starts))
	for i, o := range d.Starts {
		options[i] = huh.NewOption(o.Label, o.Value.String())
	}
	m.bookForm = &BookFormModel{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Start time on " + m.date).
				Options(options...).
				Value(&m.bookForm.Start),
		),
	)
	m.previousState = m.state
	m.state = StateBookStart
	return m, m.form.Init()
}

// chooseEnd replaces the finished start form with the end time form.
func (m Model) chooseEnd() (tea.Model, tea.Cmd) {
	ends, err := m.ends()
	if err != nil {
		m.state = m.previousState
		m.setResult("", err)
		return m, nil
	}
	if len(ends) == 0 {
		m.state = m.previousState
		m.status = fmt.Sprintf("No end times available from %s", m.bookForm.Start)
		return m, nil
	}

	options := make([]huh.Option[string], len(ends))
	for i, o := range ends {
		options[i] = huh.NewOption(o.Label, o.Label)
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("End time").
				Options(options...).
				Value(&m.bookForm.End),
			huh.NewInput().
				Title("Note").
				Value(&m.bookForm.Note),
		),
	)
	m.state = StateBookEnd
	return m, m.form.Init()
}

func (m *Model) ends() ([]models.EndTimeOption, error) {
	r, err := m.ctx.Resolver()
	if err != nil {
		return nil, err
	}
	around, err := m.ctx.ReservationsAround(m.date)
	if err != nil {
		return nil, err
	}
	return r.Ends(m.date, models.ParseStartChoice(m.bookForm.Start), around)
}

// book stores the reservation described by the booking form.
func (m *Model) book() error {
	r, err := m.ctx.Resolver()
	if err != nil {
		return err
	}
	around, err := m.ctx.ReservationsAround(m.date)
	if err != nil {
		return err
	}
	start := models.ParseStartChoice(m.bookForm.Start)
	b, ok, err := r.Book(m.date, start, m.bookForm.End, around)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s is not an available end time for start %s", m.bookForm.End, start)
	}
	if _, err := m.ctx.SaveBooking(b, m.bookForm.Note, around); err != nil {
		return err
	}
	return m.refresh()
}

func (m *Model) delete(id string) error {
	if err := m.ctx.Store.DeleteReservation(id); err != nil {
		return err
	}
	return m.refresh()
}

// restore brings back a deleted reservation unless it now overlaps another.
func (m *Model) restore(id string) error {
	r, err := m.ctx.Store.GetReservation(id)
	if err != nil {
		return err
	}
	around, err := m.ctx.ReservationsAround(r.Date)
	if err != nil {
		return err
	}
	result := validation.New().ValidateNewReservation(r, around)
	if err := result.Err(); err != nil {
		return fmt.Errorf("cannot restore: %w", err)
	}
	if err := m.ctx.Store.RestoreReservation(id); err != nil {
		return err
	}
	return m.refresh()
}
