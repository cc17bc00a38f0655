package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/timeslot/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(14)

	freeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	reservedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	pastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// SlotStatus is the one-word state shown for a slot.
func SlotStatus(s models.TimeSlot) string {
	switch {
	case s.IsOverlap && s.IsPast:
		return "reserved, past"
	case s.IsOverlap:
		return "reserved"
	case s.IsPast:
		return "past"
	default:
		return "free"
	}
}

func statusStyle(s models.TimeSlot) lipgloss.Style {
	switch {
	case s.IsOverlap:
		return reservedStyle
	case s.IsPast:
		return pastStyle
	default:
		return freeStyle
	}
}

// RenderSlots writes the annotated slot grid of one day.
func RenderSlots(w io.Writer, date string, slots []models.TimeSlot) {
	fmt.Fprintln(w, headerStyle.Render("Slots for "+date))
	free := 0
	for _, s := range slots {
		if !s.IsOverlap && !s.IsPast {
			free++
		}
		status := SlotStatus(s)
		if s.Truncated {
			status += " (short)"
		}
		fmt.Fprintf(w, "%s %s\n", timeStyle.Render(s.Start+" - "+s.End), statusStyle(s).Render(status))
	}
	fmt.Fprintf(w, "\n%d of %d slots free\n", free, len(slots))
}

// RenderStarts writes a start option list.
func RenderStarts(w io.Writer, date string, starts []models.StartTimeOption) {
	fmt.Fprintln(w, headerStyle.Render("Start times for "+date))
	if len(starts) == 0 {
		fmt.Fprintln(w, pastStyle.Render("No start times available."))
		return
	}
	for _, o := range starts {
		label := o.Label
		if o.IsNow {
			label = freeStyle.Render(label)
		}
		fmt.Fprintf(w, "%s %s\n", timeStyle.Render(label), noteStyle.Render(o.FullString))
	}
}

// RenderEnds writes an end option list.
func RenderEnds(w io.Writer, date, start string, ends []models.EndTimeOption) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("End times for %s from %s", date, start)))
	if len(ends) == 0 {
		fmt.Fprintln(w, pastStyle.Render("No end times available."))
		return
	}
	for _, o := range ends {
		line := timeStyle.Render(o.Label)
		if o.NextDay {
			line += " " + noteStyle.Render(o.Slot.Date)
		}
		fmt.Fprintln(w, line)
	}
}

// RenderReservations writes reservations grouped by date.
func RenderReservations(w io.Writer, reservations []models.Reservation, showIDs bool) {
	if len(reservations) == 0 {
		fmt.Fprintln(w, "No reservations.")
		return
	}
	current := ""
	for _, r := range reservations {
		if r.Date != current {
			if current != "" {
				fmt.Fprintln(w)
			}
			current = r.Date
			fmt.Fprintln(w, headerStyle.Render(r.Date))
		}
		var parts []string
		parts = append(parts, timeStyle.Render(r.StartTime+" - "+r.EndTime))
		if showIDs {
			parts = append(parts, noteStyle.Render(ShortID(r.ID)))
		}
		if r.Note != "" {
			parts = append(parts, r.Note)
		}
		if r.DeletedAt != nil {
			parts = append(parts, pastStyle.Render("(deleted)"))
		}
		fmt.Fprintln(w, strings.Join(parts, " "))
	}
}
