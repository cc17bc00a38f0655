package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/timeslot/internal/constants"
	"github.com/julianstephens/timeslot/internal/models"
	"github.com/julianstephens/timeslot/internal/slots"
	"github.com/julianstephens/timeslot/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOverlappingReservations ConflictType = "overlapping_reservations"
	ConflictInvalidDateTime         ConflictType = "invalid_datetime"
	ConflictInvalidRange            ConflictType = "invalid_range"
	ConflictDuplicateWeekday        ConflictType = "duplicate_weekday"
	ConflictInvalidSetting          ConflictType = "invalid_setting"
	ConflictUnevenGranularity       ConflictType = "uneven_granularity"
)

// Conflict is one problem found in reservations, selections or settings.
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	TimeRange   string   // HH:MM-HH:MM (if applicable)
	IDs         []string // reservation IDs involved
	// Warning conflicts are reported but do not block the operation.
	Warning bool
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts, warnings included
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors reports whether any conflict is not a warning.
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if !c.Warning {
			return true
		}
	}
	return false
}

// Err returns the blocking conflicts joined into one error, or nil.
func (vr *ValidationResult) Err() error {
	var msgs []string
	for _, c := range vr.Conflicts {
		if !c.Warning {
			msgs = append(msgs, c.Description)
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		prefix := "-"
		if c.Warning {
			prefix = "- warning:"
		}
		fmt.Fprintf(&b, "%s %s\n", prefix, c.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// Validator checks reservations, recurring selections and settings
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// checkRange reports malformed fields and ends that do not come after the
// start. "00:00" is always a valid end since it rolls over to midnight.
func checkRange(vr *ValidationResult, label, date, start, end string, ids []string) bool {
	ok := true
	if date != "" && !utils.ValidateDateFormat(date) {
		vr.add(Conflict{Type: ConflictInvalidDateTime, Description: fmt.Sprintf("%s has invalid date: %s", label, date), Date: date, IDs: ids})
		ok = false
	}
	if !utils.ValidateTimeFormat(start) {
		vr.add(Conflict{Type: ConflictInvalidDateTime, Description: fmt.Sprintf("%s has invalid start time: %s", label, start), Date: date, IDs: ids})
		ok = false
	}
	if !utils.ValidateTimeFormat(end) {
		vr.add(Conflict{Type: ConflictInvalidDateTime, Description: fmt.Sprintf("%s has invalid end time: %s", label, end), Date: date, IDs: ids})
		ok = false
	}
	if !ok {
		return false
	}
	if end == constants.Midnight {
		return true
	}
	s, _ := utils.ParseTimeToMinutes(start)
	e, _ := utils.ParseTimeToMinutes(end)
	if e <= s {
		vr.add(Conflict{
			Type:        ConflictInvalidRange,
			Description: fmt.Sprintf("%s ends (%s) before it starts (%s)", label, end, start),
			Date:        date,
			TimeRange:   fmt.Sprintf("%s-%s", start, end),
			IDs:         ids,
		})
		return false
	}
	return true
}

// ValidateReservations checks every active reservation for malformed
// times and reports each overlapping pair.
func (v *Validator) ValidateReservations(reservations []models.Reservation) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	type parsed struct {
		r  models.Reservation
		sp slots.Span
	}
	var valid []parsed
	for _, r := range reservations {
		if r.DeletedAt != nil {
			continue
		}
		label := fmt.Sprintf("Reservation %s", displayID(r))
		if !checkRange(&result, label, r.Date, r.StartTime, r.EndTime, []string{r.ID}) {
			continue
		}
		sp, err := slots.ParseSpan(slots.ReservationInterval(r))
		if err != nil {
			continue
		}
		valid = append(valid, parsed{r: r, sp: sp})
	}

	sort.Slice(valid, func(i, j int) bool { return valid[i].sp.Start.Before(valid[j].sp.Start) })

	// sorted by start, so the inner loop stops at the first later start
	for i := 0; i < len(valid); i++ {
		for j := i + 1; j < len(valid) && valid[j].sp.Start.Before(valid[i].sp.End); j++ {
			a, b := valid[i].r, valid[j].r
			result.add(Conflict{
				Type: ConflictOverlappingReservations,
				Description: fmt.Sprintf("%s: %s-%s overlaps %s %s-%s",
					a.Date, a.StartTime, a.EndTime, b.Date, b.StartTime, b.EndTime),
				Date:      a.Date,
				TimeRange: fmt.Sprintf("%s-%s", a.StartTime, a.EndTime),
				IDs:       []string{a.ID, b.ID},
			})
		}
	}
	return result
}

// ValidateNewReservation checks candidate on its own and against existing.
func (v *Validator) ValidateNewReservation(candidate models.Reservation, existing []models.Reservation) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	if !checkRange(&result, "Reservation", candidate.Date, candidate.StartTime, candidate.EndTime, nil) {
		return result
	}
	iv := slots.ReservationInterval(candidate)
	for _, r := range existing {
		if r.DeletedAt != nil || r.ID == candidate.ID {
			continue
		}
		hit, err := slots.Overlaps(iv, slots.ReservationInterval(r))
		if err != nil || !hit {
			continue
		}
		result.add(Conflict{
			Type:        ConflictOverlappingReservations,
			Description: fmt.Sprintf("%s %s-%s overlaps existing reservation %s (%s-%s)", candidate.Date, candidate.StartTime, candidate.EndTime, displayID(r), r.StartTime, r.EndTime),
			Date:        candidate.Date,
			TimeRange:   fmt.Sprintf("%s-%s", r.StartTime, r.EndTime),
			IDs:         []string{r.ID},
		})
	}
	return result
}

// ValidateSelections checks a weekly pattern: well-formed ranges and at
// most one selection per weekday.
func (v *Validator) ValidateSelections(selections []models.RecurringSelection) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	seen := make(map[time.Weekday]bool)
	for _, sel := range selections {
		checkRange(&result, fmt.Sprintf("Selection for %s", sel.Weekday), "", sel.StartTime, sel.EndTime, nil)
		if seen[sel.Weekday] {
			result.add(Conflict{
				Type:        ConflictDuplicateWeekday,
				Description: fmt.Sprintf("%s is selected more than once", sel.Weekday),
			})
		}
		seen[sel.Weekday] = true
	}
	return result
}

// MarkSelections returns selections with IsValid and Text filled in.
func (v *Validator) MarkSelections(selections []models.RecurringSelection) []models.RecurringSelection {
	marked := make([]models.RecurringSelection, len(selections))
	for i, sel := range selections {
		var vr ValidationResult
		sel.IsValid = checkRange(&vr, "", "", sel.StartTime, sel.EndTime, nil)
		sel.Text = fmt.Sprintf("%s %s-%s", sel.Weekday, sel.StartTime, sel.EndTime)
		marked[i] = sel
	}
	return marked
}

// ValidateSettings checks settings values. A granularity that does not
// divide the day is only a warning.
func (v *Validator) ValidateSettings(s models.Settings) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	if err := slots.ValidateGranularity(s.GranularityMin); err != nil {
		result.add(Conflict{Type: ConflictInvalidSetting, Description: fmt.Sprintf("%s: %v", constants.SettingGranularityMin, err)})
	} else if !slots.DividesDay(s.GranularityMin) {
		result.add(Conflict{
			Type:        ConflictUnevenGranularity,
			Description: fmt.Sprintf("%s: %d minutes does not divide the day; the last slot is shortened", constants.SettingGranularityMin, s.GranularityMin),
			Warning:     true,
		})
	}
	if s.MinUsageHours < 0 {
		result.add(Conflict{Type: ConflictInvalidSetting, Description: fmt.Sprintf("%s must not be negative", constants.SettingMinUsageHours)})
	}
	if s.MaxUsageHours <= 0 {
		result.add(Conflict{Type: ConflictInvalidSetting, Description: fmt.Sprintf("%s must be positive", constants.SettingMaxUsageHours)})
	} else if s.MinUsageHours > s.MaxUsageHours {
		result.add(Conflict{
			Type:        ConflictInvalidSetting,
			Description: fmt.Sprintf("%s (%g) exceeds %s (%g)", constants.SettingMinUsageHours, s.MinUsageHours, constants.SettingMaxUsageHours, s.MaxUsageHours),
		})
	}
	if s.MaxUsageHours > 48 {
		result.add(Conflict{
			Type:        ConflictInvalidSetting,
			Description: fmt.Sprintf("%s (%g) is longer than a next-day spill can reach", constants.SettingMaxUsageHours, s.MaxUsageHours),
			Warning:     true,
		})
	}
	return result
}

func displayID(r models.Reservation) string {
	if len(r.ID) > 8 {
		return r.ID[:8]
	}
	if r.ID == "" {
		return fmt.Sprintf("%s %s-%s", r.Date, r.StartTime, r.EndTime)
	}
	return r.ID
}
