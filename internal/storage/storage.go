package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/timeslot/internal/models"
)

var (
	ErrNotFound       = errors.New("reservation not found")
	ErrAlreadyDeleted = errors.New("reservation is already deleted")
	ErrNotDeleted     = errors.New("reservation is not deleted")
	ErrNotInitialized = errors.New("storage not initialized")
	ErrAmbiguousID    = errors.New("reservation id prefix is ambiguous")
)

// NewReservation stamps a reservation with a fresh ID and creation time.
func NewReservation(date, start, end, note string, now time.Time) models.Reservation {
	return models.Reservation{
		ID:        uuid.New().String(),
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Note:      note,
		CreatedAt: now.UTC().Format(time.RFC3339),
	}
}

// ResolveID expands an ID prefix to the single reservation it names,
// deleted reservations included.
func ResolveID(p Provider, prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}
	all, err := p.GetAllReservations(true)
	if err != nil {
		return "", err
	}
	var match string
	for _, r := range all {
		if r.ID == prefix {
			return r.ID, nil
		}
		if strings.HasPrefix(r.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
			}
			match = r.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, prefix)
	}
	return match, nil
}
