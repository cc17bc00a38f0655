package storage

import (
	"github.com/julianstephens/timeslot/internal/migration"
	"github.com/julianstephens/timeslot/internal/models"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Reservations
	AddReservation(models.Reservation) error
	GetReservation(id string) (models.Reservation, error)
	// GetReservations returns active reservations dated from..to inclusive,
	// ordered by date and start time.
	GetReservations(from, to string) ([]models.Reservation, error)
	GetAllReservations(includeDeleted bool) ([]models.Reservation, error)
	DeleteReservation(id string) error
	RestoreReservation(id string) error

	// Schema
	SchemaStatus() (migration.Status, error)
	Migrate(progress func(string)) (int, error)

	// Utils
	GetConfigPath() string
}
