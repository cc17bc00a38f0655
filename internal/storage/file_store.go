package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/julianstephens/timeslot/internal/migration"
	"github.com/julianstephens/timeslot/internal/models"
)

// FileStore keeps settings and reservations in a single YAML document.
// It suits small, hand-editable setups; the SQL stores are the default.
type FileStore struct {
	path string
	doc  *Document
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}
	settings := models.DefaultSettings()
	s.doc = &Document{Version: DocumentVersion, Settings: &settings, Reservations: []models.Reservation{}}
	return s.save()
}

func (s *FileStore) Load() error {
	if s.doc != nil {
		return nil
	}
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w at %s", ErrNotInitialized, s.path)
		}
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer f.Close()

	doc, err := DecodeDocument(f)
	if err != nil {
		return err
	}
	if doc.Settings == nil {
		settings := models.DefaultSettings()
		doc.Settings = &settings
	}
	s.doc = &doc
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

// save replaces the file through a temporary sibling so a crash never
// leaves a half-written document.
func (s *FileStore) save() error {
	var buf bytes.Buffer
	if err := EncodeDocument(&buf, *s.doc); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *FileStore) loaded() error {
	if s.doc == nil {
		return fmt.Errorf("%w: call Load first", ErrNotInitialized)
	}
	return nil
}

func (s *FileStore) GetSettings() (models.Settings, error) {
	if err := s.loaded(); err != nil {
		return models.Settings{}, err
	}
	return *s.doc.Settings, nil
}

func (s *FileStore) SaveSettings(settings models.Settings) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Settings = &settings
	return s.save()
}

func (s *FileStore) index(id string) int {
	for i, r := range s.doc.Reservations {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (s *FileStore) AddReservation(r models.Reservation) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if s.index(r.ID) >= 0 {
		return fmt.Errorf("reservation with id %s already exists", r.ID)
	}
	s.doc.Reservations = append(s.doc.Reservations, r)
	return s.save()
}

func (s *FileStore) GetReservation(id string) (models.Reservation, error) {
	if err := s.loaded(); err != nil {
		return models.Reservation{}, err
	}
	i := s.index(id)
	if i < 0 || s.doc.Reservations[i].DeletedAt != nil {
		return models.Reservation{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.doc.Reservations[i], nil
}

func (s *FileStore) GetReservations(from, to string) ([]models.Reservation, error) {
	all, err := s.GetAllReservations(false)
	if err != nil {
		return nil, err
	}
	var out []models.Reservation
	for _, r := range all {
		if r.Date >= from && r.Date <= to {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *FileStore) GetAllReservations(includeDeleted bool) ([]models.Reservation, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	var out []models.Reservation
	for _, r := range s.doc.Reservations {
		if r.DeletedAt != nil && !includeDeleted {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (s *FileStore) DeleteReservation(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if s.doc.Reservations[i].DeletedAt != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyDeleted, id)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	s.doc.Reservations[i].DeletedAt = &now
	return s.save()
}

func (s *FileStore) RestoreReservation(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if s.doc.Reservations[i].DeletedAt == nil {
		return fmt.Errorf("%w: %s", ErrNotDeleted, id)
	}
	s.doc.Reservations[i].DeletedAt = nil
	return s.save()
}

// SchemaStatus reports the document version; YAML documents have no SQL migrations.
func (s *FileStore) SchemaStatus() (migration.Status, error) {
	if err := s.loaded(); err != nil {
		return migration.Status{}, err
	}
	return migration.Status{Current: s.doc.Version, Latest: DocumentVersion}, nil
}

func (s *FileStore) Migrate(progress func(string)) (int, error) {
	if progress != nil {
		progress(fmt.Sprintf("YAML document is at version %d, nothing to migrate", DocumentVersion))
	}
	return 0, nil
}

func (s *FileStore) GetConfigPath() string {
	return s.path
}

var _ Provider = (*FileStore)(nil)
