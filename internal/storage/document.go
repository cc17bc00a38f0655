package storage

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/timeslot/internal/models"
	"github.com/julianstephens/timeslot/internal/validation"
)

// DocumentVersion is the current layout of YAML documents.
const DocumentVersion = 1

// Document is the YAML layout shared by the file store and import/export.
type Document struct {
	Version      int                  `yaml:"version"`
	ExportedAt   string               `yaml:"exported_at,omitempty"`
	Settings     *models.Settings     `yaml:"settings,omitempty"`
	Reservations []models.Reservation `yaml:"reservations"`
}

// DecodeDocument reads a YAML document, rejecting unknown fields.
func DecodeDocument(r io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return Document{Version: DocumentVersion}, nil
		}
		return Document{}, fmt.Errorf("failed to parse document: %w", err)
	}
	if doc.Version == 0 {
		doc.Version = DocumentVersion
	}
	if doc.Version > DocumentVersion {
		return Document{}, fmt.Errorf("document version %d is newer than supported version %d", doc.Version, DocumentVersion)
	}
	return doc, nil
}

// EncodeDocument writes doc as YAML with two-space indentation.
func EncodeDocument(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return enc.Close()
}

// Export writes the settings and active reservations of p to w.
func Export(w io.Writer, p Provider, now time.Time) (int, error) {
	settings, err := p.GetSettings()
	if err != nil {
		return 0, fmt.Errorf("failed to read settings: %w", err)
	}
	reservations, err := p.GetAllReservations(false)
	if err != nil {
		return 0, fmt.Errorf("failed to read reservations: %w", err)
	}
	doc := Document{
		Version:      DocumentVersion,
		ExportedAt:   now.UTC().Format(time.RFC3339),
		Settings:     &settings,
		Reservations: reservations,
	}
	return len(reservations), EncodeDocument(w, doc)
}

// ImportResult counts what Import did.
type ImportResult struct {
	Added   int
	Skipped int
}

// Import adds the reservations of a YAML document to p. Reservations whose
// ID already exists are skipped. Nothing is written if any new reservation
// is malformed or overlaps another. Settings in the document are applied
// only when applySettings is set.
func Import(r io.Reader, p Provider, now time.Time, applySettings bool) (ImportResult, error) {
	doc, err := DecodeDocument(r)
	if err != nil {
		return ImportResult{}, err
	}
	existing, err := p.GetAllReservations(true)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read reservations: %w", err)
	}
	known := make(map[string]bool, len(existing))
	active := make([]models.Reservation, 0, len(existing))
	for _, e := range existing {
		known[e.ID] = true
		if e.DeletedAt == nil {
			active = append(active, e)
		}
	}

	var result ImportResult
	var pending []models.Reservation
	v := validation.New()
	for _, in := range doc.Reservations {
		if in.ID != "" && known[in.ID] {
			result.Skipped++
			continue
		}
		if in.DeletedAt != nil {
			result.Skipped++
			continue
		}
		res := NewReservation(in.Date, in.StartTime, in.EndTime, in.Note, now)
		if in.ID != "" {
			res.ID = in.ID
		}
		if in.CreatedAt != "" {
			res.CreatedAt = in.CreatedAt
		}
		check := v.ValidateNewReservation(res, active)
		if err := check.Err(); err != nil {
			return ImportResult{}, fmt.Errorf("reservation %s %s-%s: %w", in.Date, in.StartTime, in.EndTime, err)
		}
		known[res.ID] = true
		active = append(active, res)
		pending = append(pending, res)
	}

	if applySettings && doc.Settings != nil {
		settings := *doc.Settings
		models.ApplyDefaultSettings(&settings)
		check := v.ValidateSettings(settings)
		if err := check.Err(); err != nil {
			return ImportResult{}, fmt.Errorf("invalid settings: %w", err)
		}
		if err := p.SaveSettings(settings); err != nil {
			return ImportResult{}, fmt.Errorf("failed to save settings: %w", err)
		}
	}
	for _, res := range pending {
		if err := p.AddReservation(res); err != nil {
			return result, fmt.Errorf("failed to add reservation %s: %w", res.ID, err)
		}
		result.Added++
	}
	return result, nil
}
