// Package sqlcommon holds the SQL shared by the sqlite and postgres stores.
// Queries are written with ? placeholders and rebound per dialect.
package sqlcommon

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/timeslot/internal/migration"
	"github.com/julianstephens/timeslot/internal/models"
	"github.com/julianstephens/timeslot/internal/storage"
	"github.com/julianstephens/timeslot/migrations"
)

type Queries struct {
	DB      *sql.DB
	Dialect migration.Dialect
}

func (q *Queries) rebind(query string) string {
	if q.Dialect != migration.Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Runner returns a migration runner over the embedded files of the dialect.
func (q *Queries) Runner() (*migration.Runner, error) {
	sub, err := fs.Sub(migrations.FS, q.Dialect.String())
	if err != nil {
		return nil, fmt.Errorf("failed to access %s migrations: %w", q.Dialect, err)
	}
	return migration.NewRunner(q.DB, sub, q.Dialect), nil
}

func (q *Queries) SchemaStatus() (migration.Status, error) {
	runner, err := q.Runner()
	if err != nil {
		return migration.Status{}, err
	}
	return runner.Status()
}

func (q *Queries) Migrate(progress func(string)) (int, error) {
	runner, err := q.Runner()
	if err != nil {
		return 0, err
	}
	return runner.Apply(progress)
}

func (q *Queries) GetSettings() (models.Settings, error) {
	rows, err := q.DB.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}
	if len(values) == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}
	return models.MapToSettings(values)
}

func (q *Queries) SaveSettings(settings models.Settings) error {
	tx, err := q.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(q.rebind(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, value := range models.SettingsToMap(settings) {
		if _, err := stmt.Exec(key, value); err != nil {
			return fmt.Errorf("saving %s: %w", key, err)
		}
	}
	return tx.Commit()
}

const reservationColumns = "id, date, start_time, end_time, note, created_at, deleted_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanReservation(row scanner) (models.Reservation, error) {
	var r models.Reservation
	var deletedAt sql.NullString
	if err := row.Scan(&r.ID, &r.Date, &r.StartTime, &r.EndTime, &r.Note, &r.CreatedAt, &deletedAt); err != nil {
		return models.Reservation{}, err
	}
	if deletedAt.Valid {
		r.DeletedAt = &deletedAt.String
	}
	return r, nil
}

func (q *Queries) queryReservations(query string, args ...any) ([]models.Reservation, error) {
	rows, err := q.DB.Query(q.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (q *Queries) AddReservation(r models.Reservation) error {
	if r.CreatedAt == "" {
		r.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := q.DB.Exec(q.rebind(`INSERT INTO reservations (`+reservationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		r.ID, r.Date, r.StartTime, r.EndTime, r.Note, r.CreatedAt, r.DeletedAt)
	if err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	return nil
}

func (q *Queries) GetReservation(id string) (models.Reservation, error) {
	row := q.DB.QueryRow(q.rebind("SELECT "+reservationColumns+" FROM reservations WHERE id = ? AND deleted_at IS NULL"), id)
	r, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Reservation{}, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	return r, err
}

func (q *Queries) GetReservations(from, to string) ([]models.Reservation, error) {
	return q.queryReservations("SELECT "+reservationColumns+` FROM reservations
		WHERE deleted_at IS NULL AND date >= ? AND date <= ?
		ORDER BY date, start_time`, from, to)
}

func (q *Queries) GetAllReservations(includeDeleted bool) ([]models.Reservation, error) {
	query := "SELECT " + reservationColumns + " FROM reservations"
	if !includeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	return q.queryReservations(query + " ORDER BY date, start_time")
}

func (q *Queries) deletedAt(id string) (sql.NullString, error) {
	var deletedAt sql.NullString
	err := q.DB.QueryRow(q.rebind("SELECT deleted_at FROM reservations WHERE id = ?"), id).Scan(&deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return deletedAt, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return deletedAt, fmt.Errorf("failed to check reservation existence: %w", err)
	}
	return deletedAt, nil
}

// DeleteReservation soft-deletes by stamping deleted_at.
func (q *Queries) DeleteReservation(id string) error {
	deletedAt, err := q.deletedAt(id)
	if err != nil {
		return err
	}
	if deletedAt.Valid {
		return fmt.Errorf("%w: %s", storage.ErrAlreadyDeleted, id)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = q.DB.Exec(q.rebind("UPDATE reservations SET deleted_at = ? WHERE id = ?"), now, id)
	return err
}

func (q *Queries) RestoreReservation(id string) error {
	deletedAt, err := q.deletedAt(id)
	if err != nil {
		return err
	}
	if !deletedAt.Valid {
		return fmt.Errorf("%w: %s", storage.ErrNotDeleted, id)
	}
	_, err = q.DB.Exec(q.rebind("UPDATE reservations SET deleted_at = NULL WHERE id = ?"), id)
	return err
}
