package sqlcommon

import (
	"testing"

	"github.com/julianstephens/timeslot/internal/migration"
)

func TestRebind(t *testing.T) {
	query := "UPDATE reservations SET deleted_at = ? WHERE id = ?"

	sqlite := Queries{Dialect: migration.SQLite}
	if got := sqlite.rebind(query); got != query {
		t.Errorf("sqlite rebind() = %q, want unchanged", got)
	}

	pg := Queries{Dialect: migration.Postgres}
	want := "UPDATE reservations SET deleted_at = $1 WHERE id = $2"
	if got := pg.rebind(query); got != want {
		t.Errorf("postgres rebind() = %q, want %q", got, want)
	}
}

func TestRunnerFindsEmbeddedMigrations(t *testing.T) {
	for _, d := range []migration.Dialect{migration.SQLite, migration.Postgres} {
		q := Queries{Dialect: d}
		runner, err := q.Runner()
		if err != nil {
			t.Fatalf("Runner(%s) error = %v", d, err)
		}
		all, err := runner.Migrations()
		if err != nil {
			t.Fatalf("Migrations(%s) error = %v", d, err)
		}
		if len(all) == 0 || all[0].Version != 1 {
			t.Errorf("Migrations(%s) = %+v, want to start at version 1", d, all)
		}
	}
}
