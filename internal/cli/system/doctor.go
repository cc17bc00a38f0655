package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/timeslot/internal/cli"
	"github.com/julianstephens/timeslot/internal/keyring"
	"github.com/julianstephens/timeslot/internal/storage/postgres"
	"github.com/julianstephens/timeslot/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	run  func(*cli.Context) (warning string, err error)
	// needsStore checks are skipped when storage cannot be loaded
	needsStore bool
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	checks := []check{
		{name: "Storage reachable", run: checkStoreReachable},
		{name: "Schema version", run: checkSchemaVersion, needsStore: true},
		{name: "Settings", run: checkSettings, needsStore: true},
		{name: "Reservations", run: checkReservations, needsStore: true},
		{name: "OS keyring", run: checkKeyring},
		{name: "Clock", run: checkClock},
	}

	hasError := false
	reachable := true
	for _, c := range checks {
		if c.needsStore && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		warning, err := c.run(ctx)
		switch {
		case err != nil:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Storage reachable" {
				reachable = false
			}
		case warning != "":
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %s\n", warning)
		default:
			ctx.Printf("✓ %s: OK\n", c.name)
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) (string, error) {
	if err := ctx.Store.Load(); err != nil {
		return "", fmt.Errorf("failed to load storage: %w", err)
	}
	return "", nil
}

func checkSchemaVersion(ctx *cli.Context) (string, error) {
	st, err := ctx.Store.SchemaStatus()
	if err != nil {
		return "", err
	}
	if len(st.Pending) > 0 {
		return "", fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'timeslot migrate')", st.Current, st.Latest)
	}
	return "", nil
}

func checkSettings(ctx *cli.Context) (string, error) {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	result := validation.New().ValidateSettings(settings)
	if err := result.Err(); err != nil {
		return "", err
	}
	if result.HasConflicts() {
		return result.Conflicts[0].Description, nil
	}
	return "", nil
}

func checkReservations(ctx *cli.Context) (string, error) {
	all, err := ctx.Store.GetAllReservations(false)
	if err != nil {
		return "", fmt.Errorf("failed to get reservations: %w", err)
	}
	result := validation.New().ValidateReservations(all)
	if result.HasErrors() {
		return "", fmt.Errorf("%d problem(s) found:\n%s", len(result.Conflicts), result.FormatReport())
	}
	return "", nil
}

// checkKeyring only matters for PostgreSQL storage and never fails.
func checkKeyring(ctx *cli.Context) (string, error) {
	if _, ok := ctx.Store.(*postgres.Store); !ok {
		return "", nil
	}
	if !keyring.IsAvailable() {
		return "keyring unavailable; use TIMESLOT_DB_CONNECTION or .pgpass for credentials", nil
	}
	return "", nil
}

func checkClock(ctx *cli.Context) (string, error) {
	now := ctx.Clock()
	if now.Year() < 2020 || now.Year() > 2100 {
		return "", fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return "", nil
}
