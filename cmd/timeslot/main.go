package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/timeslot/internal/cli"
	"github.com/julianstephens/timeslot/internal/cli/backups"
	"github.com/julianstephens/timeslot/internal/cli/booking"
	"github.com/julianstephens/timeslot/internal/cli/recur"
	"github.com/julianstephens/timeslot/internal/cli/reservations"
	"github.com/julianstephens/timeslot/internal/cli/settings"
	"github.com/julianstephens/timeslot/internal/cli/system"
	"github.com/julianstephens/timeslot/internal/constants"
	"github.com/julianstephens/timeslot/internal/errors"
	"github.com/julianstephens/timeslot/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database path (.db for SQLite, .yaml for a plain file) or PostgreSQL connection string without a password. Falls back to TIMESLOT_DB_CONNECTION, the OS keyring, then ~/.config/timeslot/timeslot.db." env:"TIMESLOT_CONFIG"`
	Debug   bool   `help:"Log debug output to stderr."`
	LogJSON bool   `help:"Write log lines as JSON." name:"log-json"`

	Init    system.InitCmd    `cmd:"" help:"Initialize timeslot storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`

	Slots  booking.SlotsCmd  `cmd:"" help:"Show the slot grid of a day."`
	Starts booking.StartsCmd `cmd:"" help:"List start times of a day."`
	Ends   booking.EndsCmd   `cmd:"" help:"List end times for a start."`
	Book   booking.BookCmd   `cmd:"" help:"Book a time range."`

	Reserve struct {
		Add     reservations.AddCmd     `cmd:"" help:"Add a reservation directly."`
		List    reservations.ListCmd    `cmd:"" help:"List reservations." default:"1"`
		Delete  reservations.DeleteCmd  `cmd:"" help:"Delete a reservation."`
		Restore reservations.RestoreCmd `cmd:"" help:"Restore a deleted reservation."`
		Import  reservations.ImportCmd  `cmd:"" help:"Import reservations from a YAML document."`
		Export  reservations.ExportCmd  `cmd:"" help:"Export reservations as a YAML document."`
	} `cmd:"" help:"Manage reservations."`

	Recur struct {
		Check recur.CheckCmd `cmd:"" help:"Check a weekly pattern for conflicts."`
		Book  recur.BookCmd  `cmd:"" help:"Book a weekly pattern."`
	} `cmd:"" help:"Book weekly recurring time ranges."`

	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage SQLite database backups."`

	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Delete the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show keyring availability."`
	} `cmd:"" help:"Manage the connection string in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Time slot availability and booking"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		JSON:      CLI.LogJSON,
		ConfigDir: cli.ConfigDir(CLI.Config),
	}); err != nil {
		errors.Fatal(err)
	}

	command := ctx.Command()
	appCtx := &cli.Context{}

	// keyring commands must work even when the stored connection is broken
	if !strings.HasPrefix(command, "keyring") {
		store, err := cli.OpenStore(CLI.Config)
		if err != nil {
			errors.Fatal(err)
		}
		appCtx.Store = store
		logger.Debug("Opened storage", "path", store.GetConfigPath(), "command", command)

		// init creates the storage and doctor reports on it
		if !strings.HasPrefix(command, "init") && !strings.HasPrefix(command, "doctor") {
			if err := store.Load(); err != nil {
				errors.Fatal(err)
			}
		}
	}

	err := ctx.Run(appCtx)
	if appCtx.Store != nil {
		if cerr := appCtx.Store.Close(); cerr != nil {
			logger.Warn("Failed to close storage", "error", cerr)
		}
	}
	errors.Fatal(err)
}
