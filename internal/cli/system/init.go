package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/timeslot/internal/backup"
	"github.com/julianstephens/timeslot/internal/cli"
	"github.com/julianstephens/timeslot/internal/storage/postgres"
	"github.com/julianstephens/timeslot/internal/storage/sqlite"
)

type InitCmd struct {
	Force bool `help:"Delete the existing database file before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if _, ok := ctx.Store.(*postgres.Store); ok {
			return fmt.Errorf("--force only applies to file storage; drop the PostgreSQL schema by hand instead")
		}
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			if _, ok := ctx.Store.(*sqlite.Store); ok {
				saved, err := backup.NewManager(path, ctx.Clock).Create()
				if err != nil {
					return fmt.Errorf("failed to back up existing database: %w", err)
				}
				ctx.Printf("Backed up existing database to: %s\n", saved)
			}
			// close first so sqlite releases its lock
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			for _, p := range []string{path, path + "-wal", path + "-shm"} {
				if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("failed to delete existing database: %w", err)
				}
			}
			ctx.Printf("Deleted existing database at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized timeslot storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
