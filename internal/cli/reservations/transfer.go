package reservations

import (
	"fmt"
	"os"

	"github.com/julianstephens/timeslot/internal/cli"
	"github.com/julianstephens/timeslot/internal/storage"
)

type ImportCmd struct {
	File     string `arg:"" help:"YAML document to import." type:"existingfile"`
	Settings bool   `help:"Also apply the settings stored in the document."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.File, err)
	}
	defer f.Close()

	result, err := storage.Import(f, ctx.Store, ctx.Clock(), c.Settings)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	ctx.Printf("Imported %d reservation(s), skipped %d already present or deleted.\n", result.Added, result.Skipped)
	return nil
}

type ExportCmd struct {
	File string `arg:"" help:"Destination YAML file, - for stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	if c.File == "-" {
		_, err := storage.Export(ctx.Stdout(), ctx.Store, ctx.Clock())
		return err
	}

	f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.File, err)
	}
	n, err := storage.Export(f, ctx.Store, ctx.Clock())
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	ctx.Printf("Exported %d reservation(s) to %s\n", n, c.File)
	return nil
}
