package cli

import (
	"context"
	"errors"
	"os"
)

// Export writes all data of the session user to the file named in args.
// Health data stays sealed in the output.
func (a *App) Export(ctx context.Context, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if len(args) == 0 {
		a.println("Usage: export <file>")
		return errors.New("missing export file")
	}
	path := args[0]

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return a.fail(err)
	}
	if err := a.exporter.Export(ctx, a.session, f); err != nil {
		_ = f.Close()
		return a.fail(err)
	}
	if err := f.Close(); err != nil {
		return a.fail(err)
	}
	a.printf("Exported to %s\n", path)
	return nil
}
