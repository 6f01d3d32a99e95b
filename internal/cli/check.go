package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrStale is returned by the check command if the generated file is not up
// to date.
var ErrStale = errors.New("generated file is out of date")

func (c *command) newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [flags] [package]",
		Short: "Check that the generated file is up to date",
		Long: `Check regenerates the source in memory and compares it with the file at
--output path. It fails if the file is missing or differs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), args)
		},
	}
}

func (c *command) runCheck(ctx context.Context, args []string) error {
	path := c.gen.outputPath
	if path == "" {
		return errors.New("check requires --output flag")
	}

	source, err := c.gen.source(ctx, c.log, args)
	if err != nil {
		return err
	}

	existing, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s does not exist", ErrStale, path)
	}
	if err != nil {
		return err
	}
	if !bytes.Equal(existing, source) {
		return fmt.Errorf("%w: %s (run go generate)", ErrStale, path)
	}

	c.log.Info("Generated file is up to date", zap.String("path", path))
	return nil
}
