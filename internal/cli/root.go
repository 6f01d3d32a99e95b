// Package cli implements the queryparams command.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go.pact.im/x/queryparams/internal/zaplog"
)

const longDescription = `The queryparams command generates ToQueryParams methods that convert struct
values into HTTP query strings.

Fields are rendered in declaration order as key=value pairs. Pointer fields
are omitted when nil, slice and array elements are joined with commas, and
other fields are formatted with the fmt package. Keys and values are not
escaped.

Types are selected with --type or with the //queryparams:generate directive
in the type's doc comment. Alternatively, records can be described in a
YAML or JSON manifest passed with --config.

Usage with go generate:

  //go:generate go run go.pact.im/x/queryparams/cmd/queryparams -o params_queryparams.go`

// command holds state shared by queryparams subcommands.
type command struct {
	log *zap.Logger

	verbose bool
	gen     generateOptions
}

// NewRootCommand returns the root queryparams command.
func NewRootCommand() *cobra.Command {
	c := &command{log: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "queryparams [flags] [package]",
		Short: "Generate HTTP query string methods for Go structs",
		Long:  longDescription,
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := zapcore.InfoLevel
			if c.verbose {
				level = zapcore.DebugLevel
			}
			c.log = zaplog.New(cmd.ErrOrStderr(), level)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), cmd.OutOrStdout(), args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	c.gen.register(flags)

	cmd.AddCommand(c.newCheckCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// Execute runs the root command with provided args.
func Execute(ctx context.Context, args []string) error {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
