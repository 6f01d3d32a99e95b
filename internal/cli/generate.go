package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"go.pact.im/x/queryparams/codegen"
	"go.pact.im/x/queryparams/loader"
	"go.pact.im/x/queryparams/manifest"
)

// generateOptions contains flags that determine the generated source.
type generateOptions struct {
	types       []string
	configPath  string
	outputPath  string
	packageName string
	buildTags   []string
}

// register adds generation flags to the flag set.
func (o *generateOptions) register(flags *pflag.FlagSet) {
	flags.StringSliceVarP(&o.types, "type", "t", nil, "comma-separated list of type names (default: types marked with "+loader.Directive+")")
	flags.StringVarP(&o.configPath, "config", "c", "", "read records from YAML or JSON manifest instead of Go package")
	flags.StringVarP(&o.outputPath, "output", "o", "", "output file path (default: stdout)")
	flags.StringVar(&o.packageName, "package", "", "override package name")
	flags.StringSliceVar(&o.buildTags, "tags", nil, "comma-separated list of build tags to apply when loading package")
}

// config returns code generation configuration from either the manifest or
// the Go package matched by args.
func (o *generateOptions) config(ctx context.Context, log *zap.Logger, args []string) (codegen.Config, error) {
	var c codegen.Config

	if o.configPath != "" {
		if len(o.types) > 0 || len(args) > 0 {
			return c, errors.New("--config cannot be used with --type or package argument")
		}
		m, err := manifest.Load(o.configPath)
		if err != nil {
			return c, err
		}
		c = m
		log.Debug("Loaded manifest", zap.String("path", o.configPath), zap.Int("records", len(c.Records)))
	} else {
		pattern := "."
		if len(args) > 0 {
			pattern = args[0]
		}
		res, err := loader.Load(ctx, pattern, loader.Options{
			Logger:    log.Named("loader"),
			BuildTags: o.buildTags,
			Types:     o.types,
		})
		if err != nil {
			return c, err
		}
		c.Header.PackageName = res.PackageName
		c.Records = res.Records
	}

	if o.packageName != "" {
		if err := c.Header.PackageName.UnmarshalText([]byte(o.packageName)); err != nil {
			return c, err
		}
	}
	if c.Header.PackageName == "" {
		// Environment variable is set by `go generate`.
		packageName := os.Getenv("GOPACKAGE")
		if err := c.Header.PackageName.UnmarshalText([]byte(packageName)); err != nil {
			return c, fmt.Errorf("package name: %w", err)
		}
	}
	return c, nil
}

// source returns formatted generated source code.
func (o *generateOptions) source(ctx context.Context, log *zap.Logger, args []string) ([]byte, error) {
	c, err := o.config(ctx, log, args)
	if err != nil {
		return nil, err
	}
	return codegen.Source(c)
}

func (c *command) runGenerate(ctx context.Context, stdout io.Writer, args []string) error {
	source, err := c.gen.source(ctx, c.log, args)
	if err != nil {
		return err
	}

	if c.gen.outputPath == "" {
		_, err := stdout.Write(source)
		return err
	}
	if err := os.WriteFile(c.gen.outputPath, source, 0o666); err != nil {
		return err
	}
	c.log.Info("Generated file", zap.String("path", c.gen.outputPath))
	return nil
}
