// Package codegen implements code generator for converting struct values into
// HTTP query strings.
//
// For each record, a ToQueryParams method is generated. Fields are rendered
// in declaration order as key=value pairs separated by ampersands, and the
// result is prefixed with a question mark. Field keys and values are not
// escaped. The rendering rule is determined by the shape of the declared
// field type:
//
//   - Scalar (named type): page=2
//   - Optional (pointer): omitted when nil, otherwise sort=asc
//   - List (slice or array): state=open,closed
//
// If no pair was rendered, the method returns an empty string.
package codegen

import (
	"bytes"
	"fmt"
	"go/build/constraint"
	"go/format"
	"io"

	"go.uber.org/multierr"
)

// MethodName is the name of the generated method.
const MethodName = "ToQueryParams"

// Config defines a configuration for code generation template execution.
type Config struct {
	// Header contains settings for the file header.
	Header Header `yaml:"header"`
	// Records is the list of records to generate methods for.
	Records []Record `yaml:"records"`
}

// file is the data for the main template.
type file struct {
	Header  Header
	Imports []PackageImport
	Methods []Method
}

// Generate executes code generation template with the given configuration.
// The output is not formatted, see [Source].
func Generate(w io.Writer, c Config) error {
	if c.Header.PackageName == "" {
		return fmt.Errorf("%w: missing package name", ErrCompositionFailure)
	}
	if tags := c.Header.BuildTags; tags != "" {
		if _, err := constraint.Parse("//go:build " + tags); err != nil {
			return fmt.Errorf("%w: invalid build tags %q: %w", ErrCompositionFailure, tags, err)
		}
	}

	methods, err := assembleAll(c.Records)
	if err != nil {
		return err
	}
	return templates().ExecuteTemplate(w, "main.go.tmpl", &file{
		Header:  c.Header,
		Imports: c.Header.Imports(methods),
		Methods: methods,
	})
}

// Source returns formatted Go source code for the given configuration.
func Source(c Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := Generate(&buf, c); err != nil {
		return nil, err
	}
	source, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: format generated source: %w", ErrCompositionFailure, err)
	}
	return source, nil
}

// assembleAll assembles methods for all records. Errors for each record are
// combined so that all problems are reported at once.
func assembleAll(records []Record) ([]Method, error) {
	var errs error
	seen := make(map[GoIdentifier]struct{}, len(records))
	methods := make([]Method, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.Name]; ok {
			errs = multierr.Append(errs, &GenerationError{
				Record: r.Name,
				Err:    fmt.Errorf("%w: duplicate record", ErrCompositionFailure),
			})
			continue
		}
		seen[r.Name] = struct{}{}

		m, err := Assemble(r)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		methods = append(methods, m)
	}
	if errs != nil {
		return nil, errs
	}
	return methods, nil
}
