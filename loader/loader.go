// Package loader describes Go struct types as code generation records.
//
// Types are selected either by name or by the //queryparams:generate
// directive in the type’s doc comment:
//
//	//queryparams:generate
//	type PullRequestsParams struct {
//		Page      int
//		Sort      *string
//		State     []string
//	}
//
// Field types are described using their source syntax so that field shapes
// are classified the same way regardless of how the type was resolved.
package loader

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"go.pact.im/x/queryparams/codegen"
)

// Directive is a comment line that marks a type for code generation.
const Directive = "//queryparams:generate"

// ErrNoTypes is returned when no types were selected for code generation.
var ErrNoTypes = errors.New("no types selected")

// Options contains options for loading records.
type Options struct {
	// Logger is the logger for diagnostic messages. Defaults to no-op
	// logger.
	Logger *zap.Logger
	// Dir is the directory in which to run the build system’s query tool.
	// Defaults to the current directory.
	Dir string
	// BuildTags is a list of build tags to consider satisfied.
	BuildTags []string
	// Types is a list of type names to load. If empty, all types marked
	// with Directive are loaded.
	Types []string
}

// setDefaults sets default values for unspecified options.
func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// Result is the result of loading records from a package.
type Result struct {
	// PackageName is the name of the loaded package.
	PackageName codegen.GoIdentifier
	// PackagePath is the import path of the loaded package.
	PackagePath string
	// Dir is the directory containing package source files.
	Dir string
	// Records contains descriptions of the selected types.
	Records []codegen.Record
}

// typeDecl is a type declaration found in the package syntax.
type typeDecl struct {
	spec   *ast.TypeSpec
	marked bool
}

// Load loads a single package matching the pattern and describes selected
// types. Type checking errors are logged and otherwise ignored since a stale
// generated file should not prevent regenerating it.
func Load(ctx context.Context, pattern string, o Options) (*Result, error) {
	o.setDefaults()
	log := o.Logger

	cfg := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
			packages.NeedTypes | packages.NeedTypesInfo,
		Dir: o.Dir,
	}
	if len(o.BuildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(o.BuildTags, ",")}
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load package %q: %w", pattern, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("pattern %q matched %d packages, expected exactly one", pattern, len(pkgs))
	}
	pkg := pkgs[0]

	if err := packageErrors(log, pkg); err != nil {
		return nil, err
	}
	log.Debug("Loaded package",
		zap.String("path", pkg.PkgPath),
		zap.Int("files", len(pkg.Syntax)),
	)

	decls, order := collectTypeDecls(pkg.Syntax)

	selected, err := selectTypes(decls, order, o.Types)
	if err != nil {
		return nil, err
	}

	res := &Result{
		PackageName: codegen.GoIdentifier(pkg.Name),
		PackagePath: pkg.PkgPath,
		Dir:         o.Dir,
	}
	if len(pkg.GoFiles) > 0 {
		res.Dir = filepath.Dir(pkg.GoFiles[0])
	}
	for _, spec := range selected {
		r := describe(spec, pkg.Types)
		log.Debug("Described record",
			zap.String("type", string(r.Name)),
			zap.Stringer("shape", r.Shape),
			zap.Int("fields", len(r.Fields)),
			zap.Bool("pointerReceiver", r.PointerReceiver),
		)
		res.Records = append(res.Records, r)
	}
	return res, nil
}

// packageErrors returns combined list and parse errors for the package.
// Type errors are logged as warnings.
func packageErrors(log *zap.Logger, pkg *packages.Package) error {
	var errs error
	for _, e := range pkg.Errors {
		if e.Kind == packages.TypeError {
			log.Warn("Ignoring type checking error", zap.Error(e))
			continue
		}
		errs = multierr.Append(errs, e)
	}
	return errs
}

// collectTypeDecls returns package-level type declarations by name and their
// names in source order.
func collectTypeDecls(files []*ast.File) (map[string]typeDecl, []string) {
	decls := make(map[string]typeDecl)
	var order []string
	for _, f := range files {
		for _, d := range f.Decls {
			gen, ok := d.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, s := range gen.Specs {
				spec := s.(*ast.TypeSpec)
				marked := hasDirective(spec.Doc)
				if !gen.Lparen.IsValid() {
					marked = marked || hasDirective(gen.Doc)
				}
				decls[spec.Name.Name] = typeDecl{spec: spec, marked: marked}
				order = append(order, spec.Name.Name)
			}
		}
	}
	return decls, order
}

// hasDirective reports whether the comment group contains Directive.
func hasDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		if strings.TrimSpace(c.Text) == Directive {
			return true
		}
	}
	return false
}

// selectTypes returns type specs for the given names, or for all marked
// types in source order if names is empty.
func selectTypes(decls map[string]typeDecl, order, names []string) ([]*ast.TypeSpec, error) {
	var specs []*ast.TypeSpec
	if len(names) == 0 {
		for _, name := range order {
			if d := decls[name]; d.marked {
				specs = append(specs, d.spec)
			}
		}
		if len(specs) == 0 {
			return nil, fmt.Errorf("%w: no types are marked with %s", ErrNoTypes, Directive)
		}
		return specs, nil
	}

	var errs error
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		d, ok := decls[name]
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("type %s not found", name))
			continue
		}
		specs = append(specs, d.spec)
	}
	if errs != nil {
		return nil, errs
	}
	return specs, nil
}
