package codegen

import (
	"cmp"
	"maps"
	"slices"
)

// PackageImport represents an import statement in Go.
type PackageImport struct {
	// PackageName is an optional alias name used when importing.
	PackageName GoIdentifier `yaml:"name,omitempty"`
	// ImportPath is the import path of the Go package.
	ImportPath string `yaml:"path"`
}

// Header represents metadata for generating a Go source file.
type Header struct {
	// PackageName is the name of the generated Go package.
	PackageName GoIdentifier `yaml:"package"`
	// BuildTags is an optional build constraint expression for the
	// generated file, e.g. "!tinygo".
	BuildTags string `yaml:"buildTags,omitempty"`
}

// Imports returns a deduplicated and sorted list of package imports
// required by the generated methods.
func (h *Header) Imports(methods []Method) []PackageImport {
	fmtPackage := PackageImport{ImportPath: "fmt"}
	stringsPackage := PackageImport{ImportPath: "strings"}

	imports := map[PackageImport]struct{}{}
	for _, m := range methods {
		if len(m.Fragments) == 0 {
			continue
		}
		imports[fmtPackage] = struct{}{}
		imports[stringsPackage] = struct{}{}
	}

	return slices.SortedFunc(maps.Keys(imports), func(a, b PackageImport) int {
		return cmp.Or(
			cmp.Compare(a.ImportPath, b.ImportPath),
			cmp.Compare(a.PackageName, b.PackageName),
		)
	})
}
