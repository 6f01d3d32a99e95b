package codegen

import (
	"encoding"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
)

var (
	_ encoding.TextUnmarshaler = (*GoIdentifier)(nil)
	_ encoding.TextUnmarshaler = (*GoType)(nil)
	_ encoding.TextUnmarshaler = (*GoTypeParamList)(nil)
)

// GoIdentifier validates Go syntax for identifier.
//
// See https://go.dev/ref/spec#identifier
type GoIdentifier string

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (g *GoIdentifier) UnmarshalText(text []byte) error {
	if !token.IsIdentifier(string(text)) {
		return fmt.Errorf("invalid Go identifier %q", text)
	}
	*g = GoIdentifier(text)
	return nil
}

// GoType validates Go syntax for Type.
//
// See https://go.dev/ref/spec#Type
type GoType string

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (g *GoType) UnmarshalText(text []byte) error {
	expr, err := parser.ParseExpr(string(text))
	if err != nil {
		return fmt.Errorf("invalid Go type %q: %w", text, err)
	}
	if !isTypeExpr(expr) {
		return fmt.Errorf("invalid Go type %q: not a type expression", text)
	}
	*g = GoType(text)
	return nil
}

// GoTypeParamList validates Go syntax for TypeParamList.
//
// See https://go.dev/ref/spec#TypeParamList
type GoTypeParamList string

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (g *GoTypeParamList) UnmarshalText(text []byte) error {
	if _, err := typeParamNames(string(text)); err != nil {
		return err
	}
	*g = GoTypeParamList(text)
	return nil
}

// Names returns type parameter names in declaration order. For example,
// "K comparable, V any" yields ["K", "V"].
func (g GoTypeParamList) Names() ([]string, error) {
	return typeParamNames(string(g))
}

func typeParamNames(list string) ([]string, error) {
	if list == "" {
		return nil, nil
	}

	src := "package p\n\ntype _[" + list + "] struct{}\n"
	f, err := parser.ParseFile(token.NewFileSet(), "", src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("invalid type parameter list %q: %w", list, err)
	}
	if len(f.Decls) != 1 {
		return nil, fmt.Errorf("invalid type parameter list %q", list)
	}
	decl, ok := f.Decls[0].(*ast.GenDecl)
	if !ok || len(decl.Specs) != 1 {
		return nil, fmt.Errorf("invalid type parameter list %q", list)
	}
	spec, ok := decl.Specs[0].(*ast.TypeSpec)
	if !ok || spec.TypeParams == nil {
		return nil, fmt.Errorf("invalid type parameter list %q", list)
	}

	var names []string
	for _, field := range spec.TypeParams.List {
		for _, name := range field.Names {
			names = append(names, name.Name)
		}
	}
	return names, nil
}
