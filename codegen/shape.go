package codegen

import (
	"encoding"
	"fmt"
	"go/ast"
	"go/parser"
	"go/types"
)

var _ interface {
	fmt.Stringer
	encoding.TextMarshaler
	encoding.TextUnmarshaler
} = (*Shape)(nil)

// Shape is an enumeration of supported field shapes. A field shape
// determines how the field value is rendered in the query string.
type Shape int

const (
	// ShapeScalar represents a plain value that is always rendered.
	//
	// Example:
	//
	//   Page int      // page=2
	ShapeScalar Shape = iota

	// ShapeOptional represents a pointer that is rendered only when it is
	// not nil.
	//
	// Example:
	//
	//   Sort *string  // sort=asc, or nothing for nil
	ShapeOptional

	// ShapeList represents a slice or an array that is rendered as comma
	// separated elements.
	//
	// Example:
	//
	//   State []string  // state=open,closed
	ShapeList
)

// String implements the [fmt.Stringer] interface.
func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeOptional:
		return "optional"
	case ShapeList:
		return "list"
	}
	return ""
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (s *Shape) UnmarshalText(text []byte) error {
	switch string(text) {
	case "scalar":
		*s = ShapeScalar
	case "optional":
		*s = ShapeOptional
	case "list":
		*s = ShapeList
	default:
		return fmt.Errorf("unknown shape %q", text)
	}
	return nil
}

// TypeShape is a structural description of a field type. Elem is set for
// ShapeOptional and ShapeList and describes the pointee or element type.
type TypeShape struct {
	Kind Shape
	Elem *TypeShape
}

// String returns a compact representation of the shape, e.g.
// "optional(list(scalar))".
func (t TypeShape) String() string {
	if t.Elem == nil {
		return t.Kind.String()
	}
	return t.Kind.String() + "(" + t.Elem.String() + ")"
}

// Classify parses the type expression and returns its shape. Only the
// syntax is inspected, so a defined type or an alias of a slice is a scalar.
// It returns an error wrapping ErrUnresolvableFieldType if the expression is
// not a named type, pointer, slice or array.
func Classify(t GoType) (TypeShape, error) {
	expr, err := parser.ParseExpr(string(t))
	if err != nil {
		return TypeShape{}, fmt.Errorf("%w %q: %w", ErrUnresolvableFieldType, t, err)
	}
	shape, err := classifyExpr(expr)
	if err != nil {
		return TypeShape{}, fmt.Errorf("%w %q: %w", ErrUnresolvableFieldType, t, err)
	}
	return shape, nil
}

func classifyExpr(expr ast.Expr) (TypeShape, error) {
	switch e := expr.(type) {
	case *ast.ParenExpr:
		return classifyExpr(e.X)
	case *ast.Ident, *ast.SelectorExpr, *ast.IndexExpr, *ast.IndexListExpr:
		if !isTypeName(e) {
			return TypeShape{}, fmt.Errorf("%s is not a type name", types.ExprString(e))
		}
		return TypeShape{Kind: ShapeScalar}, nil
	case *ast.StarExpr:
		elem, err := classifyExpr(e.X)
		if err != nil {
			return TypeShape{}, err
		}
		return TypeShape{Kind: ShapeOptional, Elem: &elem}, nil
	case *ast.ArrayType:
		if _, ok := e.Len.(*ast.Ellipsis); ok {
			return TypeShape{}, fmt.Errorf("array length must be explicit")
		}
		elem, err := classifyExpr(e.Elt)
		if err != nil {
			return TypeShape{}, err
		}
		return TypeShape{Kind: ShapeList, Elem: &elem}, nil
	case *ast.MapType:
		return TypeShape{}, fmt.Errorf("maps are not supported")
	case *ast.StructType:
		return TypeShape{}, fmt.Errorf("nested structs are not supported")
	case *ast.InterfaceType:
		return TypeShape{}, fmt.Errorf("interface literals are not supported")
	case *ast.FuncType:
		return TypeShape{}, fmt.Errorf("func types are not supported")
	case *ast.ChanType:
		return TypeShape{}, fmt.Errorf("chan types are not supported")
	}
	return TypeShape{}, fmt.Errorf("unexpected %T expression", expr)
}

// isTypeName reports whether the expression may name a (possibly qualified
// or instantiated) type.
func isTypeName(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.Ident:
		return true
	case *ast.SelectorExpr:
		_, ok := e.X.(*ast.Ident)
		return ok
	case *ast.IndexExpr:
		return isTypeName(e.X) && isTypeExpr(e.Index)
	case *ast.IndexListExpr:
		if !isTypeName(e.X) {
			return false
		}
		for _, idx := range e.Indices {
			if !isTypeExpr(idx) {
				return false
			}
		}
		return true
	}
	return false
}

// isTypeExpr reports whether the expression is syntactically a type. It is
// used for type arguments where any type is allowed.
func isTypeExpr(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.ParenExpr:
		return isTypeExpr(e.X)
	case *ast.StarExpr:
		return isTypeExpr(e.X)
	case *ast.ArrayType:
		return isTypeExpr(e.Elt)
	case *ast.MapType:
		return isTypeExpr(e.Key) && isTypeExpr(e.Value)
	case *ast.ChanType:
		return isTypeExpr(e.Value)
	case *ast.FuncType, *ast.StructType, *ast.InterfaceType:
		return true
	}
	return isTypeName(expr)
}
