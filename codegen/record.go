package codegen

import (
	"encoding"
	"fmt"
)

var _ interface {
	fmt.Stringer
	encoding.TextMarshaler
	encoding.TextUnmarshaler
} = (*RecordShape)(nil)

// RecordShape is an enumeration of record type shapes. Only RecordStruct is
// supported by the code generator, other shapes are described so that the
// generator can report them.
type RecordShape int

const (
	// RecordStruct is a struct type with named fields.
	RecordStruct RecordShape = iota

	// RecordSum is an interface type used as a sum type, i.e. a type that
	// carries one of the variants.
	RecordSum

	// RecordEmbedded is a struct type with at least one embedded (unnamed)
	// field.
	RecordEmbedded

	// RecordNonStruct is any other defined type, e.g. a type with slice or
	// basic underlying type.
	RecordNonStruct
)

// String implements the [fmt.Stringer] interface.
func (s RecordShape) String() string {
	switch s {
	case RecordStruct:
		return "struct"
	case RecordSum:
		return "sum"
	case RecordEmbedded:
		return "embedded"
	case RecordNonStruct:
		return "nonstruct"
	}
	return ""
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (s RecordShape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (s *RecordShape) UnmarshalText(text []byte) error {
	switch string(text) {
	case "struct":
		*s = RecordStruct
	case "sum":
		*s = RecordSum
	case "embedded":
		*s = RecordEmbedded
	case "nonstruct":
		*s = RecordNonStruct
	default:
		return fmt.Errorf("unknown record shape %q", text)
	}
	return nil
}

// Record describes a type for which ToQueryParams method is generated.
type Record struct {
	// Name is the name of the Go type.
	Name GoIdentifier `yaml:"name"`
	// TypeParams is a list of type parameters for generic types. Only
	// parameter names are used in the generated method receiver.
	TypeParams GoTypeParamList `yaml:"typeParams,omitempty"`
	// Shape is the shape of the type. Defaults to RecordStruct.
	Shape RecordShape `yaml:"shape,omitempty"`
	// PointerReceiver indicates that the method should be declared on the
	// pointer type.
	PointerReceiver bool `yaml:"pointerReceiver,omitempty"`
	// Fields is the list of fields in declaration order. The order
	// determines the order of query parameters.
	Fields []Field `yaml:"fields"`
}

// Field describes a named struct field.
type Field struct {
	// Name is the field name. It is used verbatim as the query parameter
	// key.
	Name GoIdentifier `yaml:"name"`
	// Type is the declared type of the field as written in the source.
	Type GoType `yaml:"type"`
}
