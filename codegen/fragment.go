package codegen

import (
	"strings"
)

// Fragment is the rendered code for a single field. When executed, the code
// appends zero or one key=value& segment to the strings.Builder named buf.
type Fragment struct {
	// Key is the query parameter key.
	Key string
	// Shape is the shape of the field type.
	Shape TypeShape
	// Code is the generated Go statements.
	Code string
}

// fragmentData is the data for field templates.
type fragmentData struct {
	Receiver string
	Field    GoIdentifier
	Key      string
}

// Render returns the fragment for the given field of a value named by
// receiver. It returns an error wrapping ErrUnresolvableFieldType if the
// field type cannot be classified.
func Render(receiver string, f Field) (Fragment, error) {
	shape, err := Classify(f.Type)
	if err != nil {
		return Fragment{}, err
	}

	var buf strings.Builder
	err = templates().ExecuteTemplate(&buf, shape.Kind.String(), &fragmentData{
		Receiver: receiver,
		Field:    f.Name,
		Key:      string(f.Name),
	})
	if err != nil {
		return Fragment{}, err
	}

	return Fragment{
		Key:   string(f.Name),
		Shape: shape,
		Code:  buf.String(),
	}, nil
}
