package codegen

import (
	"fmt"
	"go/parser"
	"go/token"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/multierr"
)

// Method is the generated ToQueryParams method for a record.
type Method struct {
	// Record is the record the method is generated for.
	Record Record
	// Receiver is the receiver variable name.
	Receiver string
	// ReceiverType is the receiver type, e.g. "*Page[T]".
	ReceiverType string
	// Fragments contains rendered fields in declaration order.
	Fragments []Fragment
	// Source is the unformatted method declaration.
	Source string
}

// Assemble renders all fields of the record and composes the method
// declaration. Errors are returned as *GenerationError values. If multiple
// fields are invalid, errors for each field are combined.
func Assemble(r Record) (Method, error) {
	if r.Shape != RecordStruct {
		return Method{}, &GenerationError{
			Record: r.Name,
			Err: fmt.Errorf("%w: %s (only structs with named fields are supported)",
				ErrUnsupportedRecordShape, r.Shape,
			),
		}
	}

	typeParams, err := r.TypeParams.Names()
	if err != nil {
		return Method{}, &GenerationError{
			Record: r.Name,
			Err:    fmt.Errorf("%w: %w", ErrCompositionFailure, err),
		}
	}

	m := Method{
		Record:       r,
		Receiver:     receiverName(r.Name, typeParams),
		ReceiverType: receiverType(r, typeParams),
		Fragments:    make([]Fragment, 0, len(r.Fields)),
	}

	var errs error
	seen := make(map[GoIdentifier]struct{}, len(r.Fields))
	for _, f := range r.Fields {
		if f.Name == "_" {
			errs = multierr.Append(errs, &GenerationError{
				Record: r.Name,
				Field:  f.Name,
				Err:    fmt.Errorf("%w: blank field", ErrUnsupportedRecordShape),
			})
			continue
		}
		if _, ok := seen[f.Name]; ok {
			errs = multierr.Append(errs, &GenerationError{
				Record: r.Name,
				Field:  f.Name,
				Err:    fmt.Errorf("%w: duplicate field", ErrCompositionFailure),
			})
			continue
		}
		seen[f.Name] = struct{}{}

		frag, err := Render(m.Receiver, f)
		if err != nil {
			errs = multierr.Append(errs, &GenerationError{
				Record: r.Name,
				Field:  f.Name,
				Err:    err,
			})
			continue
		}
		m.Fragments = append(m.Fragments, frag)
	}
	if errs != nil {
		return Method{}, errs
	}

	var buf strings.Builder
	if err := templates().ExecuteTemplate(&buf, "method.go.tmpl", &m); err != nil {
		return Method{}, &GenerationError{
			Record: r.Name,
			Err:    fmt.Errorf("%w: %w", ErrCompositionFailure, err),
		}
	}
	m.Source = buf.String()

	if err := checkSyntax(m.Source); err != nil {
		return Method{}, &GenerationError{
			Record: r.Name,
			Err:    fmt.Errorf("%w: %w", ErrCompositionFailure, err),
		}
	}

	return m, nil
}

// checkSyntax parses the method declaration as a part of a Go source file.
func checkSyntax(decl string) error {
	src := "package p\n\n" + decl + "\n"
	_, err := parser.ParseFile(token.NewFileSet(), "", src, parser.SkipObjectResolution)
	return err
}

// receiverName returns a short receiver name that does not conflict with
// type parameter names.
func receiverName(typeName GoIdentifier, typeParams []string) string {
	candidates := []string{"r", "recv"}
	if c, _ := utf8.DecodeRuneInString(string(typeName)); unicode.IsLetter(c) {
		candidates = slices.Insert(candidates, 0, string(unicode.ToLower(c)))
	}
	for _, name := range candidates {
		if !slices.Contains(typeParams, name) {
			return name
		}
	}
	for i := 0; ; i++ {
		name := fmt.Sprintf("recv%d", i)
		if !slices.Contains(typeParams, name) {
			return name
		}
	}
}

// receiverType returns the receiver type expression for the record.
func receiverType(r Record, typeParams []string) string {
	var sb strings.Builder
	if r.PointerReceiver {
		sb.WriteByte('*')
	}
	sb.WriteString(string(r.Name))
	if len(typeParams) > 0 {
		sb.WriteByte('[')
		sb.WriteString(strings.Join(typeParams, ", "))
		sb.WriteByte(']')
	}
	return sb.String()
}
