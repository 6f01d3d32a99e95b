package codegen

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/multierr"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/golden"
)

func exampleConfig() Config {
	return Config{
		Header: Header{PackageName: "example"},
		Records: []Record{{
			Name: "ExampleStruct",
			Fields: []Field{
				{Name: "field_1", Type: "int32"},
				{Name: "field_2", Type: "string"},
				{Name: "field_3", Type: "bool"},
				{Name: "field_4", Type: "int64"},
				{Name: "field_5", Type: "[]int32"},
			},
		}, {
			Name: "EmptyStruct",
		}, {
			Name: "OptsStruct",
			Fields: []Field{
				{Name: "field_1", Type: "*int64"},
				{Name: "field_2", Type: "*string"},
				{Name: "field_3", Type: "*int32"},
			},
		}, {
			Name:            "Page",
			TypeParams:      "T fmt.Stringer",
			PointerReceiver: true,
			Fields: []Field{
				{Name: "Items", Type: "[]T"},
				{Name: "Cursor", Type: "*string"},
			},
		}},
	}
}

func TestSource(t *testing.T) {
	source, err := Source(exampleConfig())
	assert.NilError(t, err)
	golden.Assert(t, string(source), "example.golden")
}

func TestSourceBuildTags(t *testing.T) {
	c := Config{
		Header:  Header{PackageName: "example", BuildTags: "linux && !tinygo"},
		Records: []Record{{Name: "EmptyStruct"}},
	}
	source, err := Source(c)
	assert.NilError(t, err)
	golden.Assert(t, string(source), "buildtags.golden")
}

func TestGenerateNoImportsWithoutFields(t *testing.T) {
	var sb strings.Builder
	err := Generate(&sb, Config{
		Header:  Header{PackageName: "example"},
		Records: []Record{{Name: "A"}, {Name: "B"}},
	})
	assert.NilError(t, err)
	assert.Check(t, !strings.Contains(sb.String(), "import"))
	assert.Check(t, is.Equal(strings.Count(sb.String(), "ToQueryParams() string"), 2))
}

func TestGenerateDeterministic(t *testing.T) {
	first, err := Source(exampleConfig())
	assert.NilError(t, err)
	second, err := Source(exampleConfig())
	assert.NilError(t, err)
	assert.DeepEqual(t, first, second, cmpopts.EquateEmpty())
}

func TestGenerateErrors(t *testing.T) {
	c := exampleConfig()
	c.Records = append(c.Records,
		Record{Name: "Shape", Shape: RecordSum},
		Record{Name: "EmptyStruct"},
		Record{Name: "Filter", Fields: []Field{{Name: "labels", Type: "map[string]string"}}},
	)

	var sb strings.Builder
	err := Generate(&sb, c)
	assert.Equal(t, sb.Len(), 0)

	errs := multierr.Errors(err)
	assert.Assert(t, is.Len(errs, 3))
	assert.Check(t, errors.Is(errs[0], ErrUnsupportedRecordShape))
	assert.Check(t, errors.Is(errs[1], ErrCompositionFailure))
	assert.Check(t, is.ErrorContains(errs[1], "record EmptyStruct: composition failure: duplicate record"))
	assert.Check(t, errors.Is(errs[2], ErrUnresolvableFieldType))
	assert.Check(t, is.ErrorContains(errs[2], "record Filter: field labels: unresolvable field type"))
}

func TestGenerateHeaderErrors(t *testing.T) {
	var sb strings.Builder
	err := Generate(&sb, Config{})
	assert.Assert(t, errors.Is(err, ErrCompositionFailure))
	assert.ErrorContains(t, err, "missing package name")

	err = Generate(&sb, Config{Header: Header{PackageName: "p", BuildTags: "linux &&"}})
	assert.Assert(t, errors.Is(err, ErrCompositionFailure))
	assert.ErrorContains(t, err, "invalid build tags")
}
