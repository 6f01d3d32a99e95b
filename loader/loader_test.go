package loader

import (
	"context"
	"errors"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/fs"

	"go.pact.im/x/queryparams/codegen"
)

const goMod = "module example.com/records\n\ngo 1.21\n"

const recordsSource = `package records

import "net/url"

//queryparams:generate
type PullRequests struct {
	Page      int
	Sort      bool
	Direction string
	State     []string
	Author    *string
}

type Ignored struct {
	Name string
}

// Page is a page of items.
//
//queryparams:generate
type Page[T any, K comparable] struct {
	Items  []T
	Cursor *K
	a, b   int
}

func (p *Page[T, K]) Next() {}

type (
	//queryparams:generate
	Shape interface {
		isShape()
	}

	Tags []string

	WithEmbedded struct {
		url.URL
		Limit int
	}

	Alias = PullRequests
)
`

func newModule(t *testing.T, ops ...fs.PathOp) *fs.Dir {
	t.Helper()
	ops = append([]fs.PathOp{fs.WithFile("go.mod", goMod)}, ops...)
	return fs.NewDir(t, "loader", ops...)
}

func TestLoadDirective(t *testing.T) {
	dir := newModule(t, fs.WithFile("records.go", recordsSource))

	res, err := Load(context.Background(), ".", Options{Dir: dir.Path()})
	assert.NilError(t, err)

	assert.Equal(t, res.PackageName, codegen.GoIdentifier("records"))
	assert.Equal(t, res.PackagePath, "example.com/records")
	assert.Equal(t, res.Dir, dir.Path())

	expected := []codegen.Record{{
		Name: "PullRequests",
		Fields: []codegen.Field{
			{Name: "Page", Type: "int"},
			{Name: "Sort", Type: "bool"},
			{Name: "Direction", Type: "string"},
			{Name: "State", Type: "[]string"},
			{Name: "Author", Type: "*string"},
		},
	}, {
		Name:            "Page",
		TypeParams:      "T any, K comparable",
		PointerReceiver: true,
		Fields: []codegen.Field{
			{Name: "Items", Type: "[]T"},
			{Name: "Cursor", Type: "*K"},
			{Name: "a", Type: "int"},
			{Name: "b", Type: "int"},
		},
	}, {
		Name:  "Shape",
		Shape: codegen.RecordSum,
	}}
	assert.DeepEqual(t, res.Records, expected)
}

func TestLoadTypes(t *testing.T) {
	dir := newModule(t, fs.WithFile("records.go", recordsSource))

	res, err := Load(context.Background(), ".", Options{
		Dir:   dir.Path(),
		Types: []string{"Tags", "WithEmbedded", "Ignored", "Alias", "Tags"},
	})
	assert.NilError(t, err)

	var names []codegen.GoIdentifier
	var shapes []codegen.RecordShape
	for _, r := range res.Records {
		names = append(names, r.Name)
		shapes = append(shapes, r.Shape)
	}
	assert.DeepEqual(t, names, []codegen.GoIdentifier{"Tags", "WithEmbedded", "Ignored", "Alias"})
	assert.DeepEqual(t, shapes, []codegen.RecordShape{
		codegen.RecordNonStruct,
		codegen.RecordEmbedded,
		codegen.RecordStruct,
		codegen.RecordNonStruct,
	})
	assert.Check(t, is.Len(res.Records[1].Fields, 0))
}

func TestLoadTypesNotFound(t *testing.T) {
	dir := newModule(t, fs.WithFile("records.go", recordsSource))

	_, err := Load(context.Background(), ".", Options{
		Dir:   dir.Path(),
		Types: []string{"Missing", "PullRequests", "Unknown"},
	})
	assert.ErrorContains(t, err, "type Missing not found")
	assert.ErrorContains(t, err, "type Unknown not found")
}

func TestLoadNoDirectives(t *testing.T) {
	dir := newModule(t, fs.WithFile("records.go", "package records\n\ntype T struct{}\n"))

	_, err := Load(context.Background(), ".", Options{Dir: dir.Path()})
	assert.Assert(t, errors.Is(err, ErrNoTypes))
}

func TestLoadSyntaxError(t *testing.T) {
	dir := newModule(t, fs.WithFile("records.go", "package records\n\ntype T struct{\n"))

	_, err := Load(context.Background(), ".", Options{Dir: dir.Path()})
	assert.Assert(t, err != nil)
}

func TestLoadIgnoresTypeErrors(t *testing.T) {
	dir := newModule(t,
		fs.WithFile("records.go", "package records\n\n//queryparams:generate\ntype T struct{ A int }\n"),
		fs.WithFile("t_queryparams.go", "package records\n\nfunc (t T) ToQueryParams() string { return t.B }\n"),
	)

	res, err := Load(context.Background(), ".", Options{Dir: dir.Path()})
	assert.NilError(t, err)
	assert.DeepEqual(t, res.Records, []codegen.Record{{
		Name:   "T",
		Fields: []codegen.Field{{Name: "A", Type: "int"}},
	}})
}

func TestLoadBuildTags(t *testing.T) {
	dir := newModule(t,
		fs.WithFile("doc.go", "package records\n"),
		fs.WithFile("tagged.go", "//go:build special\n\npackage records\n\n//queryparams:generate\ntype T struct{ A int }\n"),
	)

	_, err := Load(context.Background(), ".", Options{Dir: dir.Path()})
	assert.Assert(t, errors.Is(err, ErrNoTypes))

	res, err := Load(context.Background(), ".", Options{
		Dir:       dir.Path(),
		BuildTags: []string{"special"},
	})
	assert.NilError(t, err)
	assert.Check(t, is.Len(res.Records, 1))
}
