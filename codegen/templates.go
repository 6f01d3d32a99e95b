package codegen

import (
	"embed"
	"strconv"
	"sync"
	"text/template"
)

//go:embed _templates/*.go.tmpl
var embeddedTemplatesFS embed.FS

// Template returns the embedded template used for code generation.
//
// The template set contains main.go.tmpl for the whole file, method.go.tmpl
// for a single ToQueryParams method and one template per field shape (see
// [Shape.String]) for field fragments.
func Template() *template.Template {
	t := template.New("main.go.tmpl").Option("missingkey=error").Funcs(template.FuncMap{
		"quote": strconv.Quote,
	})
	return template.Must(t.ParseFS(embeddedTemplatesFS, "_templates/*"))
}

// templates returns a shared parsed template. Templates are safe for
// concurrent execution.
var templates = sync.OnceValue(Template)
