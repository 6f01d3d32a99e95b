// Package manifest reads code generation configuration from YAML files.
//
// A manifest describes records directly, without loading Go packages:
//
//	header:
//	  package: github
//	records:
//	  - name: PullRequestsParams
//	    fields:
//	      - {name: page, type: int}
//	      - {name: sort, type: "*string"}
//	      - {name: state, type: "[]string"}
//
// Since YAML is a superset of JSON, JSON manifests are accepted as well.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"go.pact.im/x/queryparams/codegen"
)

// Load reads the manifest file at the given path.
func Load(path string) (codegen.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return codegen.Config{}, err
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return codegen.Config{}, fmt.Errorf("manifest %s: %w", path, err)
	}
	return c, nil
}

// Decode decodes a manifest from the reader. Unknown keys are rejected.
func Decode(r io.Reader) (codegen.Config, error) {
	var c codegen.Config

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return codegen.Config{}, errors.New("empty manifest")
		}
		return codegen.Config{}, err
	}
	return c, nil
}
