package codegen

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestGoIdentifier(t *testing.T) {
	for _, valid := range []string{"Page", "field_1", "_x", "Ωmega"} {
		var g GoIdentifier
		assert.NilError(t, g.UnmarshalText([]byte(valid)))
		assert.Equal(t, string(g), valid)
	}
	for _, invalid := range []string{"", "1field", "type", "a-b", "a.b"} {
		var g GoIdentifier
		assert.ErrorContains(t, g.UnmarshalText([]byte(invalid)), "invalid Go identifier")
	}
}

func TestGoType(t *testing.T) {
	for _, valid := range []string{"int", "*string", "[]time.Time", "map[string]int", "Page[T]"} {
		var g GoType
		assert.NilError(t, g.UnmarshalText([]byte(valid)))
		assert.Equal(t, string(g), valid)
	}
	for _, invalid := range []string{"", "1 + 2", "f(x)", "[]"} {
		var g GoType
		assert.ErrorContains(t, g.UnmarshalText([]byte(invalid)), "invalid Go type")
	}
}

func TestGoTypeParamList(t *testing.T) {
	testCases := []struct {
		input    GoTypeParamList
		expected []string
	}{
		{"", nil},
		{"T any", []string{"T"}},
		{"K comparable, V any", []string{"K", "V"}},
		{"K, V any", []string{"K", "V"}},
		{"S ~[]E, E fmt.Stringer", []string{"S", "E"}},
	}
	for _, tc := range testCases {
		t.Run(string(tc.input), func(t *testing.T) {
			var g GoTypeParamList
			if tc.input != "" {
				assert.NilError(t, g.UnmarshalText([]byte(tc.input)))
			}
			names, err := g.Names()
			assert.NilError(t, err)
			assert.DeepEqual(t, names, tc.expected)
		})
	}

	var g GoTypeParamList
	assert.ErrorContains(t, g.UnmarshalText([]byte("T")), "invalid type parameter list")
	assert.ErrorContains(t, g.UnmarshalText([]byte("T any]")), "invalid type parameter list")
}
