package schema

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLibrary(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"empty array", `[]`, ""},
		{"valid record", `[{"title":"Dune","author":"Frank Herbert","year":1965,"genre":"SciFi","read":true}]`, ""},
		{"extra field allowed", `[{"title":"Dune","author":"Herbert","year":1965,"genre":"SciFi","read":true,"isbn":"x"}]`, ""},
		{"not an array", `{"title":"Dune"}`, "array"},
		{"missing read", `[{"title":"Dune","author":"Herbert","year":1965,"genre":"SciFi"}]`, "read"},
		{"year too large", `[{"title":"Dune","author":"Herbert","year":3000,"genre":"SciFi","read":true}]`, "year"},
		{"year not integer", `[{"title":"Dune","author":"Herbert","year":19.5,"genre":"SciFi","read":true}]`, "year"},
		{"padded title", `[{"title":" Dune","author":"Herbert","year":1965,"genre":"SciFi","read":true}]`, "title"},
		{"empty genre", `[{"title":"Dune","author":"Herbert","year":1965,"genre":"","read":true}]`, "genre"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateLibrary([]byte(tt.doc))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "schema validation failed")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := NewValidator().ValidateLibrary([]byte(`[{"title":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation execution failed")
}

func TestValidate_StringSchemaIsCached(t *testing.T) {
	v := NewValidator()
	schema := `{"type":"integer"}`

	assert.NoError(t, v.Validate(schema, []byte(`5`)))
	assert.Error(t, v.Validate(schema, []byte(`"five"`)))

	n := 0
	v.cache.Range(func(_, _ any) bool { n++; return true })
	assert.Equal(t, 1, n)
}

func TestDumpErrors_Truncates(t *testing.T) {
	var errs []string
	for i := 0; i < 5; i++ {
		errs = append(errs, fmt.Sprintf("e%d", i))
	}
	out := dumpErrors(errs)
	assert.Equal(t, 2, strings.Count(out, "\n- "))
	assert.NotContains(t, out, "e3")
	assert.Contains(t, out, "and 2 more")
}
