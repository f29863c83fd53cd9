package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ranga291257/astra/internal/pyast"
)

// parseFile builds the File a rule sees, from inline source.
func parseFile(t *testing.T, path, src string) *File {
	t.Helper()
	tree, err := pyast.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return &File{Path: path, Tree: tree, Lines: strings.Split(src, "\n")}
}

func TestRegistryOrderIsFixed(t *testing.T) {
	want := []string{
		"TYPE_HINTS",
		"DOCSTRINGS",
		"FUNCTION_LENGTH",
		"GLOBAL_STATE",
		"MODULE_STRUCTURE",
		"ERROR_HANDLING",
	}
	assert.Equal(t, want, IDs())
}

func TestCatalogCoversRegistry(t *testing.T) {
	cat := Catalog()
	if len(cat) != len(IDs()) {
		t.Fatalf("catalog has %d entries, registry %d", len(cat), len(IDs()))
	}
	for _, info := range cat {
		if info.Summary == "" || !info.Severity.Valid() {
			t.Fatalf("incomplete catalog entry: %+v", info)
		}
	}
}

func TestAuditable(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"load_data", true},
		{"_helper", false},
		{"__init__", true},
		{"__mangled", true},
		{"f", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, auditable(tt.name), tt.name)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}.withDefaults()
	assert.Equal(t, 50, opts.FunctionLengthLimit)
	assert.Equal(t, 1000, opts.ModuleErrorLines)
	assert.Equal(t, 500, opts.ModuleWarnLines)
	assert.Equal(t, "ASTRA.py", opts.EntryFile)
	assert.Contains(t, opts.DocMarkers, "Contract:")
}

// The canonical minimal offender: no annotations, no docstring, well under
// the length limit.
func TestMinimalFunctionYieldsThreeIssues(t *testing.T) {
	f := parseFile(t, "sample.py", "def f(x):\n    return x\n")
	var all []string
	for _, r := range All(Options{}) {
		for _, iss := range r.Check(f) {
			all = append(all, iss.Rule+": "+iss.Message)
		}
	}
	want := []string{
		"TYPE_HINTS: Function 'f' missing return type hint",
		"TYPE_HINTS: Function 'f' parameter 'x' missing type hint",
		"DOCSTRINGS: Function 'f' missing docstring",
	}
	assert.Equal(t, want, all)
}
