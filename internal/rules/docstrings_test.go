package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ranga291257/astra/internal/types"
)

func docstringsRule() Docstrings {
	return Docstrings{Markers: DefaultOptions().DocMarkers}
}

func TestDocstringsMissingIsError(t *testing.T) {
	f := parseFile(t, "m.py", "def run() -> None:\n    pass\n")
	issues := docstringsRule().Check(f)
	if len(issues) != 1 || issues[0].Severity != types.SevError {
		t.Fatalf("expected one error, got %v", issues)
	}
	assert.Equal(t, "Function 'run' missing docstring", issues[0].Message)
}

func TestDocstringsWithoutContractWarns(t *testing.T) {
	f := parseFile(t, "m.py", `def run() -> None:
    """Does the thing."""
    pass
`)
	issues := docstringsRule().Check(f)
	if len(issues) != 1 || issues[0].Severity != types.SevWarning {
		t.Fatalf("expected one warning, got %v", issues)
	}
	assert.Equal(t, "Function 'run' docstring missing contract section (Contract:/Args:/Parameters:)", issues[0].Message)
	assert.Equal(t, 1, issues[0].Line, "issue points at the def line")
}

func TestDocstringsAnyMarkerPasses(t *testing.T) {
	bodies := []string{
		`"""Contract: does the thing."""`,
		`"""Args:\n  none."""`,
		`"""Parameters\n----------"""`,
		`"""Returns the thing."""`,
	}
	for _, body := range bodies {
		f := parseFile(t, "m.py", "def run() -> None:\n    "+body+"\n    pass\n")
		if issues := docstringsRule().Check(f); len(issues) != 0 {
			t.Fatalf("marker in %q should satisfy the rule: %v", body, issues)
		}
	}
}

func TestDocstringsPrivateSkipped(t *testing.T) {
	f := parseFile(t, "m.py", "def _quietly():\n    pass\n")
	if issues := docstringsRule().Check(f); len(issues) != 0 {
		t.Fatalf("private functions are out of scope: %v", issues)
	}
}
