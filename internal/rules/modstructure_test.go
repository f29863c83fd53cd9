package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ranga291257/astra/internal/pyast"
	"github.com/ranga291257/astra/internal/types"
)

func moduleStructureRule() ModuleStructure {
	return ModuleStructure{EntryFile: "ASTRA.py", ErrorLines: 1000, WarnLines: 500}
}

func TestModuleStructureEntryFileBusinessLogic(t *testing.T) {
	src := `def render_header() -> None:
    """Contract: renders."""

def calculate_risk(score: float) -> float:
    """Contract: computes."""
    return score * 2
`
	entry := parseFile(t, "app/ASTRA.py", src)
	issues := moduleStructureRule().Check(entry)
	if len(issues) != 1 {
		t.Fatalf("expected exactly the calculate_* hit, got %v", issues)
	}
	assert.Equal(t, 4, issues[0].Line)
	assert.Equal(t, types.SevError, issues[0].Severity)
	assert.Equal(t, "ASTRA.py should only contain UI wiring, not business logic (found calculate_* function)", issues[0].Message)

	elsewhere := parseFile(t, "app/logic.py", src)
	if issues := moduleStructureRule().Check(elsewhere); len(issues) != 0 {
		t.Fatalf("calculate_* outside the entry file is fine: %v", issues)
	}
}

func TestModuleStructureEntryFileConfigurable(t *testing.T) {
	rule := ModuleStructure{EntryFile: "main.py", ErrorLines: 1000, WarnLines: 500}
	f := parseFile(t, "main.py", "def calculate_total() -> int:\n    \"\"\"Contract: totals.\"\"\"\n    return 0\n")
	issues := rule.Check(f)
	if len(issues) != 1 || !strings.HasPrefix(issues[0].Message, "main.py should only") {
		t.Fatalf("configured entry name not honored: %v", issues)
	}
}

func TestModuleStructureCalculateInsideStringIgnored(t *testing.T) {
	f := parseFile(t, "ASTRA.py", "HELP = \"\"\"\ndef calculate_fake():\n\"\"\"\n")
	if issues := moduleStructureRule().Check(f); len(issues) != 0 {
		t.Fatalf("string contents should not trip the entry check: %v", issues)
	}
}

func TestModuleStructureSizeTiers(t *testing.T) {
	tests := []struct {
		name     string
		lines    int
		wantSev  types.Severity
		wantPart string
	}{
		{"at warn tier", 500, "", ""},
		{"over warn tier", 501, types.SevWarning, "(limit: 500). Consider splitting."},
		{"at error tier", 1000, types.SevWarning, "(limit: 500)"},
		{"over error tier", 1001, types.SevError, "(limit: 1000). Refactor immediately."},
		{"well past error tier", 1200, types.SevError, "File is 1200 lines"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &File{Path: "big.py", Tree: &pyast.Module{}, Lines: make([]string, tt.lines)}
			issues := moduleStructureRule().Check(f)
			if tt.wantSev == "" {
				assert.Empty(t, issues)
				return
			}
			if len(issues) != 1 {
				t.Fatalf("the higher tier wins alone, got %v", issues)
			}
			assert.Equal(t, tt.wantSev, issues[0].Severity)
			assert.Equal(t, 1, issues[0].Line)
			assert.Contains(t, issues[0].Message, tt.wantPart)
		})
	}
}
