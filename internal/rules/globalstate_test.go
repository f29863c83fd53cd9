package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ranga291257/astra/internal/types"
)

func TestGlobalStateOnePerStatement(t *testing.T) {
	f := parseFile(t, "state.py", `def update(value: int) -> None:
    """Contract: updates."""
    global COUNT
    COUNT += value
    global TOTAL, PEAK
    TOTAL += value
`)
	issues := (GlobalState{}).Check(f)
	if len(issues) != 2 {
		t.Fatalf("expected one issue per statement, got %v", issues)
	}
	assert.Equal(t, 3, issues[0].Line)
	assert.Equal(t, 5, issues[1].Line)
	for _, iss := range issues {
		assert.Equal(t, types.SevError, iss.Severity)
		assert.Equal(t, "Function 'update' uses 'global' statement (forbidden pattern)", iss.Message)
	}
}

func TestGlobalStateNestedAttribution(t *testing.T) {
	f := parseFile(t, "state.py", `def outer() -> None:
    """Contract: wraps."""
    def inner() -> None:
        """Contract: mutates."""
        global STATE
        STATE = 1
`)
	issues := (GlobalState{}).Check(f)
	if len(issues) != 1 {
		t.Fatalf("a nested statement belongs to one function only, got %v", issues)
	}
	assert.Contains(t, issues[0].Message, "'inner'")
}

func TestGlobalStateInPrivateFunctionIgnored(t *testing.T) {
	f := parseFile(t, "state.py", "def _mutate():\n    global X\n    X = 1\n")
	if issues := (GlobalState{}).Check(f); len(issues) != 0 {
		t.Fatalf("private functions are out of scope: %v", issues)
	}
}

func TestGlobalStateModuleLevelIgnored(t *testing.T) {
	f := parseFile(t, "state.py", "global X\nX = 1\n")
	if issues := (GlobalState{}).Check(f); len(issues) != 0 {
		t.Fatalf("module-level global is not a function issue: %v", issues)
	}
}
