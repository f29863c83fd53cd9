package rules

import (
	"testing"

	"github.com/ranga291257/astra/internal/types"
)

func TestTypeHintsFullyAnnotated(t *testing.T) {
	f := parseFile(t, "ok.py", `def add(a: int, b: int) -> int:
    """Contract: sum."""
    return a + b
`)
	if issues := (TypeHints{}).Check(f); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestTypeHintsMissingReturnAndParams(t *testing.T) {
	f := parseFile(t, "bad.py", `def scale(value, factor: float):
    return value * factor
`)
	issues := (TypeHints{}).Check(f)
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %v", issues)
	}
	if issues[0].Message != "Function 'scale' missing return type hint" {
		t.Fatalf("return issue first, got %q", issues[0].Message)
	}
	if issues[1].Message != "Function 'scale' parameter 'value' missing type hint" {
		t.Fatalf("param issue: %q", issues[1].Message)
	}
	for _, iss := range issues {
		if iss.Line != 1 || iss.Severity != types.SevError {
			t.Fatalf("issue placement: %+v", iss)
		}
	}
}

func TestTypeHintsExemptions(t *testing.T) {
	f := parseFile(t, "m.py", `class Store:
    def put(self, key: str) -> None:
        """Contract: stores."""

    def _flush(self, force):
        pass

def spread(*args, **kwargs) -> None:
    """Contract: spreads."""
`)
	if issues := (TypeHints{}).Check(f); len(issues) != 0 {
		t.Fatalf("self, private and star params should be exempt: %v", issues)
	}
}

func TestTypeHintsDunderChecked(t *testing.T) {
	f := parseFile(t, "m.py", "class A:\n    def __init__(self, size):\n        pass\n")
	issues := (TypeHints{}).Check(f)
	if len(issues) != 2 {
		t.Fatalf("dunder methods stay in scope, got %v", issues)
	}
}
