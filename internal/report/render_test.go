package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ranga291257/astra/internal/types"
)

func issue(file string, line int, rule string, sev types.Severity, msg string) types.Issue {
	return types.Issue{File: file, Line: line, Rule: rule, Severity: sev, Message: msg}
}

func TestPartition_KeepsInputOrder(t *testing.T) {
	issues := []types.Issue{
		issue("a.py", 1, types.RuleTypeHints, types.SevError, "first error"),
		issue("a.py", 2, types.RuleFunctionLength, types.SevWarning, "first warning"),
		issue("b.py", 3, types.RuleDocstrings, types.SevError, "second error"),
		issue("b.py", 4, "NOTE", types.SevInfo, "just info"),
	}
	s := Partition(issues)
	if s.Total() != 4 {
		t.Fatalf("expected total 4, got %d", s.Total())
	}
	if len(s.Errors) != 2 || len(s.Warnings) != 1 || len(s.Infos) != 1 {
		t.Fatalf("unexpected partition sizes: %d/%d/%d", len(s.Errors), len(s.Warnings), len(s.Infos))
	}
	if s.Errors[0].Message != "first error" || s.Errors[1].Message != "second error" {
		t.Fatalf("error bucket lost input order: %+v", s.Errors)
	}
}

func TestShouldFail_Thresholds(t *testing.T) {
	warn := []types.Issue{issue("a.py", 1, types.RuleFunctionLength, types.SevWarning, "w")}
	errs := []types.Issue{issue("a.py", 1, types.RuleTypeHints, types.SevError, "e")}
	info := []types.Issue{issue("a.py", 1, "NOTE", types.SevInfo, "i")}

	cases := []struct {
		name   string
		issues []types.Issue
		failOn types.Severity
		want   bool
	}{
		{"empty", nil, types.SevError, false},
		{"error blocks on error", errs, types.SevError, true},
		{"warning passes on error", warn, types.SevError, false},
		{"warning blocks on warning", warn, types.SevWarning, true},
		{"info passes on warning", info, types.SevWarning, false},
		{"info blocks on info", info, types.SevInfo, true},
		{"unknown threshold means error", warn, types.Severity("BOGUS"), false},
	}
	for _, tc := range cases {
		if got := ShouldFail(tc.issues, tc.failOn); got != tc.want {
			t.Errorf("%s: ShouldFail = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestPrintText_NoIssues_ShowsFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, nil, PrintOptions{Duration: 1200 * time.Millisecond, FilesScanned: 10})
	out := buf.String()
	if !strings.Contains(out, "No issues found. Code complies with standards.") {
		t.Fatalf("expected friendly no-issues message; got: %q", out)
	}
	if !strings.Contains(out, "Files audited: 10") {
		t.Fatalf("expected footer with files audited; got: %q", out)
	}
	if !strings.Contains(out, "Audit duration: 1.20s") {
		t.Fatalf("expected footer with duration; got: %q", out)
	}
}

func TestPrintText_SectionsAndVerdict(t *testing.T) {
	issues := []types.Issue{
		issue("app.py", 1, types.RuleTypeHints, types.SevError, "Function 'f' missing return type hint"),
		issue("app.py", 1, types.RuleDocstrings, types.SevError, "Function 'f' missing docstring"),
		issue("app.py", 9, types.RuleFunctionLength, types.SevWarning, "Function 'g' is 60 lines (limit: 50). Consider breaking it down."),
	}
	var buf bytes.Buffer
	PrintText(&buf, issues, PrintOptions{NoColor: true})
	out := buf.String()

	for _, want := range []string{
		"ASTRA Code Audit Report",
		"Total Issues: 3",
		"Errors: 2 (Must Fix)",
		"Warnings: 1 (Should Fix)",
		"ERRORS (Must Fix):",
		"WARNINGS (Should Fix):",
		"  app.py:1",
		"    Rule: TYPE_HINTS",
		"    Function 'f' missing return type hint",
		"Audit FAILED: 2 error(s) must be fixed.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q; got:\n%s", want, out)
		}
	}
	// Empty severities are skipped entirely.
	if strings.Contains(out, "INFO:") {
		t.Fatalf("did not expect an info section; got:\n%s", out)
	}
	// Input order survives within a section.
	if strings.Index(out, "Rule: TYPE_HINTS") > strings.Index(out, "Rule: DOCSTRINGS") {
		t.Fatalf("expected TYPE_HINTS before DOCSTRINGS; got:\n%s", out)
	}
}

func TestPrintText_WarningOnlyVerdict(t *testing.T) {
	issues := []types.Issue{
		issue("app.py", 9, types.RuleFunctionLength, types.SevWarning, "Function 'g' is 60 lines (limit: 50). Consider breaking it down."),
	}
	var buf bytes.Buffer
	PrintText(&buf, issues, PrintOptions{NoColor: true})
	if !strings.Contains(buf.String(), "Audit PASSED with 1 warning(s) to review.") {
		t.Fatalf("expected warning verdict; got: %q", buf.String())
	}
}

func TestPrintText_InfoOnlyVerdict(t *testing.T) {
	issues := []types.Issue{issue("app.py", 3, "NOTE", types.SevInfo, "informational")}
	var buf bytes.Buffer
	PrintText(&buf, issues, PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "Audit PASSED: All checks passed.") {
		t.Fatalf("expected pass verdict for info-only run; got: %q", out)
	}
	if !strings.Contains(out, "INFO:") {
		t.Fatalf("expected info section; got: %q", out)
	}
}

func TestPrintText_Deterministic(t *testing.T) {
	issues := []types.Issue{
		issue("app.py", 1, types.RuleTypeHints, types.SevError, "Function 'f' missing return type hint"),
		issue("lib.py", 4, types.RuleErrorHandling, types.SevWarning, "Function 'h' has bare 'except:' clause. Should specify exception type."),
	}
	var a, b bytes.Buffer
	PrintText(&a, issues, PrintOptions{NoColor: true, FilesScanned: 2})
	PrintText(&b, issues, PrintOptions{NoColor: true, FilesScanned: 2})
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatalf("expected identical output across runs")
	}
}

func TestPrintText_ColorToggle(t *testing.T) {
	issues := []types.Issue{issue("app.py", 1, types.RuleTypeHints, types.SevError, "Function 'f' missing return type hint")}
	var colored, plain bytes.Buffer
	PrintText(&colored, issues, PrintOptions{})
	PrintText(&plain, issues, PrintOptions{NoColor: true})
	if !strings.Contains(colored.String(), "\x1b[31m") {
		t.Fatalf("expected ANSI color in default output; got: %q", colored.String())
	}
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("expected no ANSI escapes with NoColor; got: %q", plain.String())
	}
}

func TestPrintTable_WithIssues(t *testing.T) {
	issues := []types.Issue{
		issue("app.py", 1, types.RuleTypeHints, types.SevError, "Function 'f' missing return type hint"),
	}
	var buf bytes.Buffer
	PrintTable(&buf, issues, PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "SEVERITY") {
		t.Fatalf("expected table header with SEVERITY; got: %q", out)
	}
	if !strings.Contains(out, "TYPE_HINTS") {
		t.Fatalf("expected rule in table; got: %q", out)
	}
	if !strings.Contains(out, "│") {
		t.Fatalf("expected table borders; got: %q", out)
	}
}

func TestPrintTable_SortsByLocation(t *testing.T) {
	issues := []types.Issue{
		issue("b.py", 2, types.RuleDocstrings, types.SevError, "Function 'x' missing docstring"),
		issue("a.py", 5, types.RuleGlobalState, types.SevError, "Function 'y' uses 'global' statement (forbidden pattern)"),
	}
	var buf bytes.Buffer
	PrintTable(&buf, issues, PrintOptions{NoColor: true})
	out := buf.String()
	if strings.Index(out, "a.py:5") > strings.Index(out, "b.py:2") {
		t.Fatalf("expected rows sorted by file; got:\n%s", out)
	}
}

func TestPrintTable_NoIssues_ShowsFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, nil, PrintOptions{Duration: 1200 * time.Millisecond, FilesScanned: 10})
	out := buf.String()
	if !strings.Contains(out, "No issues found. Code complies with standards.") {
		t.Fatalf("expected friendly no-issues message; got: %q", out)
	}
	if !strings.Contains(out, "Files audited: 10") {
		t.Fatalf("expected footer with files audited; got: %q", out)
	}
}
