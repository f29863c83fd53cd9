package auditor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranga291257/astra/internal/rules"
	"github.com/ranga291257/astra/internal/types"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAuditFileMinimalOffender(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sample.py", "def f(x):\n    return x\n")

	a := New(Options{})
	issues := a.AuditFile(path)
	if len(issues) != 3 {
		t.Fatalf("expected exactly 3 issues, got %d: %v", len(issues), issues)
	}
	assert.Equal(t, types.RuleTypeHints, issues[0].Rule)
	assert.Equal(t, types.RuleTypeHints, issues[1].Rule)
	assert.Equal(t, types.RuleDocstrings, issues[2].Rule)
	for _, iss := range issues {
		assert.Equal(t, types.SevError, iss.Severity)
		assert.Equal(t, 1, iss.Line)
	}

	// same file, same issues
	assert.Equal(t, issues, a.AuditFile(path))
}

func TestAuditFileCleanPasses(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "clean.py", `def add(a: int, b: int) -> int:
    """Contract: returns a + b."""
    return a + b
`)
	if issues := New(Options{}).AuditFile(path); len(issues) != 0 {
		t.Fatalf("clean file should pass, got %v", issues)
	}
}

func TestAuditFileSyntaxErrorShortCircuits(t *testing.T) {
	dir := t.TempDir()
	// would otherwise trip TYPE_HINTS and DOCSTRINGS
	path := writeFile(t, dir, "broken.py", "def f(x):\n    return x\n\ndef g(:\n")

	issues := New(Options{}).AuditFile(path)
	if len(issues) != 1 {
		t.Fatalf("a parse failure must yield exactly one issue, got %v", issues)
	}
	iss := issues[0]
	assert.Equal(t, types.RuleSyntaxError, iss.Rule)
	assert.Equal(t, types.SevError, iss.Severity)
	assert.True(t, strings.HasPrefix(iss.Message, "Syntax error: "), iss.Message)
	if iss.Line < 1 {
		t.Fatalf("syntax issues carry a 1-based line, got %d", iss.Line)
	}
}

func TestAuditFileUnreadable(t *testing.T) {
	issues := New(Options{}).AuditFile(filepath.Join(t.TempDir(), "missing.py"))
	require.Len(t, issues, 1)
	assert.Equal(t, types.RuleAuditError, issues[0].Rule)
	assert.Equal(t, 0, issues[0].Line)
	assert.True(t, strings.HasPrefix(issues[0].Message, "Failed to audit file: "), issues[0].Message)
}

func TestAuditBytesUsesDisplayName(t *testing.T) {
	a := New(Options{EnableRules: types.RuleTypeHints})
	issues := a.AuditBytes([]byte("def f(x):\n    return x\n"), "stdin")
	require.NotEmpty(t, issues)
	for _, iss := range issues {
		assert.Equal(t, "stdin", iss.File)
		assert.Equal(t, types.RuleTypeHints, iss.Rule)
	}
}

type panicRule struct{}

func (panicRule) ID() string                        { return "PANIC" }
func (panicRule) Severity() types.Severity          { return types.SevError }
func (panicRule) Describe() string                  { return "always panics" }
func (panicRule) Check(f *rules.File) []types.Issue { panic("boom") }

func TestRuleFaultIsolation(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sample.py", "def f(x):\n    return x\n")

	a := New(Options{})
	a.rules = append([]rules.Rule{panicRule{}}, a.rules...)

	issues := a.AuditFile(path)
	require.Len(t, issues, 4, "fault issue plus the three real ones: %v", issues)
	assert.Equal(t, types.RuleAuditError, issues[0].Rule)
	assert.Equal(t, "Rule PANIC failed: boom", issues[0].Message)
	assert.Equal(t, 0, issues[0].Line)
	assert.Equal(t, types.RuleTypeHints, issues[1].Rule, "later rules must still run")
}

func TestFilterRules(t *testing.T) {
	all := rules.All(rules.Options{})

	only := filterRules(all, "TYPE_HINTS,DOCSTRINGS", "")
	var ids []string
	for _, r := range only {
		ids = append(ids, r.ID())
	}
	assert.Equal(t, []string{"TYPE_HINTS", "DOCSTRINGS"}, ids)

	without := filterRules(all, "", "function_length")
	for _, r := range without {
		if r.ID() == types.RuleFunctionLength {
			t.Fatalf("disabled rule still present")
		}
	}
	assert.Len(t, without, len(all)-1)
}

func TestThresholdsReachRules(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "long.py", "def work() -> None:\n    \"\"\"Contract: works.\"\"\"\n    a = 1\n    b = 2\n    c = 3\n")

	strict := New(Options{FunctionLengthLimit: 2})
	issues := strict.AuditFile(path)
	require.Len(t, issues, 1)
	assert.Equal(t, types.RuleFunctionLength, issues[0].Rule)
	assert.Contains(t, issues[0].Message, "(limit: 2)")
}
