package types

import "fmt"

// Severity is the weight of an issue in the audit verdict.
type Severity string

const (
	SevError   Severity = "ERROR"
	SevWarning Severity = "WARNING"
	SevInfo    Severity = "INFO"
)

// Rank orders severities so gate thresholds can compare them.
// Unknown severities rank below INFO.
func (s Severity) Rank() int {
	switch s {
	case SevError:
		return 3
	case SevWarning:
		return 2
	case SevInfo:
		return 1
	}
	return 0
}

// Valid reports whether s is one of the three known levels.
func (s Severity) Valid() bool { return s.Rank() > 0 }

// Rule identifiers. SyntaxError and AuditError are synthetic: they are
// produced by the auditor itself, not by entries in the rule registry.
const (
	RuleTypeHints       = "TYPE_HINTS"
	RuleDocstrings      = "DOCSTRINGS"
	RuleFunctionLength  = "FUNCTION_LENGTH"
	RuleGlobalState     = "GLOBAL_STATE"
	RuleModuleStructure = "MODULE_STRUCTURE"
	RuleErrorHandling   = "ERROR_HANDLING"
	RuleSyntaxError     = "SYNTAX_ERROR"
	RuleAuditError      = "AUDIT_ERROR"
)

// Issue is a single audit finding at a path and line, including the rule ID
// that produced it and its severity.
type Issue struct {
	File     string   `json:"file"`
	Line     int      `json:"line"` // 1-based; 0 means the whole file
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// String renders the issue the way the text report prints a single line.
func (i Issue) String() string {
	return fmt.Sprintf("%s:%d [%s] %s", i.File, i.Line, i.Rule, i.Message)
}
