package core

import (
	"github.com/ranga291257/astra/internal/auditor"
	"github.com/ranga291257/astra/internal/rules"
	"github.com/ranga291257/astra/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Config = auditor.Options
type Issue = types.Issue
type Severity = types.Severity
type Result = auditor.Result

// Audit is the stable entrypoint for other programs.
func Audit(cfg Config) ([]Issue, error) {
	res, err := auditor.New(cfg).Run()
	if err != nil {
		return nil, err
	}
	return res.Issues, nil
}

// AuditWithStats runs an audit and returns the issues together with file
// counts and timing.
func AuditWithStats(cfg Config) (Result, error) {
	return auditor.New(cfg).Run()
}

// AuditFile audits one file with the given configuration. Faults surface as
// issues, never as errors.
func AuditFile(cfg Config, path string) []Issue {
	return auditor.New(cfg).AuditFile(path)
}

// RuleIDs returns the list of built-in rule IDs.
// This is exposed for convenience to avoid importing internals directly.
func RuleIDs() []string { return rules.IDs() }
