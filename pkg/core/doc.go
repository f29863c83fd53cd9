// Package core provides a small, stable facade over astra-audit's internal
// auditor for external integrations. It deliberately re-exports a narrow API
// surface to allow editor plugins and CI tooling to depend on a stable import
// path without exposing internal implementation packages.
//
// Example:
//
//	cfg := core.Config{Root: "."}
//	issues, err := core.Audit(cfg)
//	if err != nil { /* handle */ }
//	_ = core.MarshalIssues(os.Stdout, issues)
package core
