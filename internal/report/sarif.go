// internal/report/sarif.go
package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/ranga291257/astra/internal/rules"
	"github.com/ranga291257/astra/internal/types"
)

const (
	toolName = "astra-audit"
	toolURI  = "https://github.com/ranga291257/astra"
)

// synthetic issues emitted by the auditor itself rather than a
// registered rule. Declared so every result has a descriptor.
var syntheticRules = []rules.Info{
	{ID: types.RuleSyntaxError, Severity: types.SevError, Summary: "File could not be parsed into a syntax tree."},
	{ID: types.RuleAuditError, Severity: types.SevError, Summary: "The audit of a file or rule failed unexpectedly."},
}

// Fingerprint returns a stable identity for an issue, used for SARIF
// partialFingerprints and result tracking across runs.
func Fingerprint(iss types.Issue) string {
	key := fmt.Sprintf("%s|%d|%s|%s", filepath.ToSlash(iss.File), iss.Line, iss.Rule, iss.Message)
	return fmt.Sprintf("%016x", xxhash.Sum64String(key))
}

// WriteSARIF renders issues as a SARIF 2.1.0 log with a single run.
func WriteSARIF(w io.Writer, issues []types.Issue) error {
	return WriteSARIFWithStats(w, issues, nil)
}

// WriteSARIFWithStats additionally attaches run-level properties, for
// example filesAudited, for CI consumers that track scan coverage.
func WriteSARIFWithStats(w io.Writer, issues []types.Issue, stats map[string]int) error {
	doc, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}

	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	for _, info := range append(rules.Catalog(), syntheticRules...) {
		run.AddRule(info.ID).
			WithDescription(info.Summary).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{
				Level: sarifLevel(info.Severity),
			})
	}

	for _, iss := range issues {
		line := iss.Line
		if line < 1 {
			line = 1 // SARIF regions are 1-based; file-level issues pin to the top
		}
		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(filepath.ToSlash(iss.File))).
				WithRegion(sarif.NewRegion().WithStartLine(line)),
		)

		result := sarif.NewRuleResult(iss.Rule).
			WithMessage(sarif.NewTextMessage(iss.Message)).
			WithLevel(sarifLevel(iss.Severity)).
			WithLocations([]*sarif.Location{location})
		result.PartialFingerprints = map[string]interface{}{
			"auditFingerprint/v1": Fingerprint(iss),
		}
		run.AddResult(result)
	}

	if len(stats) > 0 {
		props := make(map[string]interface{}, len(stats))
		for k, v := range stats {
			props[k] = v
		}
		run.Properties = props
	}

	doc.AddRun(run)
	return doc.PrettyWrite(w)
}

func sarifLevel(sev types.Severity) string {
	switch sev {
	case types.SevError:
		return "error"
	case types.SevWarning:
		return "warning"
	default:
		return "note"
	}
}
