// Package report renders audit results for humans and machines: the
// classic sectioned text report, a compact table, SARIF 2.1.0 and JSON.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/ranga291257/astra/internal/types"
)

// ruleWidth is the width of the separator rules in the text report.
const ruleWidth = 70

type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
}

// Summary partitions issues by severity. Input order is preserved
// inside each bucket.
type Summary struct {
	Errors   []types.Issue
	Warnings []types.Issue
	Infos    []types.Issue
}

func Partition(issues []types.Issue) Summary {
	var s Summary
	for _, iss := range issues {
		switch iss.Severity {
		case types.SevError:
			s.Errors = append(s.Errors, iss)
		case types.SevWarning:
			s.Warnings = append(s.Warnings, iss)
		default:
			s.Infos = append(s.Infos, iss)
		}
	}
	return s
}

func (s Summary) Total() int {
	return len(s.Errors) + len(s.Warnings) + len(s.Infos)
}

// ShouldFail reports whether the run crosses the blocking threshold:
// any issue at or above failOn trips the gate. An unknown threshold
// blocks on errors only.
func ShouldFail(issues []types.Issue, failOn types.Severity) bool {
	min := failOn.Rank()
	if min == 0 {
		min = types.SevError.Rank()
	}
	for _, iss := range issues {
		if iss.Severity.Rank() >= min {
			return true
		}
	}
	return false
}

// PrintText writes the sectioned audit report: a count header, one
// section per non-empty severity, and a verdict footer.
func PrintText(w io.Writer, issues []types.Issue, opts PrintOptions) {
	s := Partition(issues)
	if len(issues) == 0 {
		fmt.Fprintln(w, "✅ No issues found. Code complies with standards.")
		printStats(w, s, opts)
		return
	}

	heavy := strings.Repeat("=", ruleWidth)
	light := strings.Repeat("-", ruleWidth)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "📊 ASTRA Code Audit Report")
	fmt.Fprintln(w, heavy)
	fmt.Fprintf(w, "Total Issues: %d\n", s.Total())
	fmt.Fprintf(w, "  ❌ Errors: %d (Must Fix)\n", len(s.Errors))
	fmt.Fprintf(w, "  ⚠️  Warnings: %d (Should Fix)\n", len(s.Warnings))
	fmt.Fprintf(w, "  ℹ️  Info: %d\n", len(s.Infos))
	fmt.Fprintln(w, heavy)
	fmt.Fprintln(w)

	printSection(w, "❌ ERRORS (Must Fix):", types.SevError, light, s.Errors, opts)
	printSection(w, "⚠️  WARNINGS (Should Fix):", types.SevWarning, light, s.Warnings, opts)
	printSection(w, "ℹ️  INFO:", types.SevInfo, light, s.Infos, opts)

	fmt.Fprintln(w, heavy)
	switch {
	case len(s.Errors) > 0:
		fmt.Fprintf(w, "❌ Audit FAILED: %d error(s) must be fixed.\n", len(s.Errors))
	case len(s.Warnings) > 0:
		fmt.Fprintf(w, "⚠️  Audit PASSED with %d warning(s) to review.\n", len(s.Warnings))
	default:
		fmt.Fprintln(w, "✅ Audit PASSED: All checks passed.")
	}
	fmt.Fprintln(w, heavy)
	printStats(w, s, opts)
}

func printSection(w io.Writer, title string, sev types.Severity, rule string, issues []types.Issue, opts PrintOptions) {
	if len(issues) == 0 {
		return
	}
	if !opts.NoColor {
		title = colorSeverity(title, sev)
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
	for _, iss := range issues {
		fmt.Fprintf(w, "  %s:%d\n", iss.File, iss.Line)
		fmt.Fprintf(w, "    Rule: %s\n", iss.Rule)
		fmt.Fprintf(w, "    %s\n", iss.Message)
		fmt.Fprintln(w)
	}
}

// PrintTable writes issues as one table row per issue, sorted by file
// then line. Same-location issues keep their rule order.
func PrintTable(w io.Writer, issues []types.Issue, opts PrintOptions) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].File == issues[j].File {
			return issues[i].Line < issues[j].Line
		}
		return issues[i].File < issues[j].File
	})
	s := Partition(issues)
	if len(issues) == 0 {
		fmt.Fprintln(w, "✅ No issues found. Code complies with standards.")
	} else {
		tbl := tablewriter.NewTable(w)
		tbl.Header("Severity", "Rule", "Location", "Message")
		for _, iss := range issues {
			_ = tbl.Append(string(iss.Severity), iss.Rule, fmt.Sprintf("%s:%d", iss.File, iss.Line), iss.Message)
		}
		_ = tbl.Render()
	}
	printStats(w, s, opts)
}

// printStats is the shared run-stats footer, shown only when the caller
// supplied stats. Duration stays opt-in so that default output is
// byte-stable across runs on an unchanged tree.
func printStats(w io.Writer, s Summary, opts PrintOptions) {
	if opts.Duration <= 0 && opts.FilesScanned <= 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Issues: %d (errors: %d, warnings: %d, info: %d)\n", s.Total(), len(s.Errors), len(s.Warnings), len(s.Infos))
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Audit duration: %.2fs\n", opts.Duration.Seconds())
	}
	if opts.FilesScanned > 0 {
		fmt.Fprintf(w, "Files audited: %d\n", opts.FilesScanned)
	}
}

func colorSeverity(s string, sev types.Severity) string {
	switch sev {
	case types.SevError:
		return "\x1b[31m" + s + "\x1b[0m" // red
	case types.SevWarning:
		return "\x1b[33m" + s + "\x1b[0m" // yellow
	default:
		return "\x1b[36m" + s + "\x1b[0m" // cyan
	}
}
