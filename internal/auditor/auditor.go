// Package auditor runs the rule registry over files and trees. It owns the
// two fault boundaries the audit depends on: a file that cannot be parsed
// yields exactly one SYNTAX_ERROR issue, and a rule that panics yields
// exactly one AUDIT_ERROR issue without disturbing the other rules.
package auditor

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/ranga291257/astra/internal/pyast"
	"github.com/ranga291257/astra/internal/rules"
	"github.com/ranga291257/astra/internal/types"
)

// Options controls audit scope and thresholds.
type Options struct {
	Root  string   // tree to walk; may name a single file
	Paths []string // explicit files to audit instead of walking Root

	EntryFile           string
	FunctionLengthLimit int
	ModuleErrorLines    int
	ModuleWarnLines     int
	DocMarkers          []string

	ExcludeNameParts []string // substrings matched against file names; nil means defaults
	ExcludePathParts []string // substrings matched against slash paths; nil means defaults
	IncludeGlobs     string   // comma-separated doublestar globs
	ExcludeGlobs     string

	EnableRules  string // comma-separated rule IDs; empty keeps all
	DisableRules string

	NoCache bool // skip the content-hash result cache on tree walks

	Logger hclog.Logger
}

// Result carries issues along with basic run statistics.
type Result struct {
	Issues       []types.Issue
	FilesScanned int
	Duration     time.Duration
}

// Auditor applies a fixed, filtered rule registry. Build one with New and
// reuse it; it holds no per-file state.
type Auditor struct {
	opts  Options
	rules []rules.Rule
	log   hclog.Logger
}

func New(opts Options) *Auditor {
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.ExcludeNameParts == nil {
		opts.ExcludeNameParts = []string{"test_"}
	}
	if opts.ExcludePathParts == nil {
		opts.ExcludePathParts = []string{"__pycache__"}
	}
	log := opts.Logger
	if log == nil {
		log = hclog.NewNullLogger()
	}
	all := rules.All(rules.Options{
		FunctionLengthLimit: opts.FunctionLengthLimit,
		ModuleErrorLines:    opts.ModuleErrorLines,
		ModuleWarnLines:     opts.ModuleWarnLines,
		EntryFile:           opts.EntryFile,
		DocMarkers:          opts.DocMarkers,
	})
	return &Auditor{
		opts:  opts,
		rules: filterRules(all, opts.EnableRules, opts.DisableRules),
		log:   log,
	}
}

// Rules returns the active registry after enable/disable filtering.
func (a *Auditor) Rules() []rules.Rule { return a.rules }

// AuditFile audits a single file. The path serves both to read the file and
// as the file identity in issues. It never returns an error: every fault
// becomes an issue.
func (a *Auditor) AuditFile(path string) []types.Issue {
	return a.safeAudit(path, path)
}

// AuditBytes audits in-memory source under the given display name, for
// callers that hold content without a file, like editor buffers or stdin.
func (a *Auditor) AuditBytes(data []byte, display string) []types.Issue {
	return a.safeAuditBytes(data, display)
}

// safeAudit reads the file and runs the full audit behind the per-file
// fault boundary.
func (a *Auditor) safeAudit(readPath, display string) []types.Issue {
	data, err := os.ReadFile(readPath)
	if err != nil {
		return readFailure(display, err)
	}
	return a.safeAuditBytes(data, display)
}

// safeAuditBytes is the per-file fault boundary the walker relies on.
func (a *Auditor) safeAuditBytes(data []byte, display string) (issues []types.Issue) {
	defer func() {
		if v := recover(); v != nil {
			a.log.Error("audit fault", "file", display, "panic", v)
			issues = []types.Issue{{
				File:     display,
				Line:     0,
				Rule:     types.RuleAuditError,
				Severity: types.SevError,
				Message:  fmt.Sprintf("Failed to audit file: %v", v),
			}}
		}
	}()
	return a.auditBytes(data, display)
}

func readFailure(display string, err error) []types.Issue {
	return []types.Issue{{
		File:     display,
		Line:     0,
		Rule:     types.RuleAuditError,
		Severity: types.SevError,
		Message:  fmt.Sprintf("Failed to audit file: %v", err),
	}}
}

func (a *Auditor) auditBytes(data []byte, display string) []types.Issue {
	tree, err := pyast.Parse(data)
	if err != nil {
		line, msg := 1, err.Error()
		var se *pyast.SyntaxError
		if errors.As(err, &se) {
			msg = se.Msg
			if se.Line > 0 {
				line = se.Line
			}
		}
		a.log.Debug("parse failed", "file", display, "line", line, "error", msg)
		return []types.Issue{{
			File:     display,
			Line:     line,
			Rule:     types.RuleSyntaxError,
			Severity: types.SevError,
			Message:  "Syntax error: " + msg,
		}}
	}

	f := &rules.File{Path: display, Tree: tree, Lines: strings.Split(string(data), "\n")}
	var out []types.Issue
	for _, r := range a.rules {
		out = append(out, a.runRule(r, f)...)
	}
	a.log.Debug("audited", "file", display, "issues", len(out))
	return out
}

// runRule is the per-rule fault boundary: a panic inside one rule becomes
// one AUDIT_ERROR issue and the remaining rules still run.
func (a *Auditor) runRule(r rules.Rule, f *rules.File) (issues []types.Issue) {
	defer func() {
		if v := recover(); v != nil {
			a.log.Error("rule fault", "rule", r.ID(), "file", f.Path, "panic", v)
			issues = []types.Issue{{
				File:     f.Path,
				Line:     0,
				Rule:     types.RuleAuditError,
				Severity: types.SevError,
				Message:  fmt.Sprintf("Rule %s failed: %v", r.ID(), v),
			}}
		}
	}()
	return r.Check(f)
}

func filterRules(all []rules.Rule, enable, disable string) []rules.Rule {
	parse := func(s string) map[string]bool {
		out := map[string]bool{}
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out[strings.ToUpper(p)] = true
			}
		}
		return out
	}
	allowed := parse(enable)
	blocked := parse(disable)
	var out []rules.Rule
	for _, r := range all {
		if len(allowed) > 0 && !allowed[r.ID()] {
			continue
		}
		if blocked[r.ID()] {
			continue
		}
		out = append(out, r)
	}
	return out
}
