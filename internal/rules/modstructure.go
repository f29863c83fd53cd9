package rules

import (
	"fmt"
	"strings"

	"github.com/ranga291257/astra/internal/types"
)

// ModuleStructure enforces two file-level constraints under one rule ID.
// The designated entry-point file must not define calculate_* functions,
// and no file may grow past the size tiers: crossing ErrorLines is an
// error, crossing only WarnLines is a warning. At most one size issue is
// emitted per file, always at line 1.
type ModuleStructure struct {
	EntryFile  string
	ErrorLines int
	WarnLines  int
}

func (ModuleStructure) ID() string               { return types.RuleModuleStructure }
func (ModuleStructure) Severity() types.Severity { return types.SevError }
func (ModuleStructure) Describe() string {
	return "The entry point stays UI wiring only, and modules stay within size limits"
}

func (r ModuleStructure) Check(f *File) []types.Issue {
	var out []types.Issue

	if f.Base() == r.EntryFile {
		for _, fn := range f.Tree.Functions {
			if !strings.HasPrefix(fn.Name, "calculate_") || len(fn.Name) == len("calculate_") {
				continue
			}
			out = append(out, types.Issue{
				File:     f.Path,
				Line:     fn.Line,
				Rule:     types.RuleModuleStructure,
				Severity: types.SevError,
				Message:  fmt.Sprintf("%s should only contain UI wiring, not business logic (found calculate_* function)", r.EntryFile),
			})
		}
	}

	switch n := len(f.Lines); {
	case n > r.ErrorLines:
		out = append(out, types.Issue{
			File:     f.Path,
			Line:     1,
			Rule:     types.RuleModuleStructure,
			Severity: types.SevError,
			Message:  fmt.Sprintf("File is %d lines (limit: %d). Refactor immediately.", n, r.ErrorLines),
		})
	case n > r.WarnLines:
		out = append(out, types.Issue{
			File:     f.Path,
			Line:     1,
			Rule:     types.RuleModuleStructure,
			Severity: types.SevWarning,
			Message:  fmt.Sprintf("File is %d lines (limit: %d). Consider splitting.", n, r.WarnLines),
		})
	}

	return out
}
