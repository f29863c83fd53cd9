package rules

import (
	"fmt"

	"github.com/ranga291257/astra/internal/types"
)

// FunctionLength warns on public functions whose body spans more lines than
// the limit. The span is last body line minus def line, so a function
// ending exactly at the limit passes.
type FunctionLength struct {
	Limit int
}

func (FunctionLength) ID() string               { return types.RuleFunctionLength }
func (FunctionLength) Severity() types.Severity { return types.SevWarning }
func (FunctionLength) Describe() string {
	return "Functions should stay short enough to read in one sitting"
}

func (r FunctionLength) Check(f *File) []types.Issue {
	var out []types.Issue
	for _, fn := range f.Tree.Functions {
		if !auditable(fn.Name) {
			continue
		}
		if span := fn.Span(); span > r.Limit {
			out = append(out, types.Issue{
				File:     f.Path,
				Line:     fn.Line,
				Rule:     types.RuleFunctionLength,
				Severity: types.SevWarning,
				Message:  fmt.Sprintf("Function '%s' is %d lines (limit: %d). Consider breaking it down.", fn.Name, span, r.Limit),
			})
		}
	}
	return out
}
