package rules

import (
	"fmt"

	"github.com/ranga291257/astra/internal/types"
)

// GlobalState flags every "global" declaration inside a public function.
// Each statement yields one issue at its own line, named after the directly
// enclosing function.
type GlobalState struct{}

func (GlobalState) ID() string               { return types.RuleGlobalState }
func (GlobalState) Severity() types.Severity { return types.SevError }
func (GlobalState) Describe() string {
	return "Functions must not mutate module state through 'global'"
}

func (GlobalState) Check(f *File) []types.Issue {
	var out []types.Issue
	for _, fn := range f.Tree.Functions {
		if !auditable(fn.Name) {
			continue
		}
		for _, g := range fn.Globals {
			out = append(out, types.Issue{
				File:     f.Path,
				Line:     g.Line,
				Rule:     types.RuleGlobalState,
				Severity: types.SevError,
				Message:  fmt.Sprintf("Function '%s' uses 'global' statement (forbidden pattern)", fn.Name),
			})
		}
	}
	return out
}
