package rules

import (
	"fmt"

	"github.com/ranga291257/astra/internal/pyast"
	"github.com/ranga291257/astra/internal/types"
)

// TypeHints flags public functions whose return type or positional
// parameters lack annotations. One issue per missing annotation, all at the
// def line. "self" and star parameters are exempt.
type TypeHints struct{}

func (TypeHints) ID() string               { return types.RuleTypeHints }
func (TypeHints) Severity() types.Severity { return types.SevError }
func (TypeHints) Describe() string {
	return "All public functions must annotate their parameters and return type"
}

func (TypeHints) Check(f *File) []types.Issue {
	var out []types.Issue
	for _, fn := range f.Tree.Functions {
		if !auditable(fn.Name) {
			continue
		}
		if !fn.ReturnAnnotated {
			out = append(out, types.Issue{
				File:     f.Path,
				Line:     fn.Line,
				Rule:     types.RuleTypeHints,
				Severity: types.SevError,
				Message:  fmt.Sprintf("Function '%s' missing return type hint", fn.Name),
			})
		}
		for _, p := range fn.Params {
			if p.Kind != pyast.KindPlain || p.Name == "self" || p.Annotated {
				continue
			}
			out = append(out, types.Issue{
				File:     f.Path,
				Line:     fn.Line,
				Rule:     types.RuleTypeHints,
				Severity: types.SevError,
				Message:  fmt.Sprintf("Function '%s' parameter '%s' missing type hint", fn.Name, p.Name),
			})
		}
	}
	return out
}
