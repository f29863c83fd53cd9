package rules

import (
	"fmt"
	"strings"

	"github.com/ranga291257/astra/internal/types"
)

// Docstrings requires every public function to carry a docstring, and the
// docstring to contain at least one contract marker. A missing docstring is
// an error; a docstring without a marker only warns.
type Docstrings struct {
	Markers []string
}

func (Docstrings) ID() string               { return types.RuleDocstrings }
func (Docstrings) Severity() types.Severity { return types.SevError }
func (Docstrings) Describe() string {
	return "All public functions must carry a docstring with a contract section"
}

func (d Docstrings) Check(f *File) []types.Issue {
	var out []types.Issue
	for _, fn := range f.Tree.Functions {
		if !auditable(fn.Name) {
			continue
		}
		if fn.Docstring == nil {
			out = append(out, types.Issue{
				File:     f.Path,
				Line:     fn.Line,
				Rule:     types.RuleDocstrings,
				Severity: types.SevError,
				Message:  fmt.Sprintf("Function '%s' missing docstring", fn.Name),
			})
			continue
		}
		if !d.hasMarker(fn.Docstring.Text) {
			out = append(out, types.Issue{
				File:     f.Path,
				Line:     fn.Line,
				Rule:     types.RuleDocstrings,
				Severity: types.SevWarning,
				Message:  fmt.Sprintf("Function '%s' docstring missing contract section (Contract:/Args:/Parameters:)", fn.Name),
			})
		}
	}
	return out
}

func (d Docstrings) hasMarker(text string) bool {
	for _, m := range d.Markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
