package rules

import (
	"fmt"

	"github.com/ranga291257/astra/internal/types"
)

// ErrorHandling warns on bare "except:" clauses inside public functions,
// one issue per clause at its own line.
type ErrorHandling struct{}

func (ErrorHandling) ID() string               { return types.RuleErrorHandling }
func (ErrorHandling) Severity() types.Severity { return types.SevWarning }
func (ErrorHandling) Describe() string {
	return "Exception handlers must name the exception types they catch"
}

func (ErrorHandling) Check(f *File) []types.Issue {
	var out []types.Issue
	for _, fn := range f.Tree.Functions {
		if !auditable(fn.Name) {
			continue
		}
		for _, ex := range fn.Excepts {
			if !ex.Bare {
				continue
			}
			out = append(out, types.Issue{
				File:     f.Path,
				Line:     ex.Line,
				Rule:     types.RuleErrorHandling,
				Severity: types.SevWarning,
				Message:  fmt.Sprintf("Function '%s' has bare 'except:' clause. Should specify exception type.", fn.Name),
			})
		}
	}
	return out
}
