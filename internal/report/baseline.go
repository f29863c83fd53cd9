package report

import (
	"encoding/json"
	"os"

	"github.com/ranga291257/astra/internal/types"
)

// DefaultBaselinePath is where audit and baseline commands look when no
// explicit path is given.
const DefaultBaselinePath = "astra.baseline.json"

// Baseline records accepted issues so later audits only surface new ones.
type Baseline struct {
	Items map[string]bool `json:"items"`
}

func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	f, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	_ = json.Unmarshal(f, &b)
	if b.Items == nil {
		b.Items = map[string]bool{}
	}
	return b, nil
}

func SaveBaseline(path string, issues []types.Issue) error {
	b := Baseline{Items: map[string]bool{}}
	for _, iss := range issues {
		b.Items[baselineKey(iss)] = true
	}
	buf, _ := json.MarshalIndent(b, "", "  ")
	return os.WriteFile(path, buf, 0644)
}

// FilterNewIssues drops issues already accepted by the baseline.
func FilterNewIssues(issues []types.Issue, base Baseline) []types.Issue {
	var out []types.Issue
	for _, iss := range issues {
		if !base.Items[baselineKey(iss)] {
			out = append(out, iss)
		}
	}
	return out
}

// baselineKey deliberately omits the line number: edits above an accepted
// issue shift lines without changing what the issue is about.
func baselineKey(iss types.Issue) string {
	return iss.File + "|" + iss.Rule + "|" + iss.Message
}
