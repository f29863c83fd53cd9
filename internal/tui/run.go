// Package tui implements the interactive issue browser. It shows audit
// findings in a navigable table with a detail pane, search and severity
// filters, and a re-audit action that re-runs the audit in place.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ranga291257/astra/internal/types"
)

// Run starts the issue browser over the given issues. reaudit, when
// non-nil, is invoked on 'r' to refresh the issue list.
func Run(issues []types.Issue, reaudit func() ([]types.Issue, error)) error {
	m := NewModel(issues, reaudit)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive mode: %w", err)
	}
	return nil
}
