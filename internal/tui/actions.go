package tui

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// statusMsg carries transient text for the status bar.
type statusMsg string

// openEditor launches $EDITOR at the selected issue's file and line.
// The table stays where it was when the editor exits.
func (m *Model) openEditor() tea.Cmd {
	issues := m.getDisplayIssues()
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(issues) {
		return nil
	}
	iss := issues[idx]

	editor := os.Getenv("EDITOR")
	if editor == "" {
		return func() tea.Msg {
			return statusMsg("$EDITOR not set")
		}
	}

	line := iss.Line
	if line < 1 {
		line = 1
	}

	// vim, nvim, nano, emacs and friends all accept +line
	c := exec.Command(editor, fmt.Sprintf("+%d", line), iss.File)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		if err != nil {
			return statusMsg(fmt.Sprintf("Editor error: %v", err))
		}
		return statusMsg(fmt.Sprintf("Opened %s", iss.File))
	})
}

// copyLocationToClipboard copies "file:line" for the selected issue.
func (m *Model) copyLocationToClipboard() tea.Cmd {
	issues := m.getDisplayIssues()
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(issues) {
		return nil
	}
	iss := issues[idx]

	return func() tea.Msg {
		loc := fmt.Sprintf("%s:%d", iss.File, iss.Line)
		if err := clipboard.WriteAll(loc); err != nil {
			return statusMsg(fmt.Sprintf("Clipboard error: %v", err))
		}
		return statusMsg(fmt.Sprintf("Copied: %s", loc))
	}
}

// copyIssueToClipboard copies the full issue text for pasting into a
// review comment or chat.
func (m *Model) copyIssueToClipboard() tea.Cmd {
	issues := m.getDisplayIssues()
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(issues) {
		return nil
	}
	iss := issues[idx]

	return func() tea.Msg {
		text := fmt.Sprintf("%s:%d\nRule: %s\nSeverity: %s\n%s\n",
			iss.File, iss.Line, iss.Rule, iss.Severity, iss.Message)
		if err := clipboard.WriteAll(text); err != nil {
			return statusMsg(fmt.Sprintf("Clipboard error: %v", err))
		}
		return statusMsg(fmt.Sprintf("Copied issue at %s:%d", iss.File, iss.Line))
	}
}
