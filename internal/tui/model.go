package tui

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ranga291257/astra/internal/types"
)

var (
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	detailPaneBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	emptyTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Align(lipgloss.Center)

	popupStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Background(lipgloss.Color("235")).
			Padding(1, 4)

	sevErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	sevWarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	sevInfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// severityText returns plain text for severity (ANSI codes break table truncation).
func severityText(s types.Severity) string {
	switch s {
	case types.SevError:
		return "ERROR"
	case types.SevWarning:
		return "WARN"
	case types.SevInfo:
		return "INFO"
	default:
		return string(s)
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// Model represents the main state of the issue browser.
type Model struct {
	table          table.Model
	viewport       viewport.Model
	spinner        spinner.Model
	issues         []types.Issue
	filteredIssues []types.Issue // Issues after filter applied (nil = no filter)
	filteredIdx    []int         // Maps filtered index to original issues index
	quitting       bool
	ready          bool       // Terminal dimensions known
	auditing       bool       // True while a re-audit runs
	hasAuditedOnce bool
	lastAuditTime  time.Time
	height         int
	width          int
	statusMessage  string
	statusTimeout  *time.Time
	reauditFunc    func() ([]types.Issue, error)
	showEmpty      bool
	showHelp       bool

	// Search & filter state
	searchMode     bool
	searchInput    textinput.Model
	searchQuery    string
	severityFilter types.Severity // "" = no filter

	// Source context shown around the issue line
	contextLines int
	pendingKey   string // For multi-key sequences like "gg"
}

// NewModel initializes a new issue browser model.
func NewModel(issues []types.Issue, reauditFunc func() ([]types.Issue, error)) Model {
	columns := []table.Column{
		{Title: "Sev", Width: 7},
		{Title: "Rule", Width: 18},
		{Title: "Location", Width: 32},
		{Title: "Message", Width: 45},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(issueRows(issues)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Padding(0, 1).
		Align(lipgloss.Left)

	s.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("232")).
		Background(lipgloss.Color("208")).
		Bold(true).
		Padding(0, 1)

	s.Cell = lipgloss.NewStyle().
		Padding(0, 1)

	t.SetStyles(s)

	// Line spinner avoids Braille characters that render poorly on some terminals
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	ti := textinput.New()
	ti.Placeholder = "Search file, rule, or message..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.Prompt = "/ "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))

	m := Model{
		table:          t,
		spinner:        sp,
		issues:         issues,
		reauditFunc:    reauditFunc,
		showEmpty:      len(issues) == 0,
		hasAuditedOnce: true,
		lastAuditTime:  time.Now(),
		searchInput:    ti,
		contextLines:   LoadPrefs().ContextLines,
	}

	if m.showEmpty {
		m.statusMessage = "q: quit | r: re-audit"
	} else {
		m.statusMessage = "q: quit | ?: help | j/k: navigate | o: open | r: re-audit | y: copy"
	}

	return m
}

func issueRows(issues []types.Issue) []table.Row {
	rows := make([]table.Row, len(issues))
	for i, iss := range issues {
		rows[i] = table.Row{
			severityText(iss.Severity),
			iss.Rule,
			fmt.Sprintf("%s:%d", iss.File, iss.Line),
			iss.Message,
		}
	}
	return rows
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *Model) reaudit() tea.Cmd {
	return func() tea.Msg {
		if m.reauditFunc == nil {
			return statusMsg("Re-audit not available")
		}
		issues, err := m.reauditFunc()
		if err != nil {
			return statusMsg(fmt.Sprintf("Audit error: %v", err))
		}
		return issuesMsg(issues)
	}
}

type issuesMsg []types.Issue

func (m *Model) applyFilters() {
	hasSearchFilter := m.searchQuery != ""
	hasSeverityFilter := m.severityFilter != ""

	if !hasSearchFilter && !hasSeverityFilter {
		m.filteredIssues = nil
		m.filteredIdx = nil
		m.rebuildTableRows()
		return
	}

	var filtered []types.Issue
	var indices []int
	query := strings.ToLower(m.searchQuery)

	for i, iss := range m.issues {
		if hasSeverityFilter && iss.Severity != m.severityFilter {
			continue
		}
		if hasSearchFilter {
			fileMatch := strings.Contains(strings.ToLower(iss.File), query)
			ruleMatch := strings.Contains(strings.ToLower(iss.Rule), query)
			msgMatch := strings.Contains(strings.ToLower(iss.Message), query)
			if !fileMatch && !ruleMatch && !msgMatch {
				continue
			}
		}
		filtered = append(filtered, iss)
		indices = append(indices, i)
	}

	m.filteredIssues = filtered
	m.filteredIdx = indices
	m.rebuildTableRows()
}

func (m *Model) clearFilters() {
	m.searchQuery = ""
	m.severityFilter = ""
	m.filteredIssues = nil
	m.filteredIdx = nil
	m.rebuildTableRows()
}

func (m *Model) rebuildTableRows() {
	issues := m.getDisplayIssues()
	m.table.SetRows(issueRows(issues))
	if m.table.Cursor() >= len(issues) {
		m.table.SetCursor(0)
	}
	m.showEmpty = len(issues) == 0
	m.updateViewportContent()
}

func (m *Model) getDisplayIssues() []types.Issue {
	if m.filteredIssues != nil {
		return m.filteredIssues
	}
	return m.issues
}

// jumpToNextSeverity moves the cursor to the next issue with the given
// severity in the given direction, wrapping around. Returns false when
// no such issue exists.
func (m *Model) jumpToNextSeverity(severity types.Severity, direction int) bool {
	issues := m.getDisplayIssues()
	if len(issues) == 0 {
		return false
	}
	start := m.table.Cursor()
	for step := 1; step <= len(issues); step++ {
		idx := (start + direction*step + len(issues)*step) % len(issues)
		if issues[idx].Severity == severity {
			m.table.SetCursor(idx)
			return true
		}
	}
	return false
}

func (m *Model) expandContext() {
	if m.contextLines < 25 {
		m.contextLines += 2
		_ = SavePrefs(Prefs{ContextLines: m.contextLines})
	}
	m.updateViewportContent()
}

func (m *Model) contractContext() {
	if m.contextLines > 1 {
		m.contextLines -= 2
		if m.contextLines < 1 {
			m.contextLines = 1
		}
		_ = SavePrefs(Prefs{ContextLines: m.contextLines})
	}
	m.updateViewportContent()
}

func readFileContext(path string, targetLine int, contextLines int) ([]string, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	startLine := targetLine - contextLines
	if startLine < 1 {
		startLine = 1
	}
	endLine := targetLine + contextLines

	var lines []string
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines, startLine, scanner.Err()
}

func highlightLine(line string, filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		ext := filepath.Ext(filename)
		if ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	if lexer == nil {
		return line // No highlighting for unknown file types
	}

	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return line
	}

	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return line
	}

	return strings.TrimSuffix(buf.String(), "\n")
}

func (m *Model) updateViewportContent() {
	issues := m.getDisplayIssues()
	if len(issues) == 0 || !m.ready {
		m.viewport.SetContent("")
		return
	}

	idx := m.table.Cursor()
	if idx >= 0 && idx < len(issues) {
		m.updateViewportContentForIssue(issues[idx])
	}
}

func (m *Model) updateViewportContentForIssue(iss types.Issue) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s\n\n", titleStyle.Render("Issue Details")))

	b.WriteString(fmt.Sprintf("%s %s\n", keyStyle.Render("File:"), iss.File))
	b.WriteString(fmt.Sprintf("%s %s\n", keyStyle.Render("Rule:"), iss.Rule))
	b.WriteString(fmt.Sprintf("%s %s\n", keyStyle.Render("Severity:"), severityStyleFor(iss.Severity).Render(string(iss.Severity))))
	b.WriteString(fmt.Sprintf("%s %d\n", keyStyle.Render("Line:"), iss.Line))
	b.WriteString(fmt.Sprintf("%s %s\n", keyStyle.Render("Message:"), iss.Message))

	contextHint := fmt.Sprintf(" (+/- to expand/contract, showing %d lines)", m.contextLines*2+1)
	b.WriteString(fmt.Sprintf("\n%s%s\n",
		keyStyle.Render("Context:"),
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(contextHint)))

	target := iss.Line
	if target < 1 {
		target = 1 // file-level issues point at the top of the file
	}

	lines, startLine, err := readFileContext(iss.File, target, m.contextLines)
	if err != nil || len(lines) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true).Render("(source not available)"))
		b.WriteString("\n")
		m.viewport.SetContent(b.String())
		return
	}

	lineNumStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	markedLineStyle := lipgloss.NewStyle().Background(lipgloss.Color("236"))

	for i, line := range lines {
		lineNum := startLine + i
		lineNumStr := lineNumStyle.Render(fmt.Sprintf("%4d ", lineNum))
		highlighted := highlightLine(line, iss.File)
		if lineNum == target {
			b.WriteString(lineNumStr + markedLineStyle.Render(highlighted) + "\n")
		} else {
			b.WriteString(lineNumStr + highlighted + "\n")
		}
	}

	m.viewport.SetContent(b.String())
}

func severityStyleFor(s types.Severity) lipgloss.Style {
	switch s {
	case types.SevError:
		return sevErrorStyle
	case types.SevWarning:
		return sevWarningStyle
	default:
		return sevInfoStyle
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if m.searchMode {
			switch msg.String() {
			case "enter":
				m.searchQuery = m.searchInput.Value()
				m.searchMode = false
				m.searchInput.Blur()
				return m, nil
			case "esc":
				m.searchMode = false
				m.searchInput.Blur()
				m.searchInput.SetValue(m.searchQuery)
				m.applyFilters()
				return m, nil
			default:
				m.searchInput, cmd = m.searchInput.Update(msg)
				m.searchQuery = m.searchInput.Value()
				m.applyFilters()
				return m, cmd
			}
		}

		if m.pendingKey == "g" {
			m.pendingKey = ""
			if msg.String() == "g" && !m.showEmpty {
				m.table.GotoTop()
				m.updateViewportContent()
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "/":
			if !m.showEmpty || len(m.issues) > 0 {
				m.searchMode = true
				m.searchInput.SetValue(m.searchQuery)
				m.searchInput.Focus()
				return m, textinput.Blink
			}
		case "1":
			m.severityFilter = types.SevError
			m.applyFilters()
			m.setStatus("Showing ERROR severity only (Esc to clear)", 3*time.Second)
			return m, nil
		case "2":
			m.severityFilter = types.SevWarning
			m.applyFilters()
			m.setStatus("Showing WARNING severity only (Esc to clear)", 3*time.Second)
			return m, nil
		case "3":
			m.severityFilter = types.SevInfo
			m.applyFilters()
			m.setStatus("Showing INFO severity only (Esc to clear)", 3*time.Second)
			return m, nil
		case "esc":
			if m.searchQuery != "" || m.severityFilter != "" {
				m.clearFilters()
				m.setStatus("Filters cleared", 3*time.Second)
				return m, nil
			}
		case "n": // next ERROR
			if !m.showEmpty {
				if m.jumpToNextSeverity(types.SevError, 1) {
					m.updateViewportContent()
				} else {
					m.setStatus("No more ERROR issues", 2*time.Second)
				}
				return m, nil
			}
		case "N": // prev ERROR
			if !m.showEmpty {
				if m.jumpToNextSeverity(types.SevError, -1) {
					m.updateViewportContent()
				} else {
					m.setStatus("No more ERROR issues", 2*time.Second)
				}
				return m, nil
			}
		case "o", "enter":
			if !m.showEmpty {
				return m, m.openEditor()
			}
		case "+", "=":
			if !m.showEmpty {
				m.expandContext()
				m.setStatus(fmt.Sprintf("Context: %d lines", m.contextLines*2+1), 2*time.Second)
				return m, nil
			}
		case "-", "_":
			if !m.showEmpty {
				m.contractContext()
				m.setStatus(fmt.Sprintf("Context: %d lines", m.contextLines*2+1), 2*time.Second)
				return m, nil
			}
		case "y": // copy location
			if !m.showEmpty {
				return m, m.copyLocationToClipboard()
			}
		case "Y": // copy full issue
			if !m.showEmpty {
				return m, m.copyIssueToClipboard()
			}
		case "r":
			if m.reauditFunc == nil {
				m.setStatus("Re-audit not available", 3*time.Second)
				return m, nil
			}
			if !m.auditing {
				m.auditing = true
				m.statusMessage = "Re-auditing..."
				return m, m.reaudit()
			}
		case "?", "h":
			m.showHelp = !m.showHelp
			return m, nil
		case "down", "j", "up", "k":
			if !m.showEmpty {
				m.table, cmd = m.table.Update(msg)
				m.updateViewportContent()
				return m, cmd
			}
		case "ctrl+d":
			if !m.showEmpty {
				m.moveHalfPage(1)
				return m, nil
			}
		case "ctrl+u":
			if !m.showEmpty {
				m.moveHalfPage(-1)
				return m, nil
			}
		case "ctrl+f", "pgdown":
			if !m.showEmpty {
				m.table.MoveDown(m.table.Height())
				m.updateViewportContent()
				return m, nil
			}
		case "ctrl+b", "pgup":
			if !m.showEmpty {
				m.table.MoveUp(m.table.Height())
				m.updateViewportContent()
				return m, nil
			}
		case "g":
			m.pendingKey = "g"
			return m, nil
		case "home":
			if !m.showEmpty {
				m.table.GotoTop()
				m.updateViewportContent()
				return m, nil
			}
		case "G", "end":
			if !m.showEmpty {
				m.table.GotoBottom()
				m.updateViewportContent()
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		usableWidth := m.width - 10
		sevWidth := 7
		ruleWidth := 18
		remainingWidth := usableWidth - sevWidth - ruleWidth
		locWidth := int(float64(remainingWidth) * 0.4)
		msgWidth := remainingWidth - locWidth
		if locWidth < 20 {
			locWidth = 20
		}
		if msgWidth < 25 {
			msgWidth = 25
		}

		cols := m.table.Columns()
		cols[0].Width = sevWidth
		cols[1].Width = ruleWidth
		cols[2].Width = locWidth
		cols[3].Width = msgWidth
		m.table.SetColumns(cols)

		statsHeaderHeight := 1
		availableHeight := m.height - lipgloss.Height(statusStyle.Render("")) - statsHeaderHeight
		tableHeight := int(float64(availableHeight) * 0.45)
		viewportHeight := availableHeight - tableHeight - detailPaneBorderStyle.GetVerticalFrameSize() - 1

		m.table.SetWidth(m.width)
		m.table.SetHeight(tableHeight)

		if m.viewport.Height == 0 {
			m.viewport = viewport.New(m.width, viewportHeight)
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()
		statusStyle = statusStyle.Width(m.width)

	case issuesMsg:
		m.issues = msg
		m.filteredIssues = nil
		m.filteredIdx = nil
		m.searchQuery = ""
		m.severityFilter = ""
		m.lastAuditTime = time.Now()
		m.rebuildTableRows()
		if m.showEmpty {
			m.table.SetCursor(0)
		}

		m.auditing = false
		m.hasAuditedOnce = true
		if m.showEmpty {
			m.setStatus("Re-audit complete - no issues found", 5*time.Second)
		} else {
			m.setStatus(fmt.Sprintf("Re-audit complete - %d issue(s)", len(m.issues)), 5*time.Second)
		}

	case statusMsg:
		m.auditing = false
		m.setStatus(string(msg), 3*time.Second)

	case spinner.TickMsg:
		var spinCmd tea.Cmd
		m.spinner, spinCmd = m.spinner.Update(msg)
		if m.statusTimeout != nil && time.Now().After(*m.statusTimeout) {
			m.statusTimeout = nil
			if m.showEmpty {
				m.statusMessage = "q: quit | r: re-audit"
			} else {
				m.statusMessage = "q: quit | ?: help | j/k: navigate | o: open | r: re-audit | y: copy"
			}
		}
		return m, spinCmd
	}

	if !m.quitting && !m.showEmpty {
		shouldUpdate := true
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			key := keyMsg.String()
			if key == "down" || key == "j" || key == "up" || key == "k" {
				shouldUpdate = false
			}
		}
		if shouldUpdate {
			m.table, cmd = m.table.Update(msg)
		}
	}

	m.updateViewportContent()
	return m, cmd
}

func (m *Model) setStatus(text string, d time.Duration) {
	timeout := time.Now().Add(d)
	m.statusTimeout = &timeout
	m.statusMessage = text
}

func (m *Model) moveHalfPage(direction int) {
	halfPage := m.table.Height() / 2
	if halfPage < 1 {
		halfPage = 1
	}
	if direction > 0 {
		m.table.MoveDown(halfPage)
	} else {
		m.table.MoveUp(halfPage)
	}
	m.updateViewportContent()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	if m.auditing {
		msgContent := fmt.Sprintf("%s  Re-auditing...\n\nPlease wait", m.spinner.View())
		popupBox := popupStyle.
			Width(55).
			Align(lipgloss.Center).
			Render(msgContent)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, popupBox)
	}

	displayIssues := m.getDisplayIssues()
	var errCount, warnCount, infoCount int
	for _, iss := range displayIssues {
		switch iss.Severity {
		case types.SevError:
			errCount++
		case types.SevWarning:
			warnCount++
		default:
			infoCount++
		}
	}

	var statsContent string
	if len(m.issues) == 0 {
		statsContent = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("[OK] No issues found")
	} else {
		var filterInfo string
		if m.searchQuery != "" || m.severityFilter != "" {
			var parts []string
			if m.searchQuery != "" {
				parts = append(parts, fmt.Sprintf("search:'%s'", m.searchQuery))
			}
			if m.severityFilter != "" {
				parts = append(parts, fmt.Sprintf("sev:%s", severityText(m.severityFilter)))
			}
			filterInfo = fmt.Sprintf("  [FILTER: %s]", strings.Join(parts, ", "))
		}

		if m.filteredIssues != nil {
			statsContent = fmt.Sprintf(
				"Showing: %d/%d  |  %s %-4d  |  %s %-4d  |  %s %-4d%s",
				len(displayIssues),
				len(m.issues),
				sevErrorStyle.Render("Errors:"),
				errCount,
				sevWarningStyle.Render("Warnings:"),
				warnCount,
				sevInfoStyle.Render("Info:"),
				infoCount,
				filterInfo,
			)
		} else {
			statsContent = fmt.Sprintf(
				"Total: %-4d  |  %s %-4d  |  %s %-4d  |  %s %-4d",
				len(m.issues),
				sevErrorStyle.Render("Errors:"),
				errCount,
				sevWarningStyle.Render("Warnings:"),
				warnCount,
				sevInfoStyle.Render("Info:"),
				infoCount,
			)
		}
	}

	statsHeader := lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 2).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("237")).
		Render(statsContent)

	tableRender := tableBorderStyle.
		Width(m.width).
		Height(m.table.Height()).
		Render(m.table.View())

	var detailContent string
	if len(displayIssues) == 0 {
		var emptyMsg string
		if len(m.issues) == 0 {
			emptyMsg = "No issues to review.\n\nPress 'r' to re-audit\nPress '?' for help"
		} else {
			emptyMsg = "No issues match filter.\n\nPress 'Esc' to clear filter"
		}
		detailContent = lipgloss.Place(
			m.width,
			m.viewport.Height,
			lipgloss.Center,
			lipgloss.Center,
			emptyTextStyle.Render(emptyMsg),
		)
	} else {
		detailContent = m.viewport.View()
	}

	detailRender := detailPaneBorderStyle.
		Width(m.width).
		Height(m.viewport.Height).
		Render(detailContent)

	var timeInfo string
	if !m.lastAuditTime.IsZero() {
		timeInfo = fmt.Sprintf("Audited: %s ago", formatDuration(time.Since(m.lastAuditTime)))
	}

	statusLeft := m.statusMessage
	statusRight := timeInfo
	leftWidth := lipgloss.Width(statusLeft)
	rightWidth := lipgloss.Width(statusRight)
	availWidth := m.width - 4
	spacer := availWidth - leftWidth - rightWidth
	if spacer < 1 {
		spacer = 1
	}

	var statusContent string
	if timeInfo != "" {
		statusContent = statusLeft + strings.Repeat(" ", spacer) + statusRight
	} else {
		statusContent = statusLeft
	}

	statusRender := statusStyle.
		Width(m.width).
		Padding(0, 2).
		Render(statusContent)

	var bottomBar string
	if m.searchMode {
		matchCount := len(m.getDisplayIssues())
		searchStatus := fmt.Sprintf(" (%d matches)", matchCount)
		searchBarStyle := lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("15")).
			Width(m.width).
			Padding(0, 1)
		bottomBar = searchBarStyle.Render(m.searchInput.View() + searchStatus)
	} else {
		bottomBar = statusRender
	}

	mainView := lipgloss.JoinVertical(lipgloss.Left,
		statsHeader,
		tableRender,
		detailRender,
		bottomBar,
	)

	if m.showHelp {
		return m.helpView()
	}

	return mainView
}

func (m Model) helpView() string {
	helpTitleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	keyColor := lipgloss.Color("10")
	descColor := lipgloss.Color("250")

	formatRow := func(key, desc string) string {
		keyStyled := lipgloss.NewStyle().Foreground(keyColor).Render(key)
		descStyled := lipgloss.NewStyle().Foreground(descColor).Render(desc)
		padding := 12 - len(key)
		if padding < 1 {
			padding = 1
		}
		return "  " + keyStyled + strings.Repeat(" ", padding) + descStyled
	}

	var lines []string
	lines = append(lines, helpTitleStyle.Render("Keyboard Shortcuts"))
	lines = append(lines, "")
	lines = append(lines, sectionStyle.Render("Navigation"))
	lines = append(lines, formatRow("j / k", "Move down / up"))
	lines = append(lines, formatRow("Ctrl+d/u", "Half-page down / up"))
	lines = append(lines, formatRow("Ctrl+f/b", "Full page down / up"))
	lines = append(lines, formatRow("gg / G", "First / last row"))
	lines = append(lines, formatRow("n / N", "Next / prev ERROR"))
	lines = append(lines, "")
	lines = append(lines, sectionStyle.Render("Search & Filter"))
	lines = append(lines, formatRow("/", "Search issues"))
	lines = append(lines, formatRow("1 / 2 / 3", "Filter ERROR / WARNING / INFO"))
	lines = append(lines, formatRow("Esc", "Clear filters"))
	lines = append(lines, "")
	lines = append(lines, sectionStyle.Render("Context"))
	lines = append(lines, formatRow("+ / -", "Expand / contract context"))
	lines = append(lines, "")
	lines = append(lines, sectionStyle.Render("Actions"))
	lines = append(lines, formatRow("Enter", "Open in $EDITOR"))
	lines = append(lines, formatRow("y / Y", "Copy location / full issue"))
	lines = append(lines, formatRow("r", "Re-audit"))
	lines = append(lines, "")
	lines = append(lines, sectionStyle.Render("Other"))
	lines = append(lines, formatRow("?", "Toggle help"))
	lines = append(lines, formatRow("q", "Quit"))
	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Italic(true).
		Render("Press any key to close"))

	helpContent := lipgloss.JoinVertical(lipgloss.Left, lines...)
	helpBox := popupStyle.Width(44).Padding(1, 3).Render(helpContent)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpBox)
}
