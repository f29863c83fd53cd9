// Package validate checks user-supplied option values before an audit
// runs, so a typo in a flag or config file fails fast with a usable
// message instead of silently auditing nothing.
package validate

import (
	"fmt"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

var severities = []string{"ERROR", "WARNING", "INFO"}

var formats = []string{"text", "table", "json", "sarif"}

var logLevels = []string{"trace", "debug", "info", "warn", "error"}

// Severity accepts one of ERROR, WARNING or INFO, case-insensitively.
func Severity(s string) error {
	up := strings.ToUpper(strings.TrimSpace(s))
	for _, v := range severities {
		if up == v {
			return nil
		}
	}
	return fmt.Errorf("invalid severity %q (valid: %s)", s, strings.Join(severities, ", "))
}

// Format accepts one of the report output formats.
func Format(s string) error {
	low := strings.ToLower(strings.TrimSpace(s))
	for _, v := range formats {
		if low == v {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q (valid: %s)", s, strings.Join(formats, ", "))
}

// LogLevel accepts an hclog level name. Empty means "use the default" and
// is fine.
func LogLevel(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	low := strings.ToLower(strings.TrimSpace(s))
	for _, v := range logLevels {
		if low == v {
			return nil
		}
	}
	return fmt.Errorf("invalid log level %q (valid: %s)", s, strings.Join(logLevels, ", "))
}

// RuleIDs checks a comma-separated rule ID list against the known set.
func RuleIDs(csv string, known []string) error {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	idx := map[string]bool{}
	for _, id := range known {
		idx[strings.ToUpper(id)] = true
	}
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !idx[strings.ToUpper(part)] {
			return fmt.Errorf("unknown rule %q (valid: %s)", part, strings.Join(known, ", "))
		}
	}
	return nil
}

// Globs checks every pattern in a comma-separated glob list.
func Globs(csv string) error {
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !doublestar.ValidatePattern(part) {
			return fmt.Errorf("invalid glob pattern %q", part)
		}
	}
	return nil
}
