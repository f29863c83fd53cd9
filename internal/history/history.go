// Package history keeps a per-repository log of audit runs, one JSON
// record per line. The log lives under .git when available so it never
// lands in a commit.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type RunRecord struct {
	Timestamp      time.Time      `json:"timestamp"`
	RunID          string         `json:"run_id"`
	Root           string         `json:"root"`
	TotalIssues    int            `json:"total_issues"`
	SeverityCounts map[string]int `json:"severity_counts"`
	FilesAudited   int            `json:"files_audited"`
	Duration       string         `json:"duration"`
}

type Log struct {
	path string
}

func NewLog(root string) *Log {
	gitDir := filepath.Join(root, ".git")
	path := filepath.Join(root, ".astra_history.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		path = filepath.Join(gitDir, "astra_history.jsonl")
	}
	return &Log{path: path}
}

func (l *Log) Path() string { return l.path }

// Load returns recorded runs, newest first. Unreadable lines are skipped
// so one corrupt record does not hide the rest.
func (l *Log) Load() ([]RunRecord, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open run history: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record RunRecord
		if err := decoder.Decode(&record); err != nil {
			continue
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (l *Log) Append(record RunRecord) error {
	if record.RunID == "" {
		record.RunID = fmt.Sprintf("run_%d", time.Now().Unix())
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open run history: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("write run record: %w", err)
	}
	return nil
}
