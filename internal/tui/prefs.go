package tui

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Prefs holds browser settings that persist across runs.
type Prefs struct {
	ContextLines int `json:"context_lines"`
}

func DefaultPrefs() Prefs {
	return Prefs{ContextLines: 5}
}

func prefsPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "astra-audit", "tui_prefs.json"), nil
}

// LoadPrefs returns saved preferences, falling back to defaults on any
// error. A missing or corrupt prefs file is not worth surfacing.
func LoadPrefs() Prefs {
	path, err := prefsPath()
	if err != nil {
		return DefaultPrefs()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultPrefs()
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return DefaultPrefs()
	}
	if p.ContextLines < 1 {
		p.ContextLines = DefaultPrefs().ContextLines
	}
	return p
}

func SavePrefs(p Prefs) error {
	path, err := prefsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
