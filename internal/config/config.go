package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for astra-audit.
// Fields are pointers so that CLI code can tell "unset" from "zero"
// when merging flag, local and global values.
type FileConfig struct {
	FailOn  *string `yaml:"fail_on"`
	Format  *string `yaml:"format"`
	NoColor *bool   `yaml:"no_color"`

	EntryFile           *string `yaml:"entry_file"`
	FunctionLengthLimit *int    `yaml:"function_length_limit"`
	ModuleErrorLines    *int    `yaml:"module_error_lines"`
	ModuleWarnLines     *int    `yaml:"module_warn_lines"`
	DocMarkers          *string `yaml:"doc_markers"`

	ExcludeNames *string `yaml:"exclude_names"`
	ExcludePaths *string `yaml:"exclude_paths"`
	Include      *string `yaml:"include"`
	Exclude      *string `yaml:"exclude"`

	Enable  *string `yaml:"enable"`
	Disable *string `yaml:"disable"`

	LogLevel      *string `yaml:"log_level"`
	NoUpdateCheck *bool   `yaml:"no_update_check"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .astra-audit.yml/.yaml and astra-audit.yml/.yaml.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".astra-audit.yml", ".astra-audit.yaml", "astra-audit.yml", "astra-audit.yaml"} {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "astra-audit", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
