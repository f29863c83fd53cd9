// Package config loads astra-audit configuration from local and global YAML
// files with precedence rules. It is internal; CLI code maps flags and files
// into auditor options.
package config
