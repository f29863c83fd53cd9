// Package rules holds the audit rule registry. Every rule is a pure value:
// it inspects one parsed file and returns issues, with no I/O and no state
// carried between calls. Registry order is fixed so reports are stable.
package rules

import (
	"path/filepath"
	"strings"

	"github.com/ranga291257/astra/internal/pyast"
	"github.com/ranga291257/astra/internal/types"
)

// File is one source file handed to every rule: the display path, the
// parsed structure, and the raw content split on "\n". A trailing newline
// therefore contributes a final empty element, and the line count the
// size check sees includes it.
type File struct {
	Path  string
	Tree  *pyast.Module
	Lines []string
}

// Base returns the file name without its directory.
func (f *File) Base() string { return filepath.Base(f.Path) }

// Rule inspects one file and reports issues.
type Rule interface {
	ID() string
	Severity() types.Severity
	Describe() string
	Check(f *File) []types.Issue
}

// Options carries the thresholds rules read. Zero values fall back to the
// documented defaults.
type Options struct {
	FunctionLengthLimit int
	ModuleErrorLines    int
	ModuleWarnLines     int
	EntryFile           string
	DocMarkers          []string
}

// DefaultOptions returns the thresholds the ASTRA coding standards define.
func DefaultOptions() Options {
	return Options{
		FunctionLengthLimit: 50,
		ModuleErrorLines:    1000,
		ModuleWarnLines:     500,
		EntryFile:           "ASTRA.py",
		DocMarkers:          []string{"Contract:", "Args:", "Parameters", "Returns"},
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.FunctionLengthLimit <= 0 {
		o.FunctionLengthLimit = d.FunctionLengthLimit
	}
	if o.ModuleErrorLines <= 0 {
		o.ModuleErrorLines = d.ModuleErrorLines
	}
	if o.ModuleWarnLines <= 0 {
		o.ModuleWarnLines = d.ModuleWarnLines
	}
	if o.EntryFile == "" {
		o.EntryFile = d.EntryFile
	}
	if len(o.DocMarkers) == 0 {
		o.DocMarkers = d.DocMarkers
	}
	return o
}

// All builds the registry in its fixed order.
func All(opts Options) []Rule {
	opts = opts.withDefaults()
	return []Rule{
		TypeHints{},
		Docstrings{Markers: opts.DocMarkers},
		FunctionLength{Limit: opts.FunctionLengthLimit},
		GlobalState{},
		ModuleStructure{
			EntryFile:  opts.EntryFile,
			ErrorLines: opts.ModuleErrorLines,
			WarnLines:  opts.ModuleWarnLines,
		},
		ErrorHandling{},
	}
}

// Info describes one rule for listings and report metadata.
type Info struct {
	ID       string
	Severity types.Severity
	Summary  string
}

// Catalog lists every registered rule with default options.
func Catalog() []Info {
	var out []Info
	for _, r := range All(Options{}) {
		out = append(out, Info{ID: r.ID(), Severity: r.Severity(), Summary: r.Describe()})
	}
	return out
}

// IDs lists the registry's rule identifiers in order.
func IDs() []string {
	var out []string
	for _, r := range All(Options{}) {
		out = append(out, r.ID())
	}
	return out
}

// auditable reports whether a function name is in scope. A single leading
// underscore marks a private helper and is skipped; dunder names stay in.
func auditable(name string) bool {
	if strings.HasPrefix(name, "__") {
		return true
	}
	return !strings.HasPrefix(name, "_")
}
