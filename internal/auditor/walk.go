package auditor

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/ranga291257/astra/internal/cache"
	"github.com/ranga291257/astra/internal/types"
)

const targetExt = ".py"

var defaultExcludeDirs = map[string]bool{
	".git":          true,
	"__pycache__":   true,
	".venv":         true,
	"venv":          true,
	".tox":          true,
	".mypy_cache":   true,
	".pytest_cache": true,
	".eggs":         true,
	"node_modules":  true,
}

// Run audits Options.Paths when given, otherwise walks Options.Root. The
// only hard failure is an unusable root; everything below it degrades to
// per-file issues. Traversal order is filepath.WalkDir's lexical order, so
// an unchanged tree always produces the same result.
func (a *Auditor) Run() (Result, error) {
	started := time.Now()
	var res Result

	if len(a.opts.Paths) > 0 {
		for _, p := range a.opts.Paths {
			// relative paths resolve against Root but keep their short form
			// in the report
			read := p
			if !filepath.IsAbs(p) {
				read = filepath.Join(a.opts.Root, p)
			}
			res.Issues = append(res.Issues, a.safeAudit(read, p)...)
			res.FilesScanned++
		}
		res.Duration = time.Since(started)
		a.logSummary(res)
		return res, nil
	}

	info, err := os.Stat(a.opts.Root)
	if err != nil {
		return res, fmt.Errorf("audit root: %w", err)
	}
	if !info.IsDir() {
		res.Issues = a.safeAudit(a.opts.Root, a.opts.Root)
		res.FilesScanned = 1
		res.Duration = time.Since(started)
		a.logSummary(res)
		return res, nil
	}

	var db cache.DB
	if !a.opts.NoCache {
		db, _ = cache.Load(a.opts.Root)
	} else {
		db.Entries = map[string]cache.Entry{}
	}
	updated := map[string]cache.Entry{}

	err = a.walk(func(rel, full string) {
		res.Issues = append(res.Issues, a.auditCached(db, updated, rel, full)...)
		res.FilesScanned++
	})
	if err != nil {
		return res, err
	}
	if !a.opts.NoCache {
		for k, v := range updated {
			db.Entries[k] = v
		}
		_ = cache.Save(a.opts.Root, db)
	}
	res.Duration = time.Since(started)
	a.logSummary(res)
	return res, nil
}

// auditCached replays cached issues when the file content is unchanged,
// otherwise runs the full audit and records the outcome for next time.
func (a *Auditor) auditCached(db cache.DB, updated map[string]cache.Entry, rel, full string) []types.Issue {
	if a.opts.NoCache {
		return a.safeAudit(full, rel)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return readFailure(rel, err)
	}
	sum := cache.HashBytes(data)
	if e, ok := db.Entries[rel]; ok && e.Hash == sum {
		a.log.Debug("cache hit", "file", rel)
		updated[rel] = e
		return append([]types.Issue(nil), e.Issues...)
	}
	issues := a.safeAuditBytes(data, rel)
	updated[rel] = cache.Entry{Hash: sum, Issues: issues}
	return issues
}

func (a *Auditor) logSummary(res Result) {
	a.log.Info("audit complete",
		"files", res.FilesScanned,
		"issues", len(res.Issues),
		"duration", res.Duration.Round(time.Millisecond).String(),
	)
}

// walk traverses the root and invokes handle for each selected file.
func (a *Auditor) walk(handle func(rel, full string)) error {
	root := a.opts.Root
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return fmt.Errorf("audit root: %w", err)
			}
			a.log.Debug("skipping unreadable entry", "path", p, "error", err)
			return nil
		}
		if d.IsDir() {
			if p != root && defaultExcludeDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), targetExt) {
			return nil
		}
		rel, rerr := filepath.Rel(root, p)
		if rerr != nil {
			rel = p
		}
		if !a.selected(rel, d.Name()) {
			return nil
		}
		handle(rel, p)
		return nil
	})
}

// selected applies the exclusion policy: name substrings, path substrings,
// then include/exclude globs.
func (a *Auditor) selected(rel, base string) bool {
	for _, part := range a.opts.ExcludeNameParts {
		if part != "" && strings.Contains(base, part) {
			return false
		}
	}
	slashed := filepath.ToSlash(rel)
	for _, part := range a.opts.ExcludePathParts {
		if part != "" && strings.Contains(slashed, part) {
			return false
		}
	}
	return allowedByGlobs(slashed, a.opts.IncludeGlobs, a.opts.ExcludeGlobs)
}

// allowedByGlobs applies comma-separated include globs as a positive filter
// and subtracts exclude globs last. Patterns match the relative path, with
// a basename fallback so "test_*.py" works without a "**/" prefix.
func allowedByGlobs(rel, includeGlobs, excludeGlobs string) bool {
	includes := parseGlobsList(includeGlobs)
	excludes := parseGlobsList(excludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rel, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rel, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func matchAnyGlob(rel string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}
