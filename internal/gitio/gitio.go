// Package gitio answers "which Python files changed" for incremental
// audits, using go-git so no git binary is required on the host.
package gitio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

func openRepo(root string) (*git.Repository, *git.Worktree, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, nil, fmt.Errorf("open repository at %s: %w", root, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, nil, fmt.Errorf("repository worktree: %w", err)
	}
	return repo, wt, nil
}

// ChangedFiles lists Python files under root that differ from the given
// base revision: committed changes since base plus staged, unstaged and
// untracked edits. Paths come back relative to root, sorted; files
// deleted since base are dropped.
func ChangedFiles(root, base string) ([]string, error) {
	repo, wt, err := openRepo(root)
	if err != nil {
		return nil, err
	}

	baseHash, err := repo.ResolveRevision(plumbing.Revision(base))
	if err != nil {
		return nil, fmt.Errorf("resolve revision %q: %w", base, err)
	}
	baseCommit, err := repo.CommitObject(*baseHash)
	if err != nil {
		return nil, err
	}
	baseTree, err := baseCommit.Tree()
	if err != nil {
		return nil, err
	}

	candidates := map[string]struct{}{}

	if head, err := repo.Head(); err == nil {
		headCommit, err := repo.CommitObject(head.Hash())
		if err != nil {
			return nil, err
		}
		headTree, err := headCommit.Tree()
		if err != nil {
			return nil, err
		}
		patch, err := baseTree.Patch(headTree)
		if err != nil {
			return nil, fmt.Errorf("diff against %q: %w", base, err)
		}
		for _, fp := range patch.FilePatches() {
			_, to := fp.Files()
			if to == nil {
				continue // deleted since base
			}
			candidates[to.Path()] = struct{}{}
		}
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("worktree status: %w", err)
	}
	for path, st := range status {
		if st.Staging == git.Unmodified && st.Worktree == git.Unmodified {
			continue
		}
		candidates[path] = struct{}{}
	}

	return selectPython(root, wt.Filesystem.Root(), candidates)
}

// StagedFiles lists Python files with changes staged in the index,
// relative to root. This is the pre-commit hook entry point.
func StagedFiles(root string) ([]string, error) {
	_, wt, err := openRepo(root)
	if err != nil {
		return nil, err
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("worktree status: %w", err)
	}
	candidates := map[string]struct{}{}
	for path, st := range status {
		switch st.Staging {
		case git.Added, git.Modified, git.Renamed, git.Copied:
			candidates[path] = struct{}{}
		}
	}
	return selectPython(root, wt.Filesystem.Root(), candidates)
}

// selectPython filters repo-relative candidates down to Python files
// that still exist and live under the audit root, re-keyed relative to
// that root.
func selectPython(root, wtRoot string, candidates map[string]struct{}) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	var out []string
	for repoRel := range candidates {
		if !strings.HasSuffix(repoRel, ".py") {
			continue
		}
		abs := filepath.Join(wtRoot, filepath.FromSlash(repoRel))
		if _, err := os.Stat(abs); err != nil {
			continue // gone from the worktree; nothing to audit
		}
		rel, err := filepath.Rel(absRoot, abs)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue // outside the audit root
		}
		out = append(out, rel)
	}
	sort.Strings(out)
	return out, nil
}

// RepoMetadata returns (repo, commit, branch) best-effort for the given
// root. Empty strings are returned on failure so callers can log what
// they have without error plumbing.
func RepoMetadata(root string) (string, string, string) {
	repo, _, err := openRepo(root)
	if err != nil {
		return "", "", ""
	}

	name := ""
	if remote, err := repo.Remote("origin"); err == nil {
		if cfg := remote.Config(); cfg != nil && len(cfg.URLs) > 0 {
			name = shortRepoName(cfg.URLs[0])
		}
	}

	commit, branch := "", ""
	if head, err := repo.Head(); err == nil {
		commit = head.Hash().String()
		if head.Name().IsBranch() {
			branch = head.Name().Short()
		}
	}
	return name, commit, branch
}

// shortRepoName reduces a remote URL to owner/name when possible.
func shortRepoName(url string) string {
	s := strings.TrimSuffix(strings.TrimSpace(url), ".git")
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.Index(s, "github.com/"); i >= 0 {
		s = s[i+len("github.com/"):]
	}
	return s
}
