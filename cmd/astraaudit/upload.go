package astraaudit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ranga291257/astra/internal/gitio"
	"github.com/ranga291257/astra/internal/types"
	"github.com/ranga291257/astra/pkg/core"
)

const uploadSchemaVersion = "1"

type uploadEnvelope struct {
	Tool    string       `json:"tool"`
	Version string       `json:"version"`
	Schema  string       `json:"schema_version"`
	Repo    string       `json:"repo,omitempty"`
	Commit  string       `json:"commit,omitempty"`
	Branch  string       `json:"branch,omitempty"`
	Issues  []core.Issue `json:"issues"`
}

func uploadIssues(rootPath, url, token string, noMeta bool, issues []core.Issue) error {
	if len(issues) == 0 {
		return nil
	}
	env := uploadEnvelope{Tool: "astra-audit", Version: version, Schema: uploadSchemaVersion, Issues: issues}
	if !noMeta {
		// Best-effort git metadata
		repo, commit, branch := gitio.RepoMetadata(rootPath)
		env.Repo, env.Commit, env.Branch = repo, commit, branch
	}
	body, _ := json.Marshal(env)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	httpClient := &http.Client{Timeout: 10 * time.Second}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("upload status %d", resp.StatusCode)
	}
	return nil
}

// convertIssues adapts internal type to public facade type when needed.
// Currently Issue is a type alias, but keep function for future decoupling.
func convertIssues(in []types.Issue) []core.Issue {
	out := make([]core.Issue, len(in))
	for i := range in {
		out[i] = core.Issue(in[i])
	}
	return out
}
