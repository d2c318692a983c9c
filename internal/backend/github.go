package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ropensci/datahugger-go/internal/dherrors"
	"github.com/ropensci/datahugger-go/internal/entry"
	"github.com/ropensci/datahugger-go/internal/httpapi"
	"github.com/ropensci/datahugger-go/internal/jsonpath"
)

// githubBackend lists a GitHub repository tree at a given branch or
// commit, grounded on original_source/src/datasets/github.rs.
type githubBackend struct {
	owner, repo, branchOrCommit string
}

func init() {
	Register(GitHub, func(args map[string]string) Backend {
		return &githubBackend{owner: args["owner"], repo: args["repo"], branchOrCommit: args["branch_or_commit"]}
	})
}

func (b *githubBackend) RootURL(_ string) string {
	return fmt.Sprintf("https://api.github.com/repos/%s/%s/git/trees/%s", b.owner, b.repo, b.branchOrCommit)
}

// branchOrCommitFromTreeURL recovers the branch/commit from a GitHub tree
// API URL's path, the way the Rust original re-derives it from dir.root_url()
// rather than threading it through separately.
func branchOrCommitFromTreeURL(treeURL string) (string, bool) {
	const marker = "/git/trees/"
	idx := strings.Index(treeURL, marker)
	if idx < 0 {
		return "", false
	}
	rest := treeURL[idx+len(marker):]
	if rest == "" {
		return "", false
	}
	return strings.SplitN(rest, "?", 2)[0], true
}

func (b *githubBackend) List(ctx context.Context, client *httpapi.Client, dir entry.DirMeta) ([]entry.Entry, error) {
	resp, err := client.Get(ctx, dir.APIURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return nil, dherrors.NewRepoError(
			"GitHub API rate limit exceeded. You may need to provide a personal access token via the GITHUB_TOKEN environment variable", nil)
	}
	if resp.StatusCode >= 300 {
		return nil, dherrors.NewRepoError(fmt.Sprintf("HTTP error GET %s: status %d", dir.APIURL, resp.StatusCode), nil)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, dherrors.NewTemporaryRepoError("read response body", err)
	}
	body, err := jsonpath.Decode(raw)
	if err != nil {
		return nil, dherrors.NewRepoError(fmt.Sprintf("failed to parse JSON from %s", dir.APIURL), err)
	}

	tree, err := jsonpath.Extract[[]any](body, "tree")
	if err != nil {
		return nil, dherrors.NewRepoError("no 'tree' field in GitHub API response", err)
	}

	recordID, ok := branchOrCommitFromTreeURL(dir.RootURL)
	if !ok {
		return nil, dherrors.NewRepoError("cannot parse branch or commit from root_url "+dir.RootURL, nil)
	}

	entries := make([]entry.Entry, 0, len(tree))
	for i, raw := range tree {
		path, err := jsonpath.Extract[string](raw, "path")
		if err != nil {
			return nil, dherrors.NewRepoError("missing 'path' in tree entry", err)
		}
		kind, err := jsonpath.Extract[string](raw, "type")
		if err != nil {
			return nil, dherrors.NewRepoError("missing 'type' in tree entry", err)
		}

		switch kind {
		case "blob":
			size, _ := jsonpath.Extract[uint64](raw, "size") // defaults to zero value on miss, matching unwrap_or(0)
			childPath := dir.Path.Join(path)
			downloadURL := fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s", b.owner, b.repo, recordID, childPath.Relative())
			entries = append(entries, entry.NewFileEntry(entry.FileMeta{
				Path:        childPath,
				DownloadURL: downloadURL,
				Size:        &size,
				Endpoint:    entry.Endpoint{ParentURL: dir.APIURL, Key: fmt.Sprintf("tree.%d", i)},
			}))
		case "tree":
			treeURL, err := jsonpath.Extract[string](raw, "url")
			if err != nil {
				return nil, dherrors.NewRepoError("missing 'url' in tree entry", err)
			}
			entries = append(entries, entry.NewDirEntry(entry.NewDir(dir.Path.Join(path), treeURL, dir.RootURL)))
		default:
			return nil, dherrors.NewRepoError("unknown tree type: "+kind, nil)
		}
	}
	return entries, nil
}
