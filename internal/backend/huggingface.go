package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/ropensci/datahugger-go/internal/dherrors"
	"github.com/ropensci/datahugger-go/internal/entry"
	"github.com/ropensci/datahugger-go/internal/httpapi"
	"github.com/ropensci/datahugger-go/internal/jsonpath"
)

// huggingFaceBackend lists a Hugging Face dataset repository's tree,
// grounded on original_source/src/datasets/huggingface.rs. Unlike that
// draft — which set a sub-directory's root_url to its own freshly built
// tree URL — sub-directories here propagate the dataset's root_url
// unchanged, per the Open Questions decision in SPEC_FULL.md.
type huggingFaceBackend struct {
	owner, repo, revision string
}

func init() {
	Register(HuggingFace, func(args map[string]string) Backend {
		return &huggingFaceBackend{owner: args["owner"], repo: args["repo"], revision: args["revision"]}
	})
}

func (b *huggingFaceBackend) RootURL(_ string) string {
	return fmt.Sprintf("https://huggingface.co/api/datasets/%s/%s/tree/%s", b.owner, b.repo, b.revision)
}

func (b *huggingFaceBackend) downloadURL(relativePath string) string {
	return fmt.Sprintf("https://huggingface.co/datasets/%s/%s/resolve/%s/%s", b.owner, b.repo, b.revision, relativePath)
}

func (b *huggingFaceBackend) List(ctx context.Context, client *httpapi.Client, dir entry.DirMeta) ([]entry.Entry, error) {
	resp, err := client.Get(ctx, dir.APIURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return nil, dherrors.NewRepoError("Hugging Face API rate limit exceeded", nil)
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

	files, ok := body.([]any)
	if !ok {
		return nil, dherrors.NewRepoError("expected array from Hugging Face tree API", nil)
	}

	entries := make([]entry.Entry, 0, len(files))
	for i, raw := range files {
		fullPath, err := jsonpath.Extract[string](raw, "path")
		if err != nil {
			return nil, dherrors.NewRepoError("missing 'path'", err)
		}
		basename := path.Base(fullPath)
		kind, err := jsonpath.Extract[string](raw, "type")
		if err != nil {
			return nil, dherrors.NewRepoError("missing 'type'", err)
		}

		switch kind {
		case "file":
			size, err := jsonpath.Extract[uint64](raw, "size")
			if err != nil {
				return nil, dherrors.NewRepoError(fmt.Sprintf("missing size from %s", dir.APIURL), err)
			}
			checksum, err := jsonpath.Extract[string](raw, "lfs.oid")
			if err != nil {
				checksum, err = jsonpath.Extract[string](raw, "oid")
				if err != nil {
					return nil, dherrors.NewRepoError(fmt.Sprintf("missing 'lfs.oid' from %s", dir.APIURL), err)
				}
			}
			childPath := dir.Path.Join(basename)
			entries = append(entries, entry.NewFileEntry(entry.FileMeta{
				Path:        childPath,
				DownloadURL: b.downloadURL(childPath.Relative()),
				Size:        &size,
				Checksum:    []entry.Checksum{{Kind: entry.SHA256, Hex: checksum}},
				Endpoint:    entry.Endpoint{ParentURL: dir.APIURL, Key: fmt.Sprintf("filej.%d", i)},
			}))
		case "directory":
			// HF's "path" field is relative to the repo root, not to the
			// parent directory, so the sub-listing URL extends root_url
			// (not dir.APIURL) by that full repo-relative path; only the
			// local crawl path uses the basename.
			subAPIURL := dir.RootURL + "/" + fullPath
			entries = append(entries, entry.NewDirEntry(entry.NewDir(dir.Path.Join(basename), subAPIURL, dir.RootURL)))
		default:
			return nil, dherrors.NewRepoError("unknown HF entry type: "+kind, nil)
		}
	}
	return entries, nil
}
