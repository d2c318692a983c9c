package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ropensci/datahugger-go/internal/dherrors"
	"github.com/ropensci/datahugger-go/internal/entry"
	"github.com/ropensci/datahugger-go/internal/httpapi"
	"github.com/ropensci/datahugger-go/internal/jsonpath"
)

// dataverseDataset lists every file of one Dataverse dataset version,
// grounded on original_source/src/repo_impl.rs's DataverseDataset and
// adapted in place from backend/doi/dataverse.go's listDataverseDoiFiles
// (see DESIGN.md). Unlike the Rust draft — which hardcoded the download
// host to dataverse.harvard.edu regardless of the dataset's own
// installation — download URLs here are built against baseURL, matching
// backend/doi/dataverse.go's use of f.endpoint for exactly this purpose.
type dataverseDataset struct {
	baseURL string
	version string
}

// dataverseFile lists the single file addressed by a Dataverse
// persistentId pointing directly at a file rather than a dataset.
type dataverseFile struct {
	baseURL string
	version string
}

func init() {
	Register(Dataverse, func(args map[string]string) Backend {
		return &dataverseDataset{baseURL: args["base_url"], version: versionOr(args["version"])}
	})
	Register(DataverseFile, func(args map[string]string) Backend {
		return &dataverseFile{baseURL: args["base_url"], version: versionOr(args["version"])}
	})
}

func versionOr(v string) string {
	if v == "" {
		return ":latest-published"
	}
	return v
}

func (b *dataverseDataset) RootURL(persistentID string) string {
	u, _ := url.Parse(b.baseURL)
	u.Path = fmt.Sprintf("/api/datasets/:persistentId/versions/%s", b.version)
	q := url.Values{}
	q.Set("persistentId", persistentID)
	u.RawQuery = q.Encode()
	return u.String()
}

func (b *dataverseDataset) List(ctx context.Context, client *httpapi.Client, dir entry.DirMeta) ([]entry.Entry, error) {
	resp, err := client.GetJSON(ctx, dir.APIURL)
	if err != nil {
		return nil, err
	}

	files, err := jsonpath.Extract[[]any](resp, "data.files")
	if err != nil {
		return nil, dherrors.NewRepoError("data.files did not resolve to an array", err)
	}

	entries := make([]entry.Entry, 0, len(files))
	for _, raw := range files {
		fm, err := b.fileMetaFrom(dir, raw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry.NewFileEntry(fm))
	}
	return entries, nil
}

func (b *dataverseDataset) fileMetaFrom(dir entry.DirMeta, raw any) (entry.FileMeta, error) {
	name, err := jsonpath.Extract[string](raw, "dataFile.filename")
	if err != nil {
		return entry.FileMeta{}, dherrors.NewRepoError("read dataFile.filename", err)
	}
	id, err := jsonpath.Extract[uint64](raw, "dataFile.id")
	if err != nil {
		return entry.FileMeta{}, dherrors.NewRepoError("read dataFile.id", err)
	}
	size, err := jsonpath.Extract[uint64](raw, "dataFile.filesize")
	if err != nil {
		return entry.FileMeta{}, dherrors.NewRepoError("read dataFile.filesize", err)
	}
	hash, err := jsonpath.Extract[string](raw, "dataFile.md5")
	if err != nil {
		return entry.FileMeta{}, dherrors.NewRepoError("read dataFile.md5", err)
	}

	u, _ := url.Parse(b.baseURL)
	u.Path = fmt.Sprintf("/api/access/datafile/%d", id)
	q := url.Values{}
	q.Set("format", "original")
	u.RawQuery = q.Encode()

	return entry.FileMeta{
		Path:        dir.Path.Join(name),
		DownloadURL: u.String(),
		Size:        &size,
		Checksum:    []entry.Checksum{{Kind: entry.MD5, Hex: hash}},
		Endpoint:    entry.Endpoint{ParentURL: dir.APIURL, Key: "data.files"},
	}, nil
}

func (b *dataverseFile) RootURL(persistentID string) string {
	u, _ := url.Parse(b.baseURL)
	u.Path = fmt.Sprintf("/api/files/:persistentId/versions/%s", b.version)
	q := url.Values{}
	q.Set("persistentId", persistentID)
	u.RawQuery = q.Encode()
	return u.String()
}

func (b *dataverseFile) List(ctx context.Context, client *httpapi.Client, dir entry.DirMeta) ([]entry.Entry, error) {
	resp, err := client.GetJSON(ctx, dir.APIURL)
	if err != nil {
		return nil, err
	}
	raw, err := jsonpath.Extract[any](resp, "data")
	if err != nil {
		return nil, dherrors.NewRepoError("data did not resolve", err)
	}
	ds := &dataverseDataset{baseURL: b.baseURL, version: b.version}
	fm, err := ds.fileMetaFrom(dir, raw)
	if err != nil {
		return nil, err
	}
	return []entry.Entry{entry.NewFileEntry(fm)}, nil
}
