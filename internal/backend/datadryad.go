package backend

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ropensci/datahugger-go/internal/dherrors"
	"github.com/ropensci/datahugger-go/internal/entry"
	"github.com/ropensci/datahugger-go/internal/httpapi"
	"github.com/ropensci/datahugger-go/internal/jsonpath"
)

// dataDryadBackend lists a Dryad dataset's files. Listing is a two-step
// dance: first resolve the dataset's latest-version href, then fetch that
// version's file list (original_source/src/datasets/dryad.rs).
type dataDryadBackend struct {
	id      string
	baseURL string
}

func init() {
	Register(DataDryad, func(args map[string]string) Backend {
		baseURL := args["base_url"]
		if baseURL == "" {
			baseURL = "https://datadryad.org"
		}
		return &dataDryadBackend{id: args["id"], baseURL: baseURL}
	})
}

func (b *dataDryadBackend) RootURL(id string) string {
	return fmt.Sprintf("https://datadryad.org/api/v2/datasets/%s", id)
}

func (b *dataDryadBackend) List(ctx context.Context, client *httpapi.Client, dir entry.DirMeta) ([]entry.Entry, error) {
	resp, err := client.GetJSON(ctx, dir.APIURL)
	if err != nil {
		return nil, err
	}

	version, err := jsonpath.Extract[string](resp, "_links.stash:version.href")
	if err != nil {
		return nil, dherrors.NewRepoError("read _links.stash:version.href", err)
	}

	filesAPIURL, err := b.joinFiles(version)
	if err != nil {
		return nil, dherrors.NewRepoError("join version href to base url", err)
	}

	filesResp, err := client.GetJSON(ctx, filesAPIURL)
	if err != nil {
		return nil, err
	}

	files, err := jsonpath.Extract[[]any](filesResp, `_embedded.stash:files`)
	if err != nil {
		return nil, dherrors.NewRepoError("read _embedded.stash:files", err)
	}

	entries := make([]entry.Entry, 0, len(files))
	for idx, raw := range files {
		fm, err := b.fileMetaFrom(dir, filesAPIURL, idx, raw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry.NewFileEntry(fm))
	}
	return entries, nil
}

func (b *dataDryadBackend) joinFiles(versionHref string) (string, error) {
	base, err := url.Parse(b.baseURL)
	if err != nil {
		return "", err
	}
	versionURL, err := base.Parse(versionHref)
	if err != nil {
		return "", err
	}
	versionURL.Path = strings.TrimSuffix(versionURL.Path, "/") + "/files"
	return versionURL.String(), nil
}

func (b *dataDryadBackend) fileMetaFrom(dir entry.DirMeta, filesAPIURL string, idx int, raw any) (entry.FileMeta, error) {
	name, err := jsonpath.Extract[string](raw, "path")
	if err != nil {
		return entry.FileMeta{}, dherrors.NewRepoError("read path", err)
	}
	size, err := jsonpath.Extract[uint64](raw, "size")
	if err != nil {
		return entry.FileMeta{}, dherrors.NewRepoError("read size", err)
	}
	downloadPath, err := jsonpath.Extract[string](raw, "_links.stash:download.href")
	if err != nil {
		return entry.FileMeta{}, dherrors.NewRepoError("read _links.stash:download.href", err)
	}
	base, err := url.Parse(b.baseURL)
	if err != nil {
		return entry.FileMeta{}, dherrors.NewRepoError("parse base url", err)
	}
	downloadURL, err := base.Parse(downloadPath)
	if err != nil {
		return entry.FileMeta{}, dherrors.NewRepoError("join download path to base url", err)
	}

	hashType, err := jsonpath.Extract[string](raw, "digestType")
	if err != nil {
		return entry.FileMeta{}, dherrors.NewRepoError("read digestType", err)
	}
	if strings.ToLower(hashType) != "md5" {
		return entry.FileMeta{}, dherrors.NewRepoError(fmt.Sprintf("unsupported hash type, '%s'", hashType), nil)
	}
	hash, err := jsonpath.Extract[string](raw, "digest")
	if err != nil {
		return entry.FileMeta{}, dherrors.NewRepoError("read digest", err)
	}

	return entry.FileMeta{
		Path:        dir.Path.Join(name),
		DownloadURL: downloadURL.String(),
		Size:        &size,
		Checksum:    []entry.Checksum{{Kind: entry.MD5, Hex: hash}},
		Endpoint:    entry.Endpoint{ParentURL: filesAPIURL, Key: fmt.Sprintf("_embedded.stash:files.%d", idx)},
	}, nil
}
