package backend

import (
	"context"
	"fmt"

	"github.com/ropensci/datahugger-go/internal/dherrors"
	"github.com/ropensci/datahugger-go/internal/entry"
	"github.com/ropensci/datahugger-go/internal/httpapi"
	"github.com/ropensci/datahugger-go/internal/jsonpath"
)

// osfBackend lists Open Science Framework (osf.io) project files,
// grounded on original_source/src/repo_impl.rs's OSF.
type osfBackend struct{}

func init() {
	Register(OSF, func(args map[string]string) Backend { return &osfBackend{} })
}

// RootURL builds the starting file-listing URL for an OSF node id.
func (b *osfBackend) RootURL(id string) string {
	return fmt.Sprintf("https://api.osf.io/v2/nodes/%s/files", id)
}

func (b *osfBackend) List(ctx context.Context, client *httpapi.Client, dir entry.DirMeta) ([]entry.Entry, error) {
	resp, err := client.GetJSON(ctx, dir.APIURL)
	if err != nil {
		return nil, err
	}

	files, err := jsonpath.Extract[[]any](resp, "data")
	if err != nil {
		return nil, dherrors.NewRepoError("data did not resolve to an array", err)
	}

	entries := make([]entry.Entry, 0, len(files))
	for _, raw := range files {
		name, err := jsonpath.Extract[string](raw, "attributes.name")
		if err != nil {
			return nil, dherrors.NewRepoError("read attributes.name", err)
		}
		kind, err := jsonpath.Extract[string](raw, "attributes.kind")
		if err != nil {
			return nil, dherrors.NewRepoError("read attributes.kind", err)
		}

		switch kind {
		case "file":
			size, err := jsonpath.Extract[uint64](raw, "attributes.size")
			if err != nil {
				return nil, dherrors.NewRepoError("read attributes.size", err)
			}
			downloadURL, err := jsonpath.Extract[string](raw, "links.download")
			if err != nil {
				return nil, dherrors.NewRepoError("read links.download", err)
			}
			hash, err := jsonpath.Extract[string](raw, "attributes.extra.hashes.sha256")
			if err != nil {
				return nil, dherrors.NewRepoError("read attributes.extra.hashes.sha256", err)
			}
			entries = append(entries, entry.NewFileEntry(entry.FileMeta{
				Path:        dir.Path.Join(name),
				DownloadURL: downloadURL,
				Size:        &size,
				Checksum:    []entry.Checksum{{Kind: entry.SHA256, Hex: hash}},
				Endpoint:    entry.Endpoint{ParentURL: dir.APIURL, Key: "data"},
			}))
		case "folder":
			apiURL, err := jsonpath.Extract[string](raw, "relationships.files.links.related.href")
			if err != nil {
				return nil, dherrors.NewRepoError("read relationships.files.links.related.href", err)
			}
			entries = append(entries, entry.NewDirEntry(dir.Join(name, apiURL)))
		default:
			return nil, dherrors.NewRepoError(fmt.Sprintf("unrecognized attributes.kind %q", kind), nil)
		}
	}
	return entries, nil
}
