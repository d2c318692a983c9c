package backend

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/ropensci/datahugger-go/internal/dherrors"
	"github.com/ropensci/datahugger-go/internal/entry"
	"github.com/ropensci/datahugger-go/internal/httpapi"
	"github.com/ropensci/datahugger-go/internal/jsonpath"
)

// zenodoBackend lists a Zenodo record's files. Zenodo keeps a flat file
// tree: every file, including ones a human would think of as nested in a
// folder, is listed in a single API call (original_source/src/datasets/zenodo.rs).
type zenodoBackend struct {
	id string
}

func init() {
	Register(Zenodo, func(args map[string]string) Backend {
		return &zenodoBackend{id: args["id"]}
	})
}

func (b *zenodoBackend) RootURL(id string) string {
	return fmt.Sprintf("https://zenodo.org/api/records/%s/files", id)
}

func (b *zenodoBackend) List(ctx context.Context, client *httpapi.Client, dir entry.DirMeta) ([]entry.Entry, error) {
	resp, err := client.GetJSON(ctx, dir.APIURL)
	if err != nil {
		return nil, err
	}

	files, err := jsonpath.Extract[[]any](resp, "entries")
	if err != nil {
		return nil, dherrors.NewRepoError("entries did not resolve to an array", err)
	}

	entries := make([]entry.Entry, 0, len(files))
	for idx, raw := range files {
		name, err := jsonpath.Extract[string](raw, "key")
		if err != nil {
			return nil, dherrors.NewRepoError("read key", err)
		}
		size, err := jsonpath.Extract[uint64](raw, "size")
		if err != nil {
			return nil, dherrors.NewRepoError("read size", err)
		}
		downloadURL, err := jsonpath.Extract[string](raw, "links.content")
		if err != nil {
			return nil, dherrors.NewRepoError("read links.content", err)
		}
		checksum, err := jsonpath.Extract[string](raw, "checksum")
		if err != nil {
			return nil, dherrors.NewRepoError("read checksum", err)
		}
		sum, err := parseZenodoChecksum(checksum)
		if err != nil {
			return nil, err
		}

		var mimePtr *string
		if guessed := mime.TypeByExtension(filepath.Ext(name)); guessed != "" {
			m := strings.SplitN(guessed, ";", 2)[0]
			mimePtr = &m
		}

		entries = append(entries, entry.NewFileEntry(entry.FileMeta{
			Path:        dir.Path.Join(name),
			DownloadURL: downloadURL,
			Size:        &size,
			Checksum:    []entry.Checksum{sum},
			MIME:        mimePtr,
			Endpoint:    entry.Endpoint{ParentURL: dir.APIURL, Key: fmt.Sprintf("entries.%d", idx)},
		}))
	}
	return entries, nil
}

// parseZenodoChecksum splits a "md5:<hex>" or "sha256:<hex>" string.
func parseZenodoChecksum(raw string) (entry.Checksum, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return entry.Checksum{}, dherrors.NewRepoError("checksum field is wrong: "+raw, nil)
	}
	switch parts[0] {
	case "md5":
		return entry.Checksum{Kind: entry.MD5, Hex: strings.ToLower(parts[1])}, nil
	case "sha256":
		return entry.Checksum{Kind: entry.SHA256, Hex: strings.ToLower(parts[1])}, nil
	default:
		return entry.Checksum{}, dherrors.NewRepoError("unsupported checksum type: "+parts[0], nil)
	}
}
