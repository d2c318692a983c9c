package backend

import (
	"context"
	"fmt"
	"path"

	"github.com/ropensci/datahugger-go/internal/dherrors"
	"github.com/ropensci/datahugger-go/internal/entry"
	"github.com/ropensci/datahugger-go/internal/httpapi"
	"github.com/ropensci/datahugger-go/internal/jsonpath"
)

// halBackend lists the attached files of a HAL (Hyper Articles en Ligne)
// record via its Solr-backed search API (original_source/src/datasets/hal.rs).
type halBackend struct {
	id string
}

func init() {
	Register(HalScience, func(args map[string]string) Backend {
		return &halBackend{id: args["id"]}
	})
}

func (b *halBackend) RootURL(id string) string {
	return fmt.Sprintf("https://api.archives-ouvertes.fr/search/?q=halId_s:%s&wt=json&fl=halId_s,fileMain_s,files_s,fileType_s", id)
}

func (b *halBackend) List(ctx context.Context, client *httpapi.Client, dir entry.DirMeta) ([]entry.Entry, error) {
	resp, err := client.GetJSON(ctx, dir.APIURL)
	if err != nil {
		return nil, err
	}

	urls, err := jsonpath.Extract[[]string](resp, "response.docs.0.files_s")
	if err != nil {
		return nil, dherrors.NewRepoError("read response.docs.0.files_s", err)
	}

	entries := make([]entry.Entry, 0, len(urls))
	for _, fileURL := range urls {
		// Supplemented feature: every HAL attachment is given a literal
		// ".pdf" suffix regardless of its real extension, matching the
		// original's literal (not generalized) behavior.
		name := path.Base(fileURL) + ".pdf"
		entries = append(entries, entry.NewFileEntry(entry.FileMeta{
			Path:        dir.Path.Join(name),
			DownloadURL: fileURL,
			Endpoint:    entry.Endpoint{ParentURL: dir.APIURL, Key: "response.docs.0.files_s"},
		}))
	}
	return entries, nil
}
