package backend

import (
	"context"
	"fmt"
	"path"

	"github.com/ropensci/datahugger-go/internal/entry"
	"github.com/ropensci/datahugger-go/internal/httpapi"
)

// arxivBackend synthesizes a single-file listing for an arXiv identifier
// without any HTTP call — arXiv exposes no machine-readable per-submission
// file index, so the PDF's own URL is the entire dataset (original_source/
// src/datasets/arxiv.rs).
type arxivBackend struct {
	id string
}

func init() {
	Register(Arxiv, func(args map[string]string) Backend {
		return &arxivBackend{id: args["id"]}
	})
}

func (b *arxivBackend) RootURL(id string) string {
	return fmt.Sprintf("https://arxiv.org/pdf/%s", id)
}

func (b *arxivBackend) List(ctx context.Context, client *httpapi.Client, dir entry.DirMeta) ([]entry.Entry, error) {
	name := path.Base(dir.RootURL) + ".pdf"
	return []entry.Entry{entry.NewFileEntry(entry.FileMeta{
		Path:        dir.Path.Join(name),
		DownloadURL: dir.RootURL,
		Endpoint:    entry.Endpoint{ParentURL: dir.RootURL},
	})}, nil
}
