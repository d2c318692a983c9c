// Package backend defines the capability contract every dataset provider
// implements, and registers the concrete adapters, grounded on rclone's
// fs.RegInfo/fs.Register pattern (backend/doi/doi.go's func init()),
// reshaped to the flatter List/RootURL contract spec.md §4.D specifies.
package backend

import (
	"context"

	"github.com/ropensci/datahugger-go/internal/entry"
	"github.com/ropensci/datahugger-go/internal/httpapi"
)

// Backend lists the direct children of a directory within one dataset.
type Backend interface {
	// RootURL returns the API URL used to list the dataset's top-level
	// directory for the given record identifier.
	RootURL(recordID string) string
	// List returns the direct children (files and/or sub-directories) of
	// dir. It must not recurse — that's internal/crawl's job.
	List(ctx context.Context, client *httpapi.Client, dir entry.DirMeta) ([]entry.Entry, error)
}

// Name identifies a registered backend, matching the provider tags
// resolver.rs's resolve() dispatches to.
type Name string

const (
	OSF           Name = "osf"
	Zenodo        Name = "zenodo"
	Dataverse     Name = "dataverse"
	DataverseFile Name = "dataverse-file"
	DataDryad     Name = "datadryad"
	Dataone       Name = "dataone"
	HalScience    Name = "hal"
	Arxiv         Name = "arxiv"
	HuggingFace   Name = "huggingface"
	GitHub        Name = "github"
)

// registry is populated by each adapter's init function.
var registry = map[Name]func(args map[string]string) Backend{}

// Register adds a constructor for a named backend. Called from each
// adapter's init().
func Register(name Name, ctor func(args map[string]string) Backend) {
	registry[name] = ctor
}

// New builds the backend instance for name from the resolved construction
// arguments (e.g. {"id": "...", "base_url": "..."}).
func New(name Name, args map[string]string) (Backend, bool) {
	ctor, ok := registry[name]
	if !ok {
		return nil, false
	}
	return ctor(args), true
}
