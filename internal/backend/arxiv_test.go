package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ropensci/datahugger-go/internal/entry"
)

func TestArxivRootURL(t *testing.T) {
	b := &arxivBackend{id: "2101.00001v1"}
	assert.Equal(t, "https://arxiv.org/pdf/2101.00001v1", b.RootURL("2101.00001v1"))
}

func TestArxivListSynthesizesSingleFileWithoutHTTPCall(t *testing.T) {
	b := &arxivBackend{id: "2101.00001v1"}
	dir := entry.NewRootDir(b.RootURL("2101.00001v1"))

	entries, err := b.List(context.Background(), nil, dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	f := entries[0].File
	assert.Equal(t, "2101.00001v1.pdf", f.Path.Relative())
	assert.Equal(t, "https://arxiv.org/pdf/2101.00001v1", f.DownloadURL)
}
