package crawl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ropensci/datahugger-go/internal/config"
	"github.com/ropensci/datahugger-go/internal/dherrors"
	"github.com/ropensci/datahugger-go/internal/entry"
	"github.com/ropensci/datahugger-go/internal/httpapi"
)

// fakeBackend lists children from a fixed map keyed by api_url, letting
// tests build an arbitrary tree without any HTTP server.
type fakeBackend struct {
	children map[string][]entry.Entry
	failAt   string
}

func (f *fakeBackend) RootURL(id string) string { return id }

func (f *fakeBackend) List(_ context.Context, _ *httpapi.Client, dir entry.DirMeta) ([]entry.Entry, error) {
	if dir.APIURL == f.failAt {
		return nil, dherrors.NewRepoError("boom", nil)
	}
	return f.children[dir.APIURL], nil
}

func drain(t *testing.T, ch <-chan Result) []Result {
	t.Helper()
	var out []Result
	for r := range ch {
		out = append(out, r)
	}
	return out
}

func TestStreamYieldsDirBeforeItsSubtree(t *testing.T) {
	root := entry.NewRootDir("root")
	subDir := entry.NewDir(root.Path.Join("sub"), "root/sub", "root")

	b := &fakeBackend{children: map[string][]entry.Entry{
		"root": {
			entry.NewDirEntry(subDir),
		},
		"root/sub": {
			entry.NewFileEntry(entry.FileMeta{Path: subDir.Path.Join("a.txt")}),
		},
	}}

	client := httpapi.New(config.ClientOptions{UserAgent: "test"})
	results := drain(t, Stream(context.Background(), client, b, root, nil))

	require.Len(t, results, 2)
	assert.Equal(t, entry.KindDir, results[0].Entry.Kind)
	assert.Equal(t, "root/sub", results[0].Entry.Dir.APIURL)
	assert.Equal(t, entry.KindFile, results[1].Entry.Kind)
	assert.Equal(t, "__ROOT__/sub/a.txt", results[1].Entry.File.Path.String())
}

func TestStreamSiblingOrderMatchesBackendOrder(t *testing.T) {
	root := entry.NewRootDir("root")
	b := &fakeBackend{children: map[string][]entry.Entry{
		"root": {
			entry.NewFileEntry(entry.FileMeta{Path: root.Path.Join("b.txt")}),
			entry.NewFileEntry(entry.FileMeta{Path: root.Path.Join("a.txt")}),
		},
	}}

	client := httpapi.New(config.ClientOptions{UserAgent: "test"})
	results := drain(t, Stream(context.Background(), client, b, root, nil))

	require.Len(t, results, 2)
	assert.Equal(t, "__ROOT__/b.txt", results[0].Entry.File.Path.String())
	assert.Equal(t, "__ROOT__/a.txt", results[1].Entry.File.Path.String())
}

func TestStreamEmitsPersistentErrorAndStops(t *testing.T) {
	root := entry.NewRootDir("root")
	b := &fakeBackend{failAt: "root"}

	client := httpapi.New(config.ClientOptions{UserAgent: "test"})
	results := drain(t, Stream(context.Background(), client, b, root, nil))

	require.Len(t, results, 1)
	require.Error(t, results[0].Err)
	var statusErr dherrors.StatusError
	require.ErrorAs(t, results[0].Err, &statusErr)
	assert.Equal(t, dherrors.Persistent, statusErr.Status())
}

func TestStreamStopsAtErrorMidSubtree(t *testing.T) {
	root := entry.NewRootDir("root")
	subDir := entry.NewDir(root.Path.Join("sub"), "root/sub", "root")

	b := &fakeBackend{
		children: map[string][]entry.Entry{
			"root": {entry.NewDirEntry(subDir)},
		},
		failAt: "root/sub",
	}

	client := httpapi.New(config.ClientOptions{UserAgent: "test"})
	results := drain(t, Stream(context.Background(), client, b, root, nil))

	require.Len(t, results, 2)
	assert.Equal(t, entry.KindDir, results[0].Entry.Kind)
	require.Error(t, results[1].Err)
}
