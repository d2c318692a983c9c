package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ropensci/datahugger-go/internal/config"
	"github.com/ropensci/datahugger-go/internal/entry"
	"github.com/ropensci/datahugger-go/internal/httpapi"
)

func TestHuggingFaceRootURL(t *testing.T) {
	b := &huggingFaceBackend{owner: "HuggingFaceFW", repo: "finepdfs", revision: "main"}
	assert.Equal(t, "https://huggingface.co/api/datasets/HuggingFaceFW/finepdfs/tree/main", b.RootURL(""))
}

func TestHuggingFaceListBuildsDownloadURLsAndSubdirEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"path": "README.md", "type": "file", "size": 10, "oid": "aaa"},
			{"path": "data", "type": "directory"}
		]`))
	}))
	defer srv.Close()

	b := &huggingFaceBackend{owner: "owner", repo: "repo", revision: "main"}
	client := httpapi.New(config.ClientOptions{UserAgent: "test"})
	dir := entry.NewRootDir(srv.URL)
	entries, err := b.List(context.Background(), client, dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	f := entries[0].File
	assert.Equal(t, "README.md", f.Path.Relative())
	assert.Equal(t, "https://huggingface.co/datasets/owner/repo/resolve/main/README.md", f.DownloadURL)
	assert.Equal(t, entry.SHA256, f.Checksum[0].Kind)
	assert.Equal(t, "aaa", f.Checksum[0].Hex)

	d := entries[1].Dir
	assert.Equal(t, "data", d.Path.Relative())
	assert.Equal(t, srv.URL+"/data", d.APIURL)
	assert.Equal(t, srv.URL, d.RootURL)
}

func TestHuggingFaceListPrefersLFSOidOverPlainOid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"path": "model.bin", "type": "file", "size": 5, "lfs": {"oid": "lfs-oid"}, "oid": "plain-oid"}]`))
	}))
	defer srv.Close()

	b := &huggingFaceBackend{owner: "o", repo: "r", revision: "main"}
	client := httpapi.New(config.ClientOptions{UserAgent: "test"})
	entries, err := b.List(context.Background(), client, entry.NewRootDir(srv.URL))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "lfs-oid", entries[0].File.Checksum[0].Hex)
}

func TestHuggingFaceListRejectsRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	b := &huggingFaceBackend{owner: "o", repo: "r", revision: "main"}
	client := httpapi.New(config.ClientOptions{UserAgent: "test"})
	_, err := b.List(context.Background(), client, entry.NewRootDir(srv.URL))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}
