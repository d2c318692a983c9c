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

func TestOSFRootURL(t *testing.T) {
	b := &osfBackend{}
	assert.Equal(t, "https://api.osf.io/v2/nodes/dezms/files", b.RootURL("dezms"))
}

func TestOSFListMixesFilesAndFolders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"data": [
				{
					"attributes": {"name": "readme.txt", "kind": "file", "size": 11, "extra": {"hashes": {"sha256": "abc123"}}},
					"links": {"download": "https://files.osf.io/v1/resources/dezms/providers/osfstorage/readme.txt"}
				},
				{
					"attributes": {"name": "data", "kind": "folder"},
					"relationships": {"files": {"links": {"related": {"href": "https://api.osf.io/v2/nodes/dezms/files/osfstorage/data/"}}}}
				}
			]
		}`))
	}))
	defer srv.Close()

	b := &osfBackend{}
	client := httpapi.New(config.ClientOptions{UserAgent: "test"})
	entries, err := b.List(context.Background(), client, entry.NewRootDir(srv.URL))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, entry.KindFile, entries[0].Kind)
	assert.Equal(t, "readme.txt", entries[0].File.Path.Relative())
	assert.Equal(t, uint64(11), *entries[0].File.Size)
	assert.Equal(t, entry.SHA256, entries[0].File.Checksum[0].Kind)
	assert.Equal(t, "abc123", entries[0].File.Checksum[0].Hex)

	assert.Equal(t, entry.KindDir, entries[1].Kind)
	assert.Equal(t, "data", entries[1].Dir.Path.Relative())
	assert.Equal(t, "https://api.osf.io/v2/nodes/dezms/files/osfstorage/data/", entries[1].Dir.APIURL)
}

func TestOSFListRejectsUnknownKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [{"attributes": {"name": "x", "kind": "weird"}}]}`))
	}))
	defer srv.Close()

	b := &osfBackend{}
	client := httpapi.New(config.ClientOptions{UserAgent: "test"})
	_, err := b.List(context.Background(), client, entry.NewRootDir(srv.URL))
	require.Error(t, err)
}
