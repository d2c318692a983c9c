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

func TestDataverseDatasetRootURL(t *testing.T) {
	b := &dataverseDataset{baseURL: "https://dataverse.harvard.edu", version: ":latest-published"}
	u := b.RootURL("doi:10.7910/DVN/KBHLOD")
	assert.Equal(t, "https://dataverse.harvard.edu/api/datasets/:persistentId/versions/:latest-published?persistentId=doi%3A10.7910%2FDVN%2FKBHLOD", u)
}

func TestDataverseDatasetListBuildsDownloadURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"data": {"files": [
				{"dataFile": {"filename": "data.tab", "id": 555, "filesize": 321, "md5": "abc"}}
			]}
		}`))
	}))
	defer srv.Close()

	b := &dataverseDataset{baseURL: "https://dataverse.harvard.edu", version: ":latest-published"}
	client := httpapi.New(config.ClientOptions{UserAgent: "test"})
	entries, err := b.List(context.Background(), client, entry.NewRootDir(srv.URL))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	f := entries[0].File
	assert.Equal(t, "data.tab", f.Path.Relative())
	assert.Equal(t, uint64(321), *f.Size)
	assert.Equal(t, entry.MD5, f.Checksum[0].Kind)
	assert.Equal(t, "https://dataverse.harvard.edu/api/access/datafile/555?format=original", f.DownloadURL)
}

func TestDataverseFileListReturnsSingleFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"dataFile": {"filename": "only.csv", "id": 7, "filesize": 9, "md5": "zzz"}}}`))
	}))
	defer srv.Close()

	b := &dataverseFile{baseURL: "https://dataverse.harvard.edu", version: ":latest-published"}
	client := httpapi.New(config.ClientOptions{UserAgent: "test"})
	entries, err := b.List(context.Background(), client, entry.NewRootDir(srv.URL))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "only.csv", entries[0].File.Path.Relative())
}

func TestVersionOrDefaultsToLatestPublished(t *testing.T) {
	assert.Equal(t, ":latest-published", versionOr(""))
	assert.Equal(t, "1.0", versionOr("1.0"))
}
