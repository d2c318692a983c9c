package resolver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ropensci/datahugger-go/internal/backend"
	"github.com/ropensci/datahugger-go/internal/config"
	"github.com/ropensci/datahugger-go/internal/dherrors"
	"github.com/ropensci/datahugger-go/internal/httpapi"
)

func testClient() *httpapi.Client {
	return httpapi.New(config.ClientOptions{UserAgent: "datahugger-go-test/0"})
}

func TestResolveDataverseDataset(t *testing.T) {
	res, err := Resolve(context.Background(), testClient(),
		"https://dataverse.harvard.edu/dataset.xhtml?persistentId=doi:10.7910/DVN/KBHLOD")
	require.NoError(t, err)
	assert.Equal(t, backend.Dataverse, res.Backend)
	assert.Equal(t, "doi:10.7910/DVN/KBHLOD", res.RecordID)
}

func TestResolveDataverseFile(t *testing.T) {
	res, err := Resolve(context.Background(), testClient(),
		"https://dataverse.harvard.edu/file.xhtml?persistentId=doi:10.7910/DVN/KBHLOD/DHJ45U")
	require.NoError(t, err)
	assert.Equal(t, backend.DataverseFile, res.Backend)
	assert.Equal(t, "doi:10.7910/DVN/KBHLOD/DHJ45U", res.RecordID)
}

func TestResolveOSF(t *testing.T) {
	for _, rawURL := range []string{"https://osf.io/dezms/overview", "https://osf.io/dezms/"} {
		res, err := Resolve(context.Background(), testClient(), rawURL)
		require.NoError(t, err)
		assert.Equal(t, backend.OSF, res.Backend)
		assert.Equal(t, "dezms", res.RecordID)
	}
}

func TestResolveArxiv(t *testing.T) {
	res, err := Resolve(context.Background(), testClient(), "https://arxiv.org/abs/2101.00001v1")
	require.NoError(t, err)
	assert.Equal(t, backend.Arxiv, res.Backend)
	assert.Equal(t, "2101.00001v1", res.RecordID)
}

func TestResolveDataone(t *testing.T) {
	res, err := Resolve(context.Background(), testClient(),
		"https://arcticdata.io/catalog/view/doi%3A10.18739%2FA2542JB2X")
	require.NoError(t, err)
	assert.Equal(t, backend.Dataone, res.Backend)
	assert.Equal(t, "doi:10.18739/A2542JB2X", res.RecordID)
	assert.Equal(t, "https://arcticdata.io/", res.Args["base_url"])
}

func TestResolveDataDryad(t *testing.T) {
	res, err := Resolve(context.Background(), testClient(), "https://datadryad.org/dataset/doi:10.5061/dryad.mj8m0")
	require.NoError(t, err)
	assert.Equal(t, backend.DataDryad, res.Backend)
	assert.Equal(t, "doi:10.5061/dryad.mj8m0", res.RecordID)
}

func TestResolveHal(t *testing.T) {
	res, err := Resolve(context.Background(), testClient(), "https://hal.science/cel-01830944")
	require.NoError(t, err)
	assert.Equal(t, backend.HalScience, res.Backend)
	assert.Equal(t, "cel-01830944", res.RecordID)
}

func TestResolveHuggingFace(t *testing.T) {
	res, err := Resolve(context.Background(), testClient(), "https://huggingface.co/datasets/HuggingFaceFW/finepdfs")
	require.NoError(t, err)
	assert.Equal(t, backend.HuggingFace, res.Backend)
	assert.Equal(t, "HuggingFaceFW", res.Args["owner"])
	assert.Equal(t, "finepdfs", res.Args["repo"])
	assert.Equal(t, "main", res.Args["revision"])
	// The core never prints; it only reports the advisory for a caller
	// (e.g. the CLI) to decide whether to surface.
	assert.NotEmpty(t, res.Advisory)
}

func TestResolveNonHuggingFaceHasNoAdvisory(t *testing.T) {
	res, err := Resolve(context.Background(), testClient(), "https://zenodo.org/records/17867222")
	require.NoError(t, err)
	assert.Empty(t, res.Advisory)
}

func TestResolveZenodo(t *testing.T) {
	res, err := Resolve(context.Background(), testClient(), "https://zenodo.org/records/17867222")
	require.NoError(t, err)
	assert.Equal(t, backend.Zenodo, res.Backend)
	assert.Equal(t, "17867222", res.RecordID)
}

func TestResolveGitHubWithExplicitRef(t *testing.T) {
	res, err := Resolve(context.Background(), testClient(), "https://github.com/owner/repo/tree/deadbeef")
	require.NoError(t, err)
	assert.Equal(t, backend.GitHub, res.Backend)
	assert.Equal(t, "owner", res.Args["owner"])
	assert.Equal(t, "repo", res.Args["repo"])
	assert.Equal(t, "deadbeef", res.Args["branch_or_commit"])
}

func TestResolveGitHubPreResolvesDefaultBranch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/owner/repo":
			w.Write([]byte(`{"default_branch": "main"}`))
		case "/repos/owner/repo/commits/main":
			w.Write([]byte(`{"sha": "abc123"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	sha, err := GitHubDefaultBranchCommit(context.Background(), testClient(), srv.URL, "owner", "repo")
	require.NoError(t, err)
	assert.Equal(t, "abc123", sha)
}

func TestResolveUnimplementedProvider(t *testing.T) {
	_, err := Resolve(context.Background(), testClient(), "https://data.mendeley.com/datasets/abc123")
	require.Error(t, err)
	var dispatchErr *dherrors.DispatchError
	require.ErrorAs(t, err, &dispatchErr)
	assert.Contains(t, dispatchErr.Message, "unimplemented")
}

func TestResolveUnknownDomain(t *testing.T) {
	_, err := Resolve(context.Background(), testClient(), "https://example.com/whatever")
	require.Error(t, err)
	var dispatchErr *dherrors.DispatchError
	require.ErrorAs(t, err, &dispatchErr)
	assert.Contains(t, dispatchErr.Message, "unknown domain")
}

func TestResolveDOIToURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "https://dataverse.nl/citation?persistentId=doi:10.34894/0B7ZLK")
		w.WriteHeader(http.StatusMovedPermanently)
	}))
	defer srv.Close()

	location, err := ResolveDOIToURL(context.Background(), "10.34894/0B7ZLK", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "https://dataverse.nl/citation?persistentId=doi:10.34894/0B7ZLK", location)
}

func TestNormalizeDOIStripsSchemeAndURL(t *testing.T) {
	assert.Equal(t, "10.34894/0B7ZLK", NormalizeDOI("doi:10.34894/0B7ZLK"))
	assert.Equal(t, "10.34894/0B7ZLK", NormalizeDOI("https://doi.org/10.34894/0B7ZLK"))
	assert.Equal(t, "10.34894/0B7ZLK", NormalizeDOI("10.34894/0B7ZLK"))
}

func TestResolveDOIToURLRejectsFullDOIOrgURL(t *testing.T) {
	// spec.md §8 scenario 5: a full doi.org URL is "not a bare DOI" and must
	// be rejected, not silently resolved.
	_, err := ResolveDOIToURL(context.Background(), "https://doi.org/10.34894/0B7ZLK", "")
	require.Error(t, err)
	assert.Equal(t, "resolve doi: Invalid DOI: 'https://doi.org/10.34894/0B7ZLK'", err.Error())
}

func TestResolveDOIToURLRejectsNonDOI(t *testing.T) {
	_, err := ResolveDOIToURL(context.Background(), "https://dpoi.org/10.34894/0B7ZLK", "")
	require.Error(t, err)
	assert.Equal(t, "resolve doi: Invalid DOI: 'https://dpoi.org/10.34894/0B7ZLK'", err.Error())
}
