// Package resolver turns a dataset landing-page URL into the backend and
// record identifier internal/backend.New needs to construct a Backend,
// grounded on original_source/src/resolver.rs's resolve().
package resolver

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ropensci/datahugger-go/internal/backend"
	"github.com/ropensci/datahugger-go/internal/dherrors"
	"github.com/ropensci/datahugger-go/internal/httpapi"
	"github.com/ropensci/datahugger-go/internal/jsonpath"
)

// Resolution is everything internal/backend.New and Backend.RootURL need:
// which backend to construct, its construction arguments, and the record
// identifier to list.
type Resolution struct {
	Backend  backend.Name
	Args     map[string]string
	RecordID string
	// Advisory is a non-fatal, provider-specific notice a UI may choose to
	// surface (e.g. Hugging Face's limited-support warning). The core
	// never prints it itself, so embedders calling Resolve directly never
	// see unsolicited output; it is empty when there is nothing to say.
	Advisory string
}

// unimplementedProviders are domains resolver.rs recognizes but has never
// implemented a backend for (its resolve() hits unimplemented!() for each).
// A Go panic would violate the error taxonomy, so these surface as ordinary
// Permanent DispatchErrors instead.
var unimplementedProviders = map[string]bool{
	"data.mendeley.com": true,
	"data.4tu.nl":        true,
	"b2share.eudat.eu":   true,
	"data.europa.eu":     true,
}

// Resolve dispatches a dataset landing-page URL to its provider, replicating
// resolver.rs's resolve() check order exactly: DataOne domain, then
// Dataverse domain, then a per-host switch.
func Resolve(ctx context.Context, client *httpapi.Client, rawURL string) (Resolution, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Resolution{}, &dherrors.DispatchError{Message: fmt.Sprintf("invalid URL %q", rawURL), Err: err}
	}
	host := u.Hostname()
	if host == "" {
		return Resolution{}, &dherrors.DispatchError{Message: fmt.Sprintf("URL has no host: %q", rawURL)}
	}

	segments := pathSegments(u)

	if dataoneDomains[host] {
		return resolveDataone(u, segments)
	}
	if dataverseDomains[host] {
		return resolveDataverse(u, segments)
	}

	switch host {
	case "arxiv.org":
		return resolveArxiv(segments)
	case "hal.science":
		return resolveHal(segments)
	case "huggingface.co":
		return resolveHuggingFace(segments)
	case "zenodo.org":
		return resolveZenodo(segments)
	case "github.com":
		return resolveGitHub(ctx, client, segments)
	case "datadryad.org":
		return resolveDataDryad(segments)
	case "osf.io":
		return resolveOSF(segments)
	default:
		if unimplementedProviders[host] {
			return Resolution{}, &dherrors.DispatchError{Message: fmt.Sprintf("%s is a recognized but unimplemented provider", host)}
		}
		return Resolution{}, &dherrors.DispatchError{Message: fmt.Sprintf("unknown domain: %s", host)}
	}
}

// pathSegments splits a URL's path into non-empty segments, mirroring
// url::Url::path_segments(): the split happens on the escaped path, so an
// encoded slash (%2F) stays inside its segment, and each segment is then
// percent-decoded.
func pathSegments(u *url.URL) []string {
	parts := strings.Split(strings.Trim(u.EscapedPath(), "/"), "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if decoded, err := url.PathUnescape(p); err == nil {
			p = decoded
		}
		out = append(out, p)
	}
	return out
}

func resolveDataone(u *url.URL, segments []string) (Resolution, error) {
	baseURL := fmt.Sprintf("%s://%s/", u.Scheme, u.Host)
	for _, seg := range segments {
		if strings.HasPrefix(seg, "doi") {
			return Resolution{
				Backend:  backend.Dataone,
				Args:     map[string]string{"base_url": baseURL},
				RecordID: seg,
			}, nil
		}
	}
	return Resolution{}, &dherrors.DispatchError{Message: "could not find a doi path segment in DataOne URL"}
}

func resolveDataverse(u *url.URL, segments []string) (Resolution, error) {
	if len(segments) == 0 {
		return Resolution{}, &dherrors.DispatchError{Message: "Dataverse URL has no path"}
	}
	typ := strings.TrimSuffix(segments[0], ".xhtml")

	var name backend.Name
	switch typ {
	case "dataset":
		name = backend.Dataverse
	case "file":
		name = backend.DataverseFile
	default:
		return Resolution{}, &dherrors.DispatchError{Message: fmt.Sprintf("unsupported Dataverse path type: %q", typ)}
	}

	q := u.Query()
	persistentID := q.Get("persistentId")
	if persistentID == "" {
		return Resolution{}, &dherrors.DispatchError{Message: "Dataverse URL is missing persistentId query parameter"}
	}

	baseURL := fmt.Sprintf("%s://%s", u.Scheme, u.Host)
	return Resolution{
		Backend:  name,
		Args:     map[string]string{"base_url": baseURL, "version": ":latest-published"},
		RecordID: persistentID,
	}, nil
}

func resolveArxiv(segments []string) (Resolution, error) {
	// Rust: segments.next().and_then(|_| segments.next()) — skip one segment
	// (usually "abs") and take the next as the id.
	if len(segments) < 2 {
		return Resolution{}, &dherrors.DispatchError{Message: "arXiv URL is missing an identifier segment"}
	}
	return Resolution{Backend: backend.Arxiv, Args: map[string]string{}, RecordID: segments[1]}, nil
}

func resolveHal(segments []string) (Resolution, error) {
	if len(segments) < 1 {
		return Resolution{}, &dherrors.DispatchError{Message: "HAL URL is missing an identifier segment"}
	}
	return Resolution{Backend: backend.HalScience, Args: map[string]string{}, RecordID: segments[0]}, nil
}

// huggingFaceAdvisory is surfaced via Resolution.Advisory rather than
// printed here: Hugging Face support is read-only and partial, and a UI
// may want to nudge users towards the vendor's own tooling for large or
// private repos, but an embedder calling Resolve directly should never get
// unsolicited output from the core.
const huggingFaceAdvisory = "Hugging Face support is limited; consider the official huggingface_hub tooling for large or private repos"

func resolveHuggingFace(segments []string) (Resolution, error) {
	if len(segments) < 1 || segments[0] != "datasets" {
		return Resolution{}, &dherrors.DispatchError{Message: "unsupported Hugging Face repo kind"}
	}
	if len(segments) < 3 {
		return Resolution{}, &dherrors.DispatchError{Message: "Hugging Face URL is missing owner/repo segments"}
	}
	owner, repo := segments[1], segments[2]

	revision := "main"
	if len(segments) >= 5 && segments[3] == "tree" {
		revision = segments[4]
	}

	return Resolution{
		Backend:  backend.HuggingFace,
		Args:     map[string]string{"owner": owner, "repo": repo, "revision": revision},
		Advisory: huggingFaceAdvisory,
	}, nil
}

func resolveZenodo(segments []string) (Resolution, error) {
	if len(segments) < 2 {
		return Resolution{}, &dherrors.DispatchError{Message: "Zenodo URL is missing a record id segment"}
	}
	return Resolution{Backend: backend.Zenodo, Args: map[string]string{}, RecordID: segments[1]}, nil
}

func resolveGitHub(ctx context.Context, client *httpapi.Client, segments []string) (Resolution, error) {
	if len(segments) < 2 {
		return Resolution{}, &dherrors.DispatchError{Message: "GitHub URL is missing owner/repo segments"}
	}
	owner, repo := segments[0], segments[1]

	var branchOrCommit string
	if len(segments) >= 4 {
		branchOrCommit = segments[3]
	} else {
		resolved, err := GitHubDefaultBranchCommit(ctx, client, "https://api.github.com", owner, repo)
		if err != nil {
			return Resolution{}, err
		}
		branchOrCommit = resolved
	}

	return Resolution{
		Backend: backend.GitHub,
		Args:    map[string]string{"owner": owner, "repo": repo, "branch_or_commit": branchOrCommit},
	}, nil
}

func resolveDataDryad(segments []string) (Resolution, error) {
	if len(segments) < 3 || segments[0] != "dataset" {
		return Resolution{}, &dherrors.DispatchError{Message: "Dryad URL must look like /dataset/<prefix>/<suffix>"}
	}
	return Resolution{
		Backend:  backend.DataDryad,
		Args:     map[string]string{"base_url": "https://datadryad.org/"},
		RecordID: segments[1] + "/" + segments[2],
	}, nil
}

func resolveOSF(segments []string) (Resolution, error) {
	if len(segments) < 1 {
		return Resolution{}, &dherrors.DispatchError{Message: "OSF URL is missing a node id segment"}
	}
	return Resolution{Backend: backend.OSF, Args: map[string]string{}, RecordID: segments[0]}, nil
}

// GitHubDefaultBranchCommit resolves the default branch of owner/repo and
// then the commit SHA that branch currently points to, so a GitHub URL
// naming no explicit ref still crawls a pinned, reproducible tree. apiBaseURL
// is normally "https://api.github.com"; it is parameterized so tests can
// point it at a local fixture server.
func GitHubDefaultBranchCommit(ctx context.Context, client *httpapi.Client, apiBaseURL, owner, repo string) (string, error) {
	repoResp, err := client.GetJSON(ctx, fmt.Sprintf("%s/repos/%s/%s", apiBaseURL, owner, repo))
	if err != nil {
		return "", err
	}
	defaultBranch, err := jsonpath.Extract[string](repoResp, "default_branch")
	if err != nil {
		return "", dherrors.NewRepoError("read default_branch", err)
	}

	commitResp, err := client.GetJSON(ctx, fmt.Sprintf("%s/repos/%s/%s/commits/%s", apiBaseURL, owner, repo, defaultBranch))
	if err != nil {
		return "", err
	}
	sha, err := jsonpath.Extract[string](commitResp, "sha")
	if err != nil {
		return "", dherrors.NewRepoError("read sha", err)
	}
	return sha, nil
}

// NormalizeDOI strips a leading "doi:" scheme or a "https://doi.org/" (or
// "http://dx.doi.org/") prefix, so a caller collecting a DOI from free-form
// user input can reduce it to the bare form ResolveDOIToURL expects,
// grounded on backend/doi/doi.go's parseDoi. It is never applied implicitly
// inside ResolveDOIToURL itself — see that function's doc comment.
func NormalizeDOI(doi string) string {
	doi = strings.TrimPrefix(doi, "doi:")
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/"} {
		if strings.HasPrefix(doi, prefix) {
			return strings.TrimPrefix(doi, prefix)
		}
	}
	return doi
}

// ResolveDOIToURL resolves a bare DOI (e.g. "10.1234/abcd") to the URL it
// redirects to, by issuing a redirect-disabled GET against baseURL (or
// https://doi.org when empty) and reading the Location header, grounded on
// resolve_doi_to_url_with_base. The input must already be a bare DOI, not a
// doi: URI or a full doi.org landing URL — spec.md §8's scenario 5 requires
// "https://doi.org/10.34894/0B7ZLK" itself to be rejected as invalid, so no
// normalization happens here (see NormalizeDOI for callers that want it).
func ResolveDOIToURL(ctx context.Context, doi string, baseURL string) (string, error) {
	if !strings.HasPrefix(doi, "10.") || !strings.Contains(doi, "/") {
		return "", &dherrors.ResolveError{Message: fmt.Sprintf("Invalid DOI: '%s'", doi)}
	}
	if baseURL == "" {
		baseURL = "https://doi.org"
	}

	target := strings.TrimSuffix(baseURL, "/") + "/" + doi
	client := httpapi.NewRedirectDisabledClient(30 * time.Second)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", &dherrors.ResolveError{Message: "build request", Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", &dherrors.ResolveError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	location := resp.Header.Get("Location")
	if location == "" {
		return "", &dherrors.ResolveError{Message: fmt.Sprintf("no Location header in response from %s", target)}
	}
	return location, nil
}
