// Package httpapi builds the shared HTTP client every backend and the
// resolver use, grounded on backend/doi/doi.go's fshttp.NewClient +
// rest.NewClient + fs.NewPacer construction and its shouldRetry classifier
// (fs/fserrors, retained only as test fixtures in this retrieval pack, so
// the retry classification itself is rebuilt in internal/pacer +
// internal/dherrors).
package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ropensci/datahugger-go/internal/config"
	"github.com/ropensci/datahugger-go/internal/dherrors"
	"github.com/ropensci/datahugger-go/internal/jsonpath"
	"github.com/ropensci/datahugger-go/internal/logging"
	"github.com/ropensci/datahugger-go/internal/pacer"
)

// maxRedirects bounds redirect-following for ordinary API calls, per
// spec.md §6.
const maxRedirects = 5

// Client wraps an *http.Client with the user agent, optional bearer
// tokens, and the retry pacer every backend calls through.
type Client struct {
	HTTP  *http.Client
	Pacer *pacer.Pacer
	Opts  config.ClientOptions
}

// New builds a Client configured from opts: a bounded-redirect transport
// tagged with the datahugger user agent.
func New(opts config.ClientOptions) *Client {
	return &Client{
		HTTP:  newHTTPClient(),
		Pacer: pacer.New(),
		Opts:  opts,
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 60 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
}

// NewRedirectDisabledClient builds a client that never follows redirects,
// for the DOI resolver's "GET doi.org/<doi> and read Location" step.
func NewRedirectDisabledClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// newRequest builds a GET request tagged with the user agent and any
// configured bearer tokens matching the target host.
func (c *Client) newRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.Opts.UserAgent)
	c.attachAuth(req)
	return req, nil
}

func (c *Client) attachAuth(req *http.Request) {
	u, err := url.Parse(req.URL.String())
	if err != nil {
		return
	}
	switch {
	case c.Opts.GitHubToken != "" && isHost(u, "api.github.com"):
		req.Header.Set("Authorization", "token "+c.Opts.GitHubToken)
	case c.Opts.DryadAPIToken != "" && isHost(u, "datadryad.org"):
		req.Header.Set("Authorization", "Bearer "+c.Opts.DryadAPIToken)
	}
}

func isHost(u *url.URL, host string) bool {
	return u.Host == host
}

// retryCodes mirrors backend/doi/doi.go's retryErrorCodes.
var retryCodes = map[int]bool{
	429: true, 500: true, 502: true, 503: true, 504: true, 509: true,
}

// shouldRetryStatus reports whether an HTTP status code is worth retrying.
func shouldRetryStatus(code int) bool {
	return retryCodes[code]
}

// Get performs a GET and returns the raw response, retrying on transport
// failures and retryable status codes through the client's pacer. The
// caller owns closing the returned response body.
func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	var resp *http.Response
	err := c.Pacer.Call(ctx, func() (bool, error) {
		req, err := c.newRequest(ctx, rawURL)
		if err != nil {
			return false, dherrors.NewRepoError("build request", err)
		}
		r, err := c.HTTP.Do(req)
		if err != nil {
			return true, dherrors.NewTemporaryRepoError("request failed", err)
		}
		if shouldRetryStatus(r.StatusCode) {
			r.Body.Close()
			return true, dherrors.NewTemporaryRepoError(fmt.Sprintf("status %d", r.StatusCode), nil)
		}
		resp = r
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetJSON performs a GET and decodes the body into the generic any-tree
// internal/jsonpath.Extract expects.
func (c *Client) GetJSON(ctx context.Context, rawURL string) (any, error) {
	resp, err := c.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return nil, dherrors.NewRepoError(fmt.Sprintf("403 Forbidden from %s", rawURL), nil)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, dherrors.NewRepoError(fmt.Sprintf("404 Not Found from %s", rawURL), nil)
	}
	if resp.StatusCode >= 300 {
		return nil, dherrors.NewRepoError(fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, rawURL), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, dherrors.NewTemporaryRepoError("read response body", err)
	}
	logging.Log.WithField("url", rawURL).Debug("fetched JSON")

	v, err := jsonpath.Decode(body)
	if err != nil {
		return nil, dherrors.NewRepoError("decode JSON response", err)
	}
	return v, nil
}

// GetBytes performs a GET and returns the raw response body, used by
// backends that parse XML (DataOne) rather than JSON.
func (c *Client) GetBytes(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := c.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, dherrors.NewRepoError(fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, rawURL), nil)
	}
	return io.ReadAll(resp.Body)
}
