// Package config collects the environment-derived options every HTTP-facing
// component needs: the user agent, optional provider tokens, and the DOI
// resolver base URL override.
package config

import (
	"fmt"
	"os"
	"runtime"
)

// Version is overridden at build time via -ldflags.
var Version = "dev"

// ClientOptions bundles everything a backend or resolver needs to build an
// HTTP client and authenticate to provider APIs.
type ClientOptions struct {
	// UserAgent identifies this binding to remote APIs, e.g.
	// "datahugger-go/0.1.0 (linux/amd64)".
	UserAgent string
	// GitHubToken is sent as "Authorization: token <value>" against the
	// GitHub API when set, read from GITHUB_TOKEN.
	GitHubToken string
	// DryadAPIToken is sent as "Authorization: Bearer <value>" against the
	// Dryad API when set, read from DRYAD_API_TOKEN.
	DryadAPIToken string
	// DOIResolverAPIURL holds the DOI resolver base, read from
	// DOI_RESOLVER_API_URL (https://doi.org when unset). Nothing in this
	// module reads the field: resolver.ResolveDOIToURL takes its base URL as
	// an explicit argument.
	DOIResolverAPIURL string
}

// FromEnvironment builds a ClientOptions from the process environment,
// mirroring the variables spec.md §6 documents.
func FromEnvironment() ClientOptions {
	return ClientOptions{
		UserAgent:         fmt.Sprintf("datahugger-go/%s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH),
		GitHubToken:       os.Getenv("GITHUB_TOKEN"),
		DryadAPIToken:     os.Getenv("DRYAD_API_TOKEN"),
		DOIResolverAPIURL: envOr("DOI_RESOLVER_API_URL", "https://doi.org"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
