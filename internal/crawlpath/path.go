// Package crawlpath implements the sentinel-rooted logical path used to
// track a crawled entry's position relative to the dataset root, grounded
// on original_source/src/repo.rs's CrawlPath.
package crawlpath

import "strings"

// root is the sentinel segment every absolute CrawlPath begins with.
const root = "__ROOT__"

// Path is a slash-joined logical path always prefixed with the root
// sentinel, e.g. "__ROOT__/data/file.csv". It never touches the
// filesystem and carries no notion of an OS path separator.
type Path struct {
	value string
}

// Root returns the CrawlPath for the dataset root itself.
func Root() Path {
	return Path{value: root}
}

// String returns the raw underlying value, including the sentinel prefix.
func (p Path) String() string {
	return p.value
}

// IsAbsolute reports whether p begins with the root sentinel.
func (p Path) IsAbsolute() bool {
	return p.value == root || strings.HasPrefix(p.value, root+"/")
}

// Join appends segment as a new path component and returns the result.
func (p Path) Join(segment string) Path {
	if p.value == "" {
		return Path{value: segment}
	}
	return Path{value: p.value + "/" + segment}
}

// Relative strips the root sentinel prefix and returns the path relative to
// the dataset root. It panics if p is not absolute, mirroring repo.rs's
// relative() invariant: every CrawlPath in this module is constructed via
// Root()/Join and must carry the sentinel.
func (p Path) Relative() string {
	if !p.IsAbsolute() {
		panic("crawlpath: Relative called on a path missing the " + root + " prefix: " + p.value)
	}
	rel := strings.TrimPrefix(p.value, root)
	return strings.TrimPrefix(rel, "/")
}
