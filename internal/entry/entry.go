// Package entry defines the data model a backend's List call produces:
// directories and files discovered while crawling a dataset, grounded on
// original_source/src/repo.rs.
package entry

import "github.com/ropensci/datahugger-go/internal/crawlpath"

// ChecksumKind distinguishes the two digest algorithms providers expose.
type ChecksumKind int

const (
	MD5 ChecksumKind = iota
	SHA256
)

func (k ChecksumKind) String() string {
	if k == SHA256 {
		return "sha256"
	}
	return "md5"
}

// Checksum pairs a digest algorithm with its hex-encoded value.
type Checksum struct {
	Kind ChecksumKind
	Hex  string
}

// PreferredChecksum returns the strongest checksum in the set, preferring
// SHA256 over MD5 when both are present, per spec.md §4.B and
// original_source/src/download.rs's selection order. ok is false when the
// slice is empty.
func PreferredChecksum(sums []Checksum) (Checksum, bool) {
	var best Checksum
	found := false
	for _, c := range sums {
		if !found {
			best, found = c, true
			continue
		}
		if c.Kind == SHA256 {
			best = c
		}
	}
	return best, found
}

// Endpoint records where a FileMeta's value was read from within a
// backend's API response, for diagnostics only — it has no bearing on how
// the file is downloaded.
type Endpoint struct {
	ParentURL string
	Key       string // dot-path into the parent response, empty if not applicable
}

// DirMeta describes a directory discovered while crawling: its logical
// path, the API URL used to list its children, and the root_url of the
// dataset it belongs to (propagated unchanged from the dataset root, per
// the Open Questions decision in SPEC_FULL.md).
type DirMeta struct {
	Path    crawlpath.Path
	APIURL  string
	RootURL string
}

// NewRootDir builds the DirMeta for a dataset's root directory: its API
// URL and root_url both equal rootURL.
func NewRootDir(rootURL string) DirMeta {
	return DirMeta{Path: crawlpath.Root(), APIURL: rootURL, RootURL: rootURL}
}

// NewDir builds a DirMeta for a sub-directory, propagating the parent's
// root_url unchanged.
func NewDir(path crawlpath.Path, apiURL string, rootURL string) DirMeta {
	return DirMeta{Path: path, APIURL: apiURL, RootURL: rootURL}
}

// Join returns the DirMeta for a child directory named name, keeping
// api_url pointed at a newly supplied listing URL and propagating root_url.
func (d DirMeta) Join(name string, childAPIURL string) DirMeta {
	return DirMeta{Path: d.Path.Join(name), APIURL: childAPIURL, RootURL: d.RootURL}
}

// FileMeta describes a single downloadable file discovered while crawling.
type FileMeta struct {
	Path         crawlpath.Path
	Endpoint     Endpoint
	DownloadURL  string
	Size         *uint64
	Checksum     []Checksum
	MIME         *string // supplemented feature: Zenodo's per-file MIME guess
}

// Kind distinguishes the two Entry variants.
type Kind int

const (
	KindDir Kind = iota
	KindFile
)

// Entry is the tagged union a backend's List yields: either a Dir or a
// File. Exactly one of Dir/File is meaningful, selected by Kind — a tagged
// struct was chosen over an interface so callers can exhaustively switch
// on Kind without a type assertion (see DESIGN.md entry B).
type Entry struct {
	Kind Kind
	Dir  DirMeta
	File FileMeta
}

// NewDirEntry wraps a DirMeta as an Entry.
func NewDirEntry(d DirMeta) Entry {
	return Entry{Kind: KindDir, Dir: d}
}

// NewFileEntry wraps a FileMeta as an Entry.
func NewFileEntry(f FileMeta) Entry {
	return Entry{Kind: KindFile, File: f}
}
