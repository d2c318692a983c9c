// Package progress defines the injectable progress-reporting capability the
// crawler and downloader attach bars to, grounded on spec.md §4.I: an
// `insert(index, bar)` / `insert_from_back(index, bar)` contract with a null
// implementation as the embeddable default.
package progress

// Bar is a handle to one progress indicator (a per-listing spinner or a
// per-file byte-progress bar).
type Bar interface {
	// SetTotal sets (or updates) the bar's total unit count, e.g. a file's
	// byte size once known.
	SetTotal(total int64)
	// Increment advances the bar by n units, e.g. bytes written.
	Increment(n int64)
	// Done marks the bar complete and lets the reporter reclaim it.
	Done()
}

// Reporter is the capability the core calls to attach bars; it never reads
// them back. Insert and InsertFromBack both place a new bar at a priority
// position, matching mpb's two insertion conventions (front-anchored vs.
// back-anchored) that spec.md's two operations mirror.
type Reporter interface {
	Insert(index int, label string) Bar
	InsertFromBack(index int, label string) Bar
}

// Null is the default Reporter for embedders that don't want UI: every bar
// it returns is a no-op.
type Null struct{}

func (Null) Insert(_ int, _ string) Bar         { return nullBar{} }
func (Null) InsertFromBack(_ int, _ string) Bar { return nullBar{} }

type nullBar struct{}

func (nullBar) SetTotal(int64) {}
func (nullBar) Increment(int64) {}
func (nullBar) Done()           {}
