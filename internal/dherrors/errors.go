// Package dherrors defines the error taxonomy shared by every component of
// datahugger-go: every error value produced by a backend, the resolver, the
// crawler or the downloader carries a Status describing whether the caller
// may usefully retry.
package dherrors

import "fmt"

// Status classifies an error along the retry axis.
type Status int

const (
	// Permanent errors should never be retried (bad request, schema
	// mismatch, 404, checksum mismatch, unknown domain, ...).
	Permanent Status = iota
	// Temporary errors are safe to retry (transport failures, 5xx,
	// rate-limited 403 on sources that recover).
	Temporary
	// Persistent errors were retried and are still failing.
	Persistent
)

func (s Status) String() string {
	switch s {
	case Permanent:
		return "permanent"
	case Temporary:
		return "temporary"
	case Persistent:
		return "persistent"
	default:
		return "unknown"
	}
}

// Retryable reports whether an error with the given status is worth
// retrying at all.
func Retryable(s Status) bool {
	return s == Temporary
}

// StatusError is implemented by every error domain below so callers can
// recover the retry status with a single type switch.
type StatusError interface {
	error
	Status() Status
}

// DispatchError is returned by the resolver for URL parsing or domain
// recognition failures. Always Permanent.
type DispatchError struct {
	Message string
	Err     error
}

func (e *DispatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dispatch: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("dispatch: %s", e.Message)
}

func (e *DispatchError) Unwrap() error { return e.Err }
func (e *DispatchError) Status() Status { return Permanent }

// RepoError is returned by a backend's List call.
type RepoError struct {
	Message string
	Err     error
	St      Status
}

func (e *RepoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("repo: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("repo: %s", e.Message)
}

func (e *RepoError) Unwrap() error   { return e.Err }
func (e *RepoError) Status() Status { return e.St }

// NewRepoError builds a RepoError defaulting to Permanent.
func NewRepoError(message string, err error) *RepoError {
	return &RepoError{Message: message, Err: err, St: Permanent}
}

// NewTemporaryRepoError builds a RepoError classified as Temporary.
func NewTemporaryRepoError(message string, err error) *RepoError {
	return &RepoError{Message: message, Err: err, St: Temporary}
}

// CrawlerError wraps a RepoError emitted by the crawl stream. Always
// Persistent: by the time the crawler surfaces it, internal/pacer has
// already made every attempt it allows (up to MaxAttempts, and only for
// Temporary failures).
type CrawlerError struct {
	Message string
	Err     error
}

func (e *CrawlerError) Error() string {
	return fmt.Sprintf("crawl: %s: %v", e.Message, e.Err)
}
func (e *CrawlerError) Unwrap() error  { return e.Err }
func (e *CrawlerError) Status() Status { return Persistent }

// JSONExtractError is returned by internal/jsonpath. Always Permanent.
type JSONExtractError struct {
	Message string
	Kind    ExtractErrorKind
}

// ExtractErrorKind distinguishes the five ways a dot-path lookup can fail.
type ExtractErrorKind int

const (
	KeyMissing ExtractErrorKind = iota
	IndexOutOfBounds
	NotAContainer
	IndexParse
	Deserialize
)

func (e *JSONExtractError) Error() string {
	return fmt.Sprintf("json extract: %s", e.Message)
}
func (e *JSONExtractError) Status() Status { return Permanent }

// ResolveError is returned by the DOI resolver utility.
type ResolveError struct {
	Message string
	Err     error
}

func (e *ResolveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolve doi: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("resolve doi: %s", e.Message)
}
func (e *ResolveError) Unwrap() error  { return e.Err }
func (e *ResolveError) Status() Status { return Permanent }

// PacerError wraps a Temporary error that survived every retry attempt,
// shared by every domain internal/pacer is called from (resolver, backend
// List calls, downloads) rather than borrowing one domain's error shape.
// Always Persistent.
type PacerError struct {
	Message string
	Err     error
}

func (e *PacerError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}
func (e *PacerError) Unwrap() error  { return e.Err }
func (e *PacerError) Status() Status { return Persistent }

// NewPacerError builds a PacerError.
func NewPacerError(message string, err error) *PacerError {
	return &PacerError{Message: message, Err: err}
}

// DownloadError covers HTTP, filesystem, and validation failures during
// download_with_validation.
type DownloadError struct {
	Message string
	Err     error
	St      Status
}

func (e *DownloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("download: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("download: %s", e.Message)
}
func (e *DownloadError) Unwrap() error  { return e.Err }
func (e *DownloadError) Status() Status { return e.St }

// NewDownloadError builds a DownloadError with the given status.
func NewDownloadError(message string, err error, status Status) *DownloadError {
	return &DownloadError{Message: message, Err: err, St: status}
}
