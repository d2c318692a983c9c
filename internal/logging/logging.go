// Package logging centralizes the structured logger used across
// datahugger-go, in the same spirit as rclone's fs.Logf/fs.Errorf
// convention: callers attach structured fields instead of interpolating
// identifiers into the message string.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the package-level logger. It is safe for concurrent use.
var Log = logrus.New()

func init() {
	Log.SetOutput(os.Stderr)
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	Log.SetLevel(levelFromEnv())
}

func levelFromEnv() logrus.Level {
	switch os.Getenv("DATAHUGGER_LOG") {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "":
		return logrus.InfoLevel
	default:
		return logrus.InfoLevel
	}
}

// WithRemote returns an entry tagged with the crawl-relative path or remote
// identifier under discussion, mirroring rclone's "pass the Fs/Object as
// the log subject" convention.
func WithRemote(remote string) *logrus.Entry {
	return Log.WithField("remote", remote)
}

// WithBackend returns an entry tagged with the name of the dataset backend
// in use (e.g. "osf", "zenodo", "github").
func WithBackend(backend string) *logrus.Entry {
	return Log.WithField("backend", backend)
}
