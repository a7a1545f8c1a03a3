// Package logging sets up the session log. The TUI owns stdout, so
// everything goes to a file under the configured directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const fileName = "teachme.log"

// Open returns a logger writing to dir/teachme.log and a closer for
// the underlying file. When the file cannot be opened the logger is a
// no-op and the error is returned for the caller to surface or ignore.
func Open(dir string) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("creating log directory: %w", err)
	}

	path := filepath.Join(dir, fileName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("opening log file: %w", err)
	}

	writer := zerolog.ConsoleWriter{
		Out:        f,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	log := zerolog.New(writer).With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()
	return log, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
