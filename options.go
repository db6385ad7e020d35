package rotolog

import (
	"os"
	"time"

	"github.com/rotolog/rotolog/filer"
)

// Option tweaks a Writer at construction time.
type Option func(*Writer)

// WithFileMode sets the POSIX mode used for created log files.
func WithFileMode(mode os.FileMode) Option {
	return func(w *Writer) { w.fileMode = mode }
}

// WithDirMode sets the POSIX mode used for created log directories.
func WithDirMode(mode os.FileMode) Option {
	return func(w *Writer) { w.dirMode = mode }
}

// WithFiler replaces the filesystem procedures. Useful for tests and for
// observing rotation file operations.
func WithFiler(f filer.Filer) Option {
	return func(w *Writer) { w.Filer = f }
}

// WithClock replaces the wall clock consulted for time-bucket labels.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) { w.now = now }
}
