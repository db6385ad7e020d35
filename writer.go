package rotolog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/rotolog/rotolog/filer"
	"github.com/rotolog/rotolog/rotation"
)

// These are the default log file and directory POSIX modes.
const (
	FileMode os.FileMode = 0o644
	DirMode  os.FileMode = 0o755
)

// Custom errors returned by this package.
var (
	ErrNoFilepath = errors.New("no log file path provided")
	ErrClosed     = errors.New("writer is closed")
)

// Writer owns a single log file's lifecycle: it appends opaque byte records,
// rotates the file when its trigger says so, and prunes numbered backups.
// All methods are safe for concurrent use; each Write lands contiguously in
// whichever file is active when it acquires the lock.
type Writer struct {
	path     string // base path; the active path may carry a time suffix.
	trig     rotation.Trigger
	fileMode os.FileMode
	dirMode  os.FileMode
	now      func() time.Time
	filer.Filer

	mu     sync.Mutex
	file   *os.File // active handle; nil after Close or a failed rotation.
	size   int64    // bytes written to the active handle, tracked in memory.
	suffix string   // time bucket the active file was opened for.
	closed bool
}

// New creates a Writer appending to basePath under the given trigger.
// The parent directory is created when missing. When a file already exists
// at the active path and fits the size budget, it is reused and appended to;
// otherwise the writer rotates immediately. Restarting processes therefore
// resume their previous log file instead of pushing it into a backup slot.
func New(basePath string, trig rotation.Trigger, opts ...Option) (*Writer, error) {
	if basePath == "" {
		return nil, ErrNoFilepath
	}

	if err := trig.Validate(); err != nil {
		return nil, err
	}

	writer := &Writer{
		path:     basePath,
		trig:     trig,
		fileMode: FileMode,
		dirMode:  DirMode,
		now:      time.Now,
		Filer:    filer.Default(),
	}

	for _, opt := range opts {
		opt(writer)
	}

	if dir := filepath.Dir(basePath); dir != "" {
		if err := writer.MkdirAll(dir, writer.dirMode); err != nil {
			return nil, fmt.Errorf("making directories for logfiles: %w", err)
		}
	}

	writer.mu.Lock()
	defer writer.mu.Unlock()

	if err := writer.open(); err != nil {
		return nil, err
	}

	return writer, nil
}

// Write appends p to the active log file, rotating first when the trigger
// fires against the pre-write state. A record larger than the size budget
// still succeeds: rotation produces an empty file and the record is then
// written whole. Returns the byte count actually written.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, ErrClosed
	}

	if w.file == nil || w.trig.Fires(w.size, w.suffix, len(p), w.now()) {
		if _, err := w.rotate(); err != nil {
			return 0, err
		}
	}

	size, err := w.file.Write(p)
	w.size += int64(size)

	if err != nil {
		return size, fmt.Errorf("writing log msg: %w", err)
	}

	return size, nil
}

// Rotate forces a rotation immediately and returns the active path that
// resulted.
func (w *Writer) Rotate() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return "", ErrClosed
	}

	return w.rotate()
}

// Flush durably syncs the active file's contents to storage. It is a
// success no-op when no file is open, and it never rotates.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}

	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("syncing log file: %w", err)
	}

	return nil
}

// Sync is an alias for Flush, satisfying zapcore.WriteSyncer.
func (w *Writer) Sync() error {
	return w.Flush()
}

// Path returns the path of the file currently being written.
func (w *Writer) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.suffix != "" {
		return w.path + "." + w.suffix
	}

	return w.path
}

// Size returns the byte count written to the active file so far.
func (w *Writer) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.size
}

// Close closes the active log file. Further calls return ErrClosed.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	w.closed = true

	if w.file == nil {
		return nil
	}

	err := w.file.Close()
	w.file = nil

	if err != nil {
		return fmt.Errorf("closing log file %s: %w", w.path, err)
	}

	return nil
}

// activePath is the file currently targeted for writes: the base path, plus
// a time-bucket suffix when time rotation is active.
func (w *Writer) activePath(now time.Time) string {
	if suffix := w.trig.Suffix(now); suffix != "" {
		return w.path + "." + suffix
	}

	return w.path
}

// open establishes the initial file state. Callers hold the lock.
func (w *Writer) open() error {
	active := w.activePath(w.now())

	if info, err := w.Stat(active); err == nil {
		if !w.trig.HasSize() || info.Size() <= w.trig.MaxBytes() {
			return w.openActive()
		}
	}

	_, err := w.rotate()

	return err
}

// openActive opens the active path append-mode and seeds the size counter
// from the filesystem. The counter is never re-derived after this.
func (w *Writer) openActive() error {
	now := w.now()

	file, err := w.OpenFile(w.activePath(now), os.O_WRONLY|os.O_APPEND|os.O_CREATE, w.fileMode)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	var size int64
	if info, err := file.Stat(); err == nil {
		size = info.Size()
	}

	w.file = file
	w.size = size
	w.suffix = w.trig.Suffix(now)

	return nil
}

// rotate closes the active handle, shifts the numbered backups when size
// rotation is active, and reopens the active path for the current time.
// The shift targets the time-suffixed active path, so hybrid triggers keep
// their backups next to the file they were cut from. Callers hold the lock.
func (w *Writer) rotate() (string, error) {
	if w.file != nil {
		err := w.file.Close()
		w.file = nil

		if err != nil {
			return "", fmt.Errorf("closing log file: %w", err)
		}
	}

	active := w.activePath(w.now())

	if w.trig.HasSize() {
		if err := w.shiftBackups(active); err != nil {
			return "", err
		}
	}

	if err := w.openActive(); err != nil {
		return "", err
	}

	return active, nil
}

// shiftBackups prunes the oldest numbered backup, shuffles the rest up one
// slot, and preserves the active file's bytes at the ".1" slot. The active
// file is copied and truncated in place rather than renamed away, keeping
// the active name continuously open for external tailers; the price is one
// extra copy of the file per rotation.
func (w *Writer) shiftBackups(active string) error {
	maxFiles, _ := w.trig.MaxFiles()

	oldest := active + "." + strconv.Itoa(maxFiles)
	if _, err := w.Stat(oldest); err == nil {
		if err := w.Remove(oldest); err != nil {
			return fmt.Errorf("removing oldest backup: %w", err)
		}
	}

	for i := maxFiles - 1; i >= 1; i-- {
		from := active + "." + strconv.Itoa(i)
		if _, err := w.Stat(from); err != nil {
			continue
		}

		if err := w.Rename(from, active+"."+strconv.Itoa(i+1)); err != nil {
			return fmt.Errorf("shifting backup file: %w", err)
		}
	}

	if _, err := w.Stat(active); err != nil {
		return nil // nothing to preserve yet.
	}

	if err := w.Copy(active, active+".1", w.fileMode); err != nil {
		return err
	}

	if err := w.Truncate(active); err != nil {
		return fmt.Errorf("truncating log file: %w", err)
	}

	return nil
}

// Our writer must satify an io.WriteCloser.
var _ io.WriteCloser = (*Writer)(nil)
