// Package rotation holds the policy half of the rotating log writer.
// A Trigger describes when the active log file must be rotated and how many
// numbered backups to keep. Triggers are immutable values with pure decision
// methods; all of the file work happens in the writer that consults them.
package rotation

import (
	"errors"
	"fmt"
	"time"
)

// Defaults used when a trigger is decoded from the short string form.
const (
	DefaultMaxBytes = 10 * 1024 * 1024
	DefaultMaxFiles = 5
)

// Custom errors returned by this package.
var (
	ErrInvalidTrigger = errors.New("invalid rotation trigger")
	ErrSizeParse      = errors.New("invalid rotation size")
)

// Kind selects one of the four trigger variants.
type Kind uint8

// The closed set of trigger variants.
const (
	KindNever Kind = iota // never rotate.
	KindTime              // rotate when a period boundary is crossed.
	KindSize              // rotate when the file would grow past MaxBytes.
	KindBoth              // rotate on either condition.
)

// Trigger describes when log rotation happens and how many backup files
// to retain. The zero value never rotates. Obtain one from Never, Time,
// Size, Both or Decode.
type Trigger struct {
	kind     Kind
	period   Period
	maxBytes int64
	maxFiles int
}

// Never returns a trigger that never rotates.
func Never() Trigger {
	return Trigger{kind: KindNever}
}

// Time returns a trigger that rotates when the period boundary is crossed.
func Time(period Period) Trigger {
	return Trigger{kind: KindTime, period: period}
}

// Size returns a trigger that rotates when the active file would grow past
// maxBytes, keeping at most maxFiles numbered backups.
func Size(maxBytes int64, maxFiles int) Trigger {
	return Trigger{kind: KindSize, maxBytes: maxBytes, maxFiles: maxFiles}
}

// Both returns a trigger that rotates when either the period boundary is
// crossed or the active file would grow past maxBytes.
func Both(period Period, maxBytes int64, maxFiles int) Trigger {
	return Trigger{kind: KindBoth, period: period, maxBytes: maxBytes, maxFiles: maxFiles}
}

// Kind returns the trigger variant.
func (t Trigger) Kind() Kind {
	return t.kind
}

// Period returns the rotation period. Only meaningful for time-based variants.
func (t Trigger) Period() Period {
	return t.period
}

// MaxBytes returns the size threshold. Zero when size rotation is inactive.
func (t Trigger) MaxBytes() int64 {
	return t.maxBytes
}

// MaxFiles returns the number of numbered backups to keep, and whether the
// trigger prunes backups at all.
func (t Trigger) MaxFiles() (int, bool) {
	if !t.HasSize() {
		return 0, false
	}

	return t.maxFiles, true
}

// HasSize reports whether the trigger includes size-based rotation.
func (t Trigger) HasSize() bool {
	return t.kind == KindSize || t.kind == KindBoth
}

// HasTime reports whether the trigger includes time-based rotation.
// A time variant carrying PeriodNever counts as inactive.
func (t Trigger) HasTime() bool {
	return (t.kind == KindTime || t.kind == KindBoth) && t.period != PeriodNever
}

// Validate checks the trigger's thresholds. Size rotation demands a positive
// byte budget and at least one backup file; rejecting a zero file count here
// keeps the writer's shift loop from silently collapsing later.
func (t Trigger) Validate() error {
	if !t.HasSize() {
		return nil
	}

	if t.maxBytes <= 0 {
		return fmt.Errorf("%w: max size must be positive, got %d", ErrInvalidTrigger, t.maxBytes)
	}

	if t.maxFiles < 1 {
		return fmt.Errorf("%w: max files must be at least 1, got %d", ErrInvalidTrigger, t.maxFiles)
	}

	return nil
}

// Suffix returns the time-bucket label for the period containing now.
// Empty when the trigger has no active time rotation.
func (t Trigger) Suffix(now time.Time) string {
	if t.kind != KindTime && t.kind != KindBoth {
		return ""
	}

	return t.period.Suffix(now)
}

// Fires reports whether a write of n more bytes requires rotating first,
// given the open file's byte count and the time-bucket suffix it was opened
// for. Pure: the caller supplies the clock.
func (t Trigger) Fires(size int64, suffix string, n int, now time.Time) bool {
	switch t.kind {
	case KindTime:
		return t.HasTime() && t.period.Suffix(now) != suffix
	case KindSize:
		return size+int64(n) > t.maxBytes
	case KindBoth:
		if t.HasTime() && t.period.Suffix(now) != suffix {
			return true
		}

		return size+int64(n) > t.maxBytes
	case KindNever:
		fallthrough
	default:
		return false
	}
}

// String describes the trigger for error messages and debug output.
func (t Trigger) String() string {
	switch t.kind {
	case KindTime:
		return fmt.Sprintf("time(%s)", t.period)
	case KindSize:
		return fmt.Sprintf("size(%d bytes, %d files)", t.maxBytes, t.maxFiles)
	case KindBoth:
		return fmt.Sprintf("both(%s, %d bytes, %d files)", t.period, t.maxBytes, t.maxFiles)
	case KindNever:
		fallthrough
	default:
		return "never"
	}
}
