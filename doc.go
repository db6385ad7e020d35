// Package rotolog is a self-rotating log file sink. It provides an
// io.WriteCloser that appends already-formatted log records to a file and
// rotates the file when a size threshold is crossed, a calendar period ends,
// or either happens, keeping a bounded set of numbered backups.
//
// The Writer plugs into anything that writes bytes: log.SetOutput(), a zap
// core, or your own code. The rotation subpackage holds the policy values
// that decide when rotation happens; the filer subpackage lets you override
// the file operations a rotation performs.
//
// On top of the writer, the package offers a small configuration surface
// (YAML/JSON decoding with string-or-map rotation shorthands), a fluent
// Builder, and Init(), which wires the writer into a zap logger and hands
// back a Guard you close on shutdown.
//
// Rotation preserves the active file name: backups are produced by copying
// the active file to a ".1" suffix and truncating it in place, so an external
// `tail -f` keeps working across rotations.
package rotolog
