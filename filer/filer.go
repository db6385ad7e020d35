// Package filer is the filesystem indirection used by the rotolog writer.
// Override it to observe or redirect the file operations a rotation performs.
package filer

//go:generate mockgen -destination=../mocks/filer.go -package=mocks github.com/rotolog/rotolog/filer Filer

import (
	"fmt"
	"io"
	"os"
)

// Filer is used to override file-managing procedures.
type Filer interface {
	Remove(fileName string) error
	Rename(fileName, newPath string) error
	MkdirAll(path string, perm os.FileMode) error
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	Stat(fileName string) (os.FileInfo, error)
	// Copy duplicates the bytes of src into dst, creating or truncating dst.
	Copy(src, dst string, perm os.FileMode) error
	// Truncate cuts the named file to zero length.
	Truncate(fileName string) error
}

// Default returns a Filer that uses the real filesystem.
func Default() Filer {
	return &File{}
}

// File can be embedded in a custom type to provide the missing methods for
// the Filer interface.
type File struct{}

// Remove provides os.Remove.
func (f *File) Remove(fileName string) error {
	return os.Remove(fileName)
}

// Rename provides os.Rename.
func (f *File) Rename(fileName, newPath string) error {
	return os.Rename(fileName, newPath)
}

// MkdirAll provides os.MkdirAll.
func (f *File) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// OpenFile provides os.OpenFile.
func (f *File) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

// Stat provides os.Stat.
func (f *File) Stat(fileName string) (os.FileInfo, error) {
	return os.Stat(fileName)
}

// Copy duplicates src into dst byte for byte.
func (f *File) Copy(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source file: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("opening backup file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()

		return fmt.Errorf("copying log file: %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("closing backup file: %w", err)
	}

	return nil
}

// Truncate provides os.Truncate with a zero length.
func (f *File) Truncate(fileName string) error {
	return os.Truncate(fileName, 0)
}
