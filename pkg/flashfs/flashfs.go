// Package flashfs describes the small filesystem surface a settings store
// needs from a flash partition, and provides an afero-backed implementation
// that works on a host directory or entirely in memory.
package flashfs

import (
	"io"

	"github.com/pkg/errors"
)

// ErrNotMounted is returned by file operations issued before Mount succeeded.
var ErrNotMounted = errors.New("filesystem not mounted")

// Mode selects how Open prepares a file.
type Mode int

const (
	// ModeRead opens an existing file for reading.
	ModeRead Mode = iota
	// ModeWrite creates or truncates a file for writing.
	ModeWrite
)

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "r"
	case ModeWrite:
		return "w"
	default:
		return "?"
	}
}

// File is an open handle. Callers close it before returning.
type File interface {
	io.Reader
	io.Writer
	io.Closer
}

// FileSystem is the storage a settings store is built on.
type FileSystem interface {
	// Mount prepares the filesystem for use.
	Mount() error
	// Exists reports whether name refers to an existing file.
	Exists(name string) bool
	// Open opens name in the given mode.
	Open(name string, mode Mode) (File, error)
}
