package flashfs

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// AferoFS implements FileSystem on top of an afero.Fs.
type AferoFS struct {
	fs           afero.Fs
	formatOnFail bool
	mounted      bool
}

// Option configures an AferoFS.
type Option func(*AferoFS)

// WithFormatOnFail makes Mount create a missing root directory instead of failing.
func WithFormatOnFail(format bool) Option {
	return func(a *AferoFS) {
		a.formatOnFail = format
	}
}

// New wraps an existing afero filesystem.
func New(fs afero.Fs, opts ...Option) *AferoFS {
	a := &AferoFS{fs: fs}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewDirFS returns a filesystem rooted at a host directory. File names such as
// "/config.json" resolve inside root.
func NewDirFS(root string, opts ...Option) *AferoFS {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return New(afero.NewBasePathFs(afero.NewOsFs(), root), opts...)
}

// NewMemFS returns an in-memory filesystem.
func NewMemFS(opts ...Option) *AferoFS {
	return New(afero.NewMemMapFs(), opts...)
}

// Fs returns the underlying afero filesystem.
func (a *AferoFS) Fs() afero.Fs {
	return a.fs
}

// Mounted reports whether Mount has succeeded.
func (a *AferoFS) Mounted() bool {
	return a.mounted
}

// Mount checks that the root directory exists, creating it when
// WithFormatOnFail is set.
func (a *AferoFS) Mount() error {
	info, err := a.fs.Stat("/")
	switch {
	case err == nil && !info.IsDir():
		return errors.New("mount: root is not a directory")
	case os.IsNotExist(err) && a.formatOnFail:
		if err := a.fs.MkdirAll("/", 0o755); err != nil {
			return errors.Wrap(err, "mount: format root")
		}
	case err != nil:
		return errors.Wrap(err, "mount")
	}
	a.mounted = true
	return nil
}

// Exists reports whether name is an existing regular file.
func (a *AferoFS) Exists(name string) bool {
	if !a.mounted {
		return false
	}
	info, err := a.fs.Stat(name)
	return err == nil && !info.IsDir()
}

// Open opens name for reading, or creates/truncates it for writing.
func (a *AferoFS) Open(name string, mode Mode) (File, error) {
	if !a.mounted {
		return nil, ErrNotMounted
	}
	var (
		f   afero.File
		err error
	)
	switch mode {
	case ModeRead:
		f, err = a.fs.Open(name)
	case ModeWrite:
		f, err = a.fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	default:
		return nil, errors.Errorf("open %s: unknown mode %d", name, mode)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open %s (%s)", name, mode)
	}
	return f, nil
}

// RealPath returns the host path of name for directory-backed filesystems.
func (a *AferoFS) RealPath(name string) (string, error) {
	bp, ok := a.fs.(*afero.BasePathFs)
	if !ok {
		return "", errors.New("filesystem is not backed by a host directory")
	}
	return bp.RealPath(name)
}
