// Package store keeps device settings in a JSON document persisted on a
// flash filesystem. A Store loads the document once at Begin, serves typed
// reads and writes from memory, and writes the file back only when something
// changed.
//
// A Store is not safe for concurrent use.
package store

import (
	"fmt"

	"github.com/hamidzr/flashcfg/internal/logger"
	"github.com/hamidzr/flashcfg/pkg/flashfs"
	"github.com/hamidzr/flashcfg/pkg/jsondoc"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultPath is the settings file used when WithPath is not given.
	DefaultPath = "/config.json"
	// DefaultCapacity bounds the serialized document size in bytes.
	DefaultCapacity = 1024
)

// ErrMount is returned by Begin when the filesystem cannot be mounted.
var ErrMount = errors.New("filesystem mount failed")

// Store is a settings document backed by a single file.
type Store struct {
	fs       flashfs.FileSystem
	path     string
	capacity int
	doc      *jsondoc.Document
	dirty    bool
	log      logrus.FieldLogger
}

// Option configures a Store.
type Option func(*Store)

// WithPath sets the settings file name on the filesystem.
func WithPath(path string) Option {
	return func(s *Store) {
		s.path = path
	}
}

// WithCapacity sets the document capacity in bytes. Zero or less is unbounded.
func WithCapacity(capacity int) Option {
	return func(s *Store) {
		s.capacity = capacity
	}
}

// WithLogger replaces the default settings component logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// New creates a store over fsys. It performs no I/O; call Begin before use.
func New(fsys flashfs.FileSystem, opts ...Option) *Store {
	s := &Store{
		fs:       fsys,
		path:     DefaultPath,
		capacity: DefaultCapacity,
		log:      logger.Component(logger.SettingsComponent),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.doc = jsondoc.New(s.capacity)
	return s
}

// Begin mounts the filesystem and loads the settings file. A missing or
// unreadable file is not an error: the store starts empty and dirty so the
// next Save creates the file. Only a mount failure is returned.
func (s *Store) Begin() error {
	if err := s.fs.Mount(); err != nil {
		s.log.Errorf("failed to mount filesystem: %v", err)
		return fmt.Errorf("%w: %w", ErrMount, err)
	}

	if err := s.loadFromFile(); err != nil {
		s.log.Warnf("could not load settings, starting empty: %v", err)
		s.doc.Clear()
		s.dirty = true
	}
	return nil
}

// Save writes the document if it changed since the last load or save.
func (s *Store) Save() error {
	if !s.dirty {
		s.log.Debug("no changes to save")
		return nil
	}
	return s.saveToFile()
}

// Reload discards in-memory changes and reads the file again. If the file
// cannot be loaded the document and dirty flag stay as they were.
func (s *Store) Reload() error {
	if s.dirty {
		s.log.Warn("unsaved changes will be lost by reload")
	}
	return s.loadFromFile()
}

// Dirty reports whether the document may differ from the file.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Path returns the settings file name.
func (s *Store) Path() string {
	return s.path
}

// Capacity returns the document capacity in bytes.
func (s *Store) Capacity() int {
	return s.capacity
}

// Document returns the underlying document. Changes made through it are not
// tracked: the caller is responsible for persisting them, for example by
// following up with a typed setter or UpdateFromJSON.
func (s *Store) Document() *jsondoc.Document {
	return s.doc
}
