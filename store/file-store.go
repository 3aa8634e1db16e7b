package store

import (
	"os"

	"github.com/hamidzr/flashcfg/pkg/flashfs"
	"github.com/hamidzr/flashcfg/pkg/jsondoc"
	"github.com/pkg/errors"
)

func (s *Store) loadFromFile() error {
	if !s.fs.Exists(s.path) {
		s.log.Warnf("settings file %s does not exist", s.path)
		return errors.Wrap(os.ErrNotExist, s.path)
	}

	f, err := s.fs.Open(s.path, flashfs.ModeRead)
	if err != nil {
		s.log.Errorf("failed to open %s for reading: %v", s.path, err)
		return err
	}
	defer f.Close()

	doc, err := jsondoc.Decode(f, s.capacity)
	if err != nil {
		s.log.Errorf("failed to parse %s: %v", s.path, err)
		return errors.Wrapf(err, "parse %s", s.path)
	}

	s.doc.Replace(doc)
	s.dirty = false
	s.log.Infof("loaded settings from %s", s.path)
	return nil
}

// saveToFile truncates the file and writes the compact document. There is no
// rename step, so an interrupted write leaves a partial file behind.
func (s *Store) saveToFile() error {
	f, err := s.fs.Open(s.path, flashfs.ModeWrite)
	if err != nil {
		s.log.Errorf("failed to open %s for writing: %v", s.path, err)
		return err
	}

	if _, err := f.Write(s.doc.Marshal()); err != nil {
		_ = f.Close()
		s.log.Errorf("failed to write %s: %v", s.path, err)
		return errors.Wrapf(err, "write %s", s.path)
	}
	if err := f.Close(); err != nil {
		s.log.Errorf("failed to close %s: %v", s.path, err)
		return errors.Wrapf(err, "close %s", s.path)
	}

	s.dirty = false
	s.log.Infof("saved settings to %s", s.path)
	return nil
}
