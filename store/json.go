package store

import (
	"github.com/hamidzr/flashcfg/pkg/jsondoc"
	"github.com/pkg/errors"
)

// SettingsJSON returns the compact JSON form of the settings. An empty store
// yields "{}".
func (s *Store) SettingsJSON() string {
	return s.doc.String()
}

// UpdateFromJSON merges the top-level keys of data into the settings and
// saves. Nested objects and arrays replace the stored value as a whole. The
// store is marked dirty even when nothing changed, so the file is always
// rewritten. Invalid JSON leaves the settings untouched.
func (s *Store) UpdateFromJSON(data string) error {
	incoming, err := jsondoc.Parse([]byte(data), s.capacity)
	if err != nil {
		s.log.Errorf("update rejected, invalid JSON: %v", err)
		return errors.Wrap(err, "update settings")
	}

	incoming.Object().Range(func(key string, value any) bool {
		if err := s.doc.Set(key, value); err != nil {
			s.log.Warnf("update skipped %s: %v", key, err)
		}
		return true
	})
	s.dirty = true

	if err := s.saveToFile(); err != nil {
		s.log.Errorf("failed to save updated settings: %v", err)
		return err
	}
	s.log.Info("settings updated from JSON and saved")
	return nil
}
