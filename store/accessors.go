package store

import (
	"math"

	"github.com/hamidzr/flashcfg/pkg/jsondoc"
	"github.com/pkg/errors"
)

// floatTolerance is the smallest change SetFloat treats as a new value.
const floatTolerance = 1e-6

// Exists reports whether key is present, whatever its value.
func (s *Store) Exists(key string) bool {
	return s.doc.ContainsKey(key)
}

// Keys returns the top-level keys in file order.
func (s *Store) Keys() []string {
	return s.doc.Keys()
}

// GetInt returns key coerced to an int, or def if key is absent.
func (s *Store) GetInt(key string, def int) int {
	v, ok := s.doc.Get(key)
	if !ok {
		return def
	}
	return int(jsondoc.AsInt(v))
}

// GetBool returns key coerced to a bool, or def if key is absent.
func (s *Store) GetBool(key string, def bool) bool {
	v, ok := s.doc.Get(key)
	if !ok {
		return def
	}
	return jsondoc.AsBool(v)
}

// GetFloat returns key coerced to a float64, or def if key is absent.
func (s *Store) GetFloat(key string, def float64) float64 {
	v, ok := s.doc.Get(key)
	if !ok {
		return def
	}
	return jsondoc.AsFloat(v)
}

// GetString returns key coerced to a string, or def if key is absent.
func (s *Store) GetString(key string, def string) string {
	v, ok := s.doc.Get(key)
	if !ok {
		return def
	}
	return jsondoc.AsString(v)
}

// SetInt stores value under key. Writing the number already stored is a no-op.
func (s *Store) SetInt(key string, value int) error {
	if cur, ok := s.doc.Get(key); ok && numberEquals(cur, int64(value)) {
		return nil
	}
	return s.set(key, int64(value))
}

// SetBool stores value under key. Writing the bool already stored is a no-op.
func (s *Store) SetBool(key string, value bool) error {
	if cur, ok := s.doc.Get(key); ok {
		if b, isBool := cur.(bool); isBool && b == value {
			return nil
		}
	}
	return s.set(key, value)
}

// SetFloat stores value under key unless the stored value is within 1e-6 of it.
func (s *Store) SetFloat(key string, value float64) error {
	if cur, ok := s.doc.Get(key); ok && math.Abs(jsondoc.AsFloat(cur)-value) <= floatTolerance {
		return nil
	}
	return s.set(key, value)
}

// SetString stores value under key. Writing the string already stored is a no-op.
func (s *Store) SetString(key string, value string) error {
	if cur, ok := s.doc.Get(key); ok {
		if str, isString := cur.(string); isString && str == value {
			return nil
		}
	}
	return s.set(key, value)
}

// Remove deletes key. Removing an absent key does not mark the store dirty.
func (s *Store) Remove(key string) {
	if s.doc.Remove(key) {
		s.dirty = true
	}
}

// Clear drops every setting. Clearing an empty store is a no-op.
func (s *Store) Clear() {
	if s.doc.IsEmpty() {
		return
	}
	s.doc.Clear()
	s.dirty = true
}

func (s *Store) set(key string, value any) error {
	if err := s.doc.Set(key, value); err != nil {
		s.log.Warnf("failed to set %s: %v", key, err)
		return errors.Wrapf(err, "set %s", key)
	}
	s.dirty = true
	return nil
}

func numberEquals(cur any, value int64) bool {
	switch n := cur.(type) {
	case int64:
		return n == value
	case float64:
		return n == float64(value)
	default:
		return false
	}
}
