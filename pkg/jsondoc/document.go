// Package jsondoc is a small JSON document model for settings files.
//
// A Document holds a single JSON value (normally an object) and a fixed
// capacity in bytes. The capacity bounds the compact serialization of the
// document: a mutation that would grow it past the limit is rejected and
// leaves the document unchanged, and Decode refuses input that does not fit.
// Objects keep their key insertion order so files are rewritten stably.
//
// Values are represented as nil, bool, int64, float64, string, []any and
// *Object. The As* helpers read any of them as a requested scalar type using
// permissive coercion (see AsInt, AsFloat, AsBool and AsString).
package jsondoc

import (
	"github.com/pkg/errors"
	"github.com/tidwall/pretty"
)

// Document is a bounded JSON value. The zero value is an unbounded null document.
type Document struct {
	root     any
	capacity int
}

// New returns an empty (null) document. A capacity of zero or less is unbounded.
func New(capacity int) *Document {
	return &Document{capacity: capacity}
}

// Capacity returns the byte limit given at construction.
func (d *Document) Capacity() int {
	return d.capacity
}

// MemoryUsage returns the length of the compact serialization.
func (d *Document) MemoryUsage() int {
	return len(d.Marshal())
}

// IsNull reports whether the document holds no value at all.
func (d *Document) IsNull() bool {
	return d.root == nil
}

// IsEmpty reports whether the document is null or an object without keys.
func (d *Document) IsEmpty() bool {
	if d.root == nil {
		return true
	}
	obj, ok := d.root.(*Object)
	return ok && obj.Len() == 0
}

// Clear resets the document to null.
func (d *Document) Clear() {
	d.root = nil
}

// Root returns the raw root value.
func (d *Document) Root() any {
	return d.root
}

// Object returns the root object, or nil if the root is not an object.
// Changes made through it bypass the capacity check.
func (d *Document) Object() *Object {
	obj, _ := d.root.(*Object)
	return obj
}

// ContainsKey reports whether the root object has key, whatever its value.
func (d *Document) ContainsKey(key string) bool {
	_, ok := d.Object().Get(key)
	return ok
}

// Get returns the value stored under key in the root object.
func (d *Document) Get(key string) (any, bool) {
	return d.Object().Get(key)
}

// Keys returns the root object's keys in insertion order.
func (d *Document) Keys() []string {
	return d.Object().Keys()
}

// Len returns the number of keys in the root object.
func (d *Document) Len() int {
	return d.Object().Len()
}

// Set stores value under key in the root object. A null document becomes an
// object. The value is normalized into the document representation; Go types
// without a JSON form fail with ErrUnsupportedType.
func (d *Document) Set(key string, value any) error {
	v, err := normalize(value, 1)
	if err != nil {
		return err
	}

	created := false
	obj, ok := d.root.(*Object)
	if !ok {
		if d.root != nil {
			return ErrNotObject
		}
		obj = NewObject()
		d.root = obj
		created = true
	}

	prev, existed := obj.Get(key)
	obj.Set(key, v)
	if d.capacity > 0 {
		if used := d.MemoryUsage(); used > d.capacity {
			if existed {
				obj.Set(key, prev)
			} else {
				obj.Delete(key)
			}
			if created {
				d.root = nil
			}
			return errors.Wrapf(ErrNoMemory, "setting %q needs %d bytes, capacity is %d", key, used, d.capacity)
		}
	}
	return nil
}

// Remove deletes key from the root object and reports whether it was present.
func (d *Document) Remove(key string) bool {
	return d.Object().Delete(key)
}

// Replace takes over src's contents. The receiver keeps its own capacity.
func (d *Document) Replace(src *Document) {
	d.root = src.root
}

// Clone returns a deep copy with the same capacity.
func (d *Document) Clone() *Document {
	return &Document{root: cloneValue(d.root), capacity: d.capacity}
}

// Marshal returns the compact JSON form. A null document is written as {}.
func (d *Document) Marshal() []byte {
	if d.root == nil {
		return []byte("{}")
	}
	return appendValue(nil, d.root)
}

// MarshalIndent returns a human readable JSON form.
func (d *Document) MarshalIndent() []byte {
	return pretty.Pretty(d.Marshal())
}

// MarshalJSON implements json.Marshaler.
func (d *Document) MarshalJSON() ([]byte, error) {
	return d.Marshal(), nil
}

func (d *Document) String() string {
	return string(d.Marshal())
}
