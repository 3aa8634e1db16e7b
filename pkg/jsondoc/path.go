package jsondoc

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Query looks up a gjson path such as "wifi.ssid" or "servers.0.port".
// Unlike Get it reaches into nested objects and arrays.
func (d *Document) Query(path string) (any, bool) {
	res := gjson.GetBytes(d.Marshal(), path)
	if !res.Exists() {
		return nil, false
	}
	switch res.Type {
	case gjson.Null:
		return nil, true
	case gjson.False:
		return false, true
	case gjson.True:
		return true, true
	case gjson.String:
		return res.Str, true
	case gjson.Number:
		v, err := numberValue(res.Raw)
		if err != nil {
			return res.Num, true
		}
		return v, true
	default:
		sub, err := Parse([]byte(res.Raw), 0)
		if err != nil {
			return nil, false
		}
		return sub.root, true
	}
}

// SetPath stores value at a sjson path, creating intermediate objects as
// needed. The result must still fit the document's capacity.
func (d *Document) SetPath(path string, value any) error {
	v, err := normalize(value, 1)
	if err != nil {
		return err
	}
	out, err := sjson.SetRawBytes(d.Marshal(), path, appendValue(nil, v))
	if err != nil {
		return errors.Wrapf(err, "set path %q", path)
	}
	return d.reparse(out)
}

// DeletePath removes the value at a sjson path. Missing paths are not an error.
func (d *Document) DeletePath(path string) error {
	out, err := sjson.DeleteBytes(d.Marshal(), path)
	if err != nil {
		return errors.Wrapf(err, "delete path %q", path)
	}
	return d.reparse(out)
}

func (d *Document) reparse(data []byte) error {
	next, err := Parse(data, d.capacity)
	if err != nil {
		return err
	}
	d.root = next.root
	return nil
}
