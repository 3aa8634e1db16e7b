package jsondoc

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MaxNesting is the deepest container nesting accepted by Decode and Set.
const MaxNesting = 10

// Parse decodes data into a new document bounded by capacity.
func Parse(data []byte, capacity int) (*Document, error) {
	return Decode(bytes.NewReader(data), capacity)
}

// Decode reads one JSON value from r into a new document bounded by capacity.
// Anything after the first complete value is ignored.
func Decode(r io.Reader, capacity int) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	root, err := readValue(dec, 0)
	if err != nil {
		return nil, err
	}

	doc := &Document{root: root, capacity: capacity}
	if capacity > 0 {
		if used := doc.MemoryUsage(); used > capacity {
			return nil, errors.Wrapf(ErrNoMemory, "document needs %d bytes, capacity is %d", used, capacity)
		}
	}
	return doc, nil
}

func readValue(dec *json.Decoder, depth int) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, classify(err, depth)
	}

	switch t := tok.(type) {
	case json.Delim:
		if t != '{' && t != '[' {
			return nil, errors.Wrapf(ErrInvalidInput, "unexpected %q", rune(t))
		}
		if depth >= MaxNesting {
			return nil, errors.Wrapf(ErrTooDeep, "more than %d levels", MaxNesting)
		}
		if t == '{' {
			return readObject(dec, depth+1)
		}
		return readArray(dec, depth+1)
	case json.Number:
		return numberValue(t.String())
	case string, bool, nil:
		return t, nil
	default:
		return nil, errors.Wrapf(ErrInvalidInput, "unexpected token %v", tok)
	}
}

func readObject(dec *json.Decoder, depth int) (any, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, classify(err, depth)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidInput, "object key %v is not a string", tok)
		}
		v, err := readValue(dec, depth)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, classify(err, depth)
	}
	return obj, nil
}

func readArray(dec *json.Decoder, depth int) (any, error) {
	arr := make([]any, 0)
	for dec.More() {
		v, err := readValue(dec, depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, classify(err, depth)
	}
	return arr, nil
}

func classify(err error, depth int) error {
	var syntax *json.SyntaxError
	switch {
	case errors.Is(err, io.EOF) && depth == 0:
		return ErrEmptyInput
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return ErrIncompleteInput
	case errors.As(err, &syntax):
		return errors.Wrapf(ErrInvalidInput, "%s at offset %d", syntax.Error(), syntax.Offset)
	default:
		return errors.Wrap(err, "read json")
	}
}

// numberValue keeps integral literals as int64 and everything else as float64.
func numberValue(s string) (any, error) {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, errors.Wrapf(ErrInvalidInput, "bad number %q", s)
	}
	return f, nil
}
