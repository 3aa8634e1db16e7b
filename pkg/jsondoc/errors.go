package jsondoc

import "github.com/pkg/errors"

// Parse errors. Decode wraps one of these with the decoder's message.
var (
	ErrEmptyInput      = errors.New("empty input")
	ErrIncompleteInput = errors.New("incomplete input")
	ErrInvalidInput    = errors.New("invalid input")
	ErrTooDeep         = errors.New("nesting too deep")
)

// Mutation errors.
var (
	ErrNoMemory        = errors.New("document capacity exceeded")
	ErrNotObject       = errors.New("document root is not an object")
	ErrUnsupportedType = errors.New("unsupported value type")
)

// IsParseError reports whether err came from decoding malformed or oversized input.
func IsParseError(err error) bool {
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrIncompleteInput) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrTooDeep) ||
		errors.Is(err, ErrNoMemory)
}
