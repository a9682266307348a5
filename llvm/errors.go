package llvm

import (
	"errors"
	"fmt"
	"strings"

	"irkit/llc"
)

var (
	// ErrInvalidName is returned when a name cannot be passed to the native
	// layer because it contains a NUL byte.
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidText is returned when string constant text contains a NUL
	// byte.
	ErrInvalidText = errors.New("invalid text")
)

// TextError reports a string rejected before reaching the native layer.
type TextError struct {
	// Err is ErrInvalidName or ErrInvalidText.
	Err error

	// Text is the rejected string.
	Text string

	// Offset is the byte offset of the first NUL in Text.
	Offset int
}

func (e *TextError) Error() string {
	return fmt.Sprintf("%s %q: NUL byte at offset %d", e.Err, e.Text, e.Offset)
}

func (e *TextError) Unwrap() error {
	return e.Err
}

// checkText returns a TextError wrapping kind if s contains a NUL byte.
func checkText(kind error, s string) error {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return &TextError{Err: kind, Text: s, Offset: i}
	}

	return nil
}

// cstring converts a name for the native layer.
func cstring(name string) (llc.CString, error) {
	if err := checkText(ErrInvalidName, name); err != nil {
		return nil, err
	}

	return llc.NewCString(name), nil
}
