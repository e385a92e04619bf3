package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel causes wrapped by Error. Match them with errors.Is.
var (
	ErrMalformed          = errors.New("malformed entry")
	ErrBadSeverity        = errors.New("invalid severity")
	ErrBadLanguageOptions = errors.New("invalid language options")
	ErrBadPattern         = errors.New("invalid glob pattern")
	ErrUnknownPlugin      = errors.New("unknown plugin")
	ErrUnknownRule        = errors.New("unknown rule")
	ErrPluginVersion      = errors.New("plugin version not allowed")
)

// Error is a fatal, load-time configuration error. It identifies the
// offending entry by index (and name, when the entry has one), the field
// and, for map-valued fields, the key.
type Error struct {
	Entry int // -1 when the problem is not tied to a single entry
	Name  string
	Field string
	Key   string
	Err   error
}

// NewError builds an Error for entry index i.
func NewError(i int, name, field, key string, err error) *Error {
	return &Error{Entry: i, Name: name, Field: field, Key: key, Err: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Entry >= 0 {
		fmt.Fprintf(&b, "config[%d]", e.Entry)
		if e.Name != "" {
			fmt.Fprintf(&b, " (%s)", e.Name)
		}
	} else {
		b.WriteString("config")
	}
	if e.Field != "" {
		b.WriteString(".")
		b.WriteString(e.Field)
	}
	if e.Key != "" {
		fmt.Fprintf(&b, "[%q]", e.Key)
	}
	b.WriteString(": ")
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString("invalid")
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// detail wraps a sentinel with extra context while keeping errors.Is intact.
func detail(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
