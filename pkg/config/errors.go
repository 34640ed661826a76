package config

import "fmt"

// Kind classifies configuration load failures.
type Kind string

const (
	// KindMissing indicates the configuration file does not exist.
	KindMissing Kind = "missing"
	// KindMalformed indicates the file could not be parsed as YAML.
	KindMalformed Kind = "malformed"
	// KindInvalidLayout indicates an unknown or incomplete csv_format variant.
	KindInvalidLayout Kind = "invalid_layout"
	// KindInvalidValue indicates a recognized key with an unusable value.
	KindInvalidValue Kind = "invalid_value"
)

// Error is a configuration load failure. All failures are fatal: no rows are
// processed until Load succeeds.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("config %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}
