package etherscan

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField means none of a field's accepted key spellings is present.
	ErrMissingField = errors.New("missing field")
	// ErrDuplicateField means more than one spelling of the same field is
	// present. It also matches ErrMissingField: the field was not present
	// exactly once.
	ErrDuplicateField error = fieldCountError("duplicate field")
	// ErrMalformedHex means an address or hash is not 0x-prefixed hex of the right length.
	ErrMalformedHex = errors.New("malformed hex")
	// ErrNotText means a field that must be a JSON string holds another JSON type.
	ErrNotText = errors.New("expected JSON string")
	// ErrConfigMissing means the explorer API key was not configured.
	ErrConfigMissing = errors.New("explorer API key is not set")
	// ErrNoTransport means the Fetcher was built without a Transport.
	ErrNoTransport = errors.New("fetcher has no transport")
)

type fieldCountError string

func (e fieldCountError) Error() string { return string(e) }

func (e fieldCountError) Is(target error) bool { return target == ErrMissingField }

// RecordParseError reports the field that stopped a transfer record from
// decoding. Err wraps the cause: ErrMissingField, ErrDuplicateField,
// ErrMalformedHex, ErrNotText or numeric.ErrMalformedNumber.
type RecordParseError struct {
	Field string
	Err   error
}

func (e *RecordParseError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Field, e.Err)
}

func (e *RecordParseError) Unwrap() error { return e.Err }

// FailureKind classifies why a fetch did not reach StateDone.
type FailureKind string

const (
	FailureConfigMissing FailureKind = "config_missing"
	FailureTransport     FailureKind = "transport_error"
	FailureParse         FailureKind = "parse_error"
)

// FetchError is the single error type returned by Fetcher. State is the state
// the fetch was in when it failed.
type FetchError struct {
	Kind  FailureKind
	State FetchState
	Err   error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FailureConfigMissing:
		return fmt.Sprintf("configuration: %v", e.Err)
	case FailureTransport:
		return fmt.Sprintf("request failed: %v", e.Err)
	case FailureParse:
		return fmt.Sprintf("invalid explorer response: %v", e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// KindOf returns the FailureKind carried by err, or "" when err is not a
// FetchError.
func KindOf(err error) FailureKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
