package stegerr

import (
	"fmt"
)

/*
 * every failure the library can produce is an *Error with a Kind.
 * callers switch on the kind (or use errors.As) instead of matching
 * message strings.
 */

type Kind int

const (
	// the carrier cannot hold the framed payload
	CarrierTooSmall Kind = iota + 1
	// the decoded media violates cursor assumptions (zero samples, bad buffer)
	CarrierFormat
	// first envelope byte is not 0x01, 0x02 or 0x04
	UnsupportedContentVersion
	// stream ended before a terminator or a length-prefixed block completed
	Truncated
	// broken zip archive or invalid utf-8 text
	PayloadMalformed
	// two entries with the same name in one payload
	DuplicateEntryName
	// empty name or a name with path separators
	InvalidEntryName
	// passphrase did not authenticate the ciphertext
	AuthenticationFailed
	// wrapped adapter or filesystem error
	Io
)

func (k Kind) String() string {
	switch k {
	case CarrierTooSmall:
		return "carrier too small"
	case CarrierFormat:
		return "invalid carrier format"
	case UnsupportedContentVersion:
		return "unsupported content version"
	case Truncated:
		return "truncated stream"
	case PayloadMalformed:
		return "malformed payload"
	case DuplicateEntryName:
		return "duplicate entry name"
	case InvalidEntryName:
		return "invalid entry name"
	case AuthenticationFailed:
		return "authentication failed"
	case Io:
		return "i/o error"
	}
	return fmt.Sprintf("unknown error kind %d", int(k))
}

type Error struct {
	Kind Kind

	// CarrierTooSmall
	Needed    int
	Available int

	// UnsupportedContentVersion
	VersionByte byte

	// Truncated: which envelope variant ran out of bytes
	Variant string

	// DuplicateEntryName / InvalidEntryName
	Name string

	// wrapped cause, if any
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case CarrierTooSmall:
		return fmt.Sprintf("carrier too small: need %d bytes, have %d", e.Needed, e.Available)
	case UnsupportedContentVersion:
		return fmt.Sprintf("unsupported content version 0x%02x", e.VersionByte)
	case Truncated:
		return fmt.Sprintf("truncated %s stream", e.Variant)
	case DuplicateEntryName:
		return fmt.Sprintf("duplicate entry name %q", e.Name)
	case InvalidEntryName:
		return fmt.Sprintf("invalid entry name %q", e.Name)
	}
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func TooSmall(needed, available int) *Error {
	return &Error{Kind: CarrierTooSmall, Needed: needed, Available: available}
}

func BadVersion(b byte) *Error {
	return &Error{Kind: UnsupportedContentVersion, VersionByte: b}
}

func TruncatedIn(variant string) *Error {
	return &Error{Kind: Truncated, Variant: variant}
}

func BadName(name string) *Error {
	return &Error{Kind: InvalidEntryName, Name: name}
}

func DupName(name string) *Error {
	return &Error{Kind: DuplicateEntryName, Name: name}
}

// KindOf reports the kind of err, or 0 for foreign errors.
func KindOf(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return 0
		}
		err = u.Unwrap()
	}
	return 0
}

// ExitCode maps an error to the CLI process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case CarrierTooSmall:
		return 2
	case AuthenticationFailed:
		return 3
	case Io:
		return 4
	}
	return 1
}
