package feed

import (
	"errors"
	"fmt"
)

// Kind classifies a feed failure.
type Kind int

const (
	// KindTransport covers any failure to complete the HTTP round trip:
	// DNS, refused connections, timeouts and non-2xx statuses alike.
	KindTransport Kind = iota + 1
	// KindDecode covers payloads that do not match the expected JSON shape.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks against *Error values.
var (
	ErrTransport = errors.New("transport error")
	ErrDecode    = errors.New("decode error")
)

// Error is returned by every feed operation.
type Error struct {
	Kind   Kind
	URL    string
	Status int // HTTP status when the server answered, zero otherwise
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindTransport && e.Status != 0:
		return fmt.Sprintf("%s %s: status %d", e.Kind, e.URL, e.Status)
	case e.URL != "":
		return fmt.Sprintf("%s %s: %v", e.Kind, e.URL, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel matching e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrDecode:
		return e.Kind == KindDecode
	}
	return false
}

// Transport wraps err as a transport failure for url.
func Transport(url string, err error) *Error {
	return &Error{Kind: KindTransport, URL: url, Err: err}
}

// Decode wraps err as a decode failure.
func Decode(err error) *Error {
	return &Error{Kind: KindDecode, Err: err}
}

// Decodef builds a decode failure from a format string.
func Decodef(format string, args ...any) *Error {
	return Decode(fmt.Errorf(format, args...))
}

// KindOf returns the kind carried by err, or zero when err is not a feed error.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
