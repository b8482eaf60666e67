package errorsx

import (
	"errors"
	"fmt"
)

// KindedError wraps an error with a failure kind. For connection-closed
// errors it also carries the close code and reason reported by the server.
type KindedError struct {
	Err    error
	Kind   Kind
	Code   string
	Reason string
}

func (e KindedError) Error() string {
	switch {
	case e.Kind == KindConnectionClosed:
		return fmt.Sprintf("the connection was closed with code %s and reason %q", e.Code, e.Reason)
	case e.Err == nil:
		return string(e.Kind) + " error"
	default:
		return fmt.Sprintf("%s error: %s", e.Kind, e.Err.Error())
	}
}

func (e KindedError) Unwrap() error {
	return e.Err
}

// Wrap attaches a kind to an error (no-op if err is nil or already kinded).
func Wrap(err error, kind Kind) error {
	if err == nil {
		return nil
	}
	var ke KindedError
	if errors.As(err, &ke) {
		return err
	}
	return KindedError{Err: err, Kind: kind}
}

// New creates a kinded error from a plain message.
func New(kind Kind, msg string) error {
	return KindedError{Err: errors.New(msg), Kind: kind}
}

// Newf creates a kinded error from a format string.
func Newf(kind Kind, format string, args ...any) error {
	return KindedError{Err: fmt.Errorf(format, args...), Kind: kind}
}

// ConnectionClosed creates a connection-closed error carrying the close code
// and reason supplied by the transport.
func ConnectionClosed(code, reason string) error {
	return KindedError{Kind: KindConnectionClosed, Code: code, Reason: reason}
}

// KindOf extracts the kind from an error, if present.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var ke KindedError
	if errors.As(err, &ke) {
		return ke.Kind
	}
	return KindUnknown
}

// HasKind returns true if err carries the given kind.
func HasKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// CloseInfo returns the close code and reason of a connection-closed error.
// The second return is false for any other error.
func CloseInfo(err error) (code, reason string, ok bool) {
	var ke KindedError
	if errors.As(err, &ke) && ke.Kind == KindConnectionClosed {
		return ke.Code, ke.Reason, true
	}
	return "", "", false
}
