package transport

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a transport failure.
type Kind string

const (
	KindEncode    Kind = "encode"
	KindNetwork   Kind = "network"
	KindStatus    Kind = "status"
	KindDecode    Kind = "decode"
	KindBackend   Kind = "backend"
	KindLoggedOut Kind = "logged_out"
)

// Sentinels for errors.Is. ErrTransport matches every *Error.
var (
	ErrTransport = errors.New("transport error")
	ErrStatus    = errors.New("unexpected http status")
	ErrBackend   = errors.New("backend rejected request")
	ErrLoggedOut = errors.New("session logged out")
)

// Error describes a failed round trip.
type Error struct {
	Kind    Kind
	Binding string
	Method  string
	URL     string
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s %s: %s", e.Binding, e.Method, e.URL, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (http %d)", e.Status)
	}
	if e.Code != "" {
		msg += fmt.Sprintf(" code=%s", e.Code)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is ErrTransport or the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTransport:
		return true
	case ErrStatus:
		return e.Kind == KindStatus
	case ErrBackend:
		return e.Kind == KindBackend || e.Kind == KindLoggedOut
	case ErrLoggedOut:
		return e.Kind == KindLoggedOut
	}
	return false
}

// KindOf returns the kind of a transport error, or "" for anything else.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return ""
}
