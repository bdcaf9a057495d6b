package fakeserver

import "errors"

// Store errors. Each maps to a backend code in the response envelope.
var (
	ErrInvalid  = errors.New("invalid request")
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// Backend codes written for failures.
const (
	CodeInvalid      = "4000"
	CodeNotFound     = "4004"
	CodeConflict     = "4009"
	CodeLoggedOut    = "8888"
	CodeInternal     = "5000"
	messageLoggedOut = "login expired"
)

func codeFor(err error) string {
	switch {
	case errors.Is(err, ErrInvalid):
		return CodeInvalid
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrConflict):
		return CodeConflict
	default:
		return CodeInternal
	}
}
