package bithumb

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindTransport Kind = iota + 1
	KindAuth
	KindDecode
	KindNotFound
	KindRejected
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuth:
		return "auth"
	case KindDecode:
		return "decode"
	case KindNotFound:
		return "not found"
	case KindRejected:
		return "rejected"
	case KindInvalid:
		return "invalid"
	}
	return "unknown"
}

// Sentinels for errors.Is; an *Error matches the sentinel of its Kind.
var (
	ErrTransport = errors.New("bithumb: transport failure")
	ErrAuth      = errors.New("bithumb: authentication failure")
	ErrDecode    = errors.New("bithumb: malformed response")
	ErrNotFound  = errors.New("bithumb: not found")
	ErrRejected  = errors.New("bithumb: rejected by exchange")
	ErrInvalid   = errors.New("bithumb: invalid argument")
)

type Error struct {
	Kind    Kind
	Op      string
	Status  Status
	Message string
	Err     error
}

func (e *Error) Error() string {
	s := "bithumb " + e.Op + ": " + e.Kind.String()
	if e.Status.Code != "" {
		s += " (status " + e.Status.Code + ")"
	}
	if e.Message != "" {
		s += ": " + e.Message
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrAuth:
		return e.Kind == KindAuth
	case ErrDecode:
		return e.Kind == KindDecode
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrRejected:
		return e.Kind == KindRejected
	case ErrInvalid:
		return e.Kind == KindInvalid
	}
	return false
}

func decodeErr(op, format string, args ...interface{}) error {
	return &Error{Kind: KindDecode, Op: op, Message: fmt.Sprintf(format, args...)}
}

func invalidErr(op, format string, args ...interface{}) error {
	return &Error{Kind: KindInvalid, Op: op, Message: fmt.Sprintf(format, args...)}
}
