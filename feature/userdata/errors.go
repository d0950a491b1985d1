package userdata

import (
	"errors"
	"fmt"
)

// Reason classifies a store failure.
type Reason int

const (
	// ReasonInvalidFormat means the caller supplied something other than a JSON object.
	ReasonInvalidFormat Reason = iota + 1
	// ReasonIO means reading or writing the data file failed.
	ReasonIO
	// ReasonParse means the data file holds malformed JSON.
	ReasonParse
)

// Sentinels for errors.Is.
var (
	ErrInvalidFormat = errors.New("invalid data format")
	ErrIO            = errors.New("io error")
	ErrParse         = errors.New("parse error")
)

func (r Reason) String() string {
	switch r {
	case ReasonInvalidFormat:
		return "InvalidFormat"
	case ReasonIO:
		return "IOError"
	case ReasonParse:
		return "ParseError"
	default:
		return "Unknown"
	}
}

func (r Reason) sentinel() error {
	switch r {
	case ReasonInvalidFormat:
		return ErrInvalidFormat
	case ReasonIO:
		return ErrIO
	case ReasonParse:
		return ErrParse
	default:
		return nil
	}
}

// Error is returned by Store operations.
type Error struct {
	Reason Reason
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Reason.sentinel().Error()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Reason.sentinel()}
	}
	return []error{e.Reason.sentinel(), e.Err}
}

// IsClientError reports whether the failure was caused by the request rather than the server.
func (e *Error) IsClientError() bool {
	return e.Reason == ReasonInvalidFormat
}

func newError(reason Reason, err error) *Error {
	return &Error{Reason: reason, Err: err}
}

func wrapIO(op string, err error) *Error {
	return newError(ReasonIO, fmt.Errorf("%s: %w", op, err))
}
