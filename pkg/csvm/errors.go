package csvm

import (
	"errors"
	"fmt"
)

var (
	// ErrDetection is matched by every *DetectionError.
	ErrDetection = errors.New("csvm detection failed")
	// ErrMalformed is matched by every *MalformedError.
	ErrMalformed = errors.New("malformed csvm data")
)

// DetectionError means the VM handler types could not be identified. VM recovery
// for the module cannot proceed.
type DetectionError struct {
	Msg string
	Err error
}

func (e *DetectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *DetectionError) Unwrap() error { return e.Err }

func (e *DetectionError) Is(target error) bool { return target == ErrDetection }

func detectionErrorf(format string, args ...any) error {
	return &DetectionError{Msg: fmt.Sprintf(format, args...)}
}

// MalformedError reports a blob that cannot be decoded. It is fatal for one method only.
type MalformedError struct {
	What string
	Err  error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %s: %v", e.What, e.Err)
	}
	return "malformed " + e.What
}

func (e *MalformedError) Unwrap() error { return e.Err }

func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

func malformed(what string, err error) error {
	return &MalformedError{What: what, Err: err}
}

func malformedf(what, format string, args ...any) error {
	return &MalformedError{What: what, Err: fmt.Errorf(format, args...)}
}
