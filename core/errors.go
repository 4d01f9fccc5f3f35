package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError reports malformed or out-of-range input. It is always raised before any store call.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

func IsValidationError(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}

// NotFoundError reports an identifier that does not (or no longer) exist in the store.
type NotFoundError struct {
	Entity string
	ID     int
}

func NewNotFoundError(entity string, id int) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func (err NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", err.Entity, err.ID)
}

func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}

// StoreError wraps a transport or server-side failure of the backing store.
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError wraps err, unless it is nil or already classified.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsStoreError(err) || IsNotFound(err) || IsValidationError(err) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

func (err StoreError) Error() string {
	return err.Op + ": " + err.Err.Error()
}

func (err StoreError) Cause() error { return err.Err }

func (err StoreError) Unwrap() error { return err.Err }

func IsStoreError(err error) bool {
	for err != nil {
		if _, ok := err.(*StoreError); ok {
			return true
		}
		cause, ok := err.(interface{ Cause() error })
		if !ok {
			return false
		}
		err = cause.Cause()
	}
	return false
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
