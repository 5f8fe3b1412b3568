package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrAlreadyExists     = errors.New("object already exists")
	ErrStorage           = errors.New("storage failure")
)

// sanitize keeps user supplied values on a single line so they cannot forge log entries.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
}

// ObjectNotFoundError reports that an entity identified by ID does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that fails a domain rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside of [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidTransitionError reports a state change that is not part of a state machine.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from, to fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{From: from.String(), To: to.String()}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ForbiddenError reports that an actor is not allowed to perform an action.
type ForbiddenError struct {
	Actor  string
	Action string
	Cause  error
}

func NewForbiddenError(actor, action string) *ForbiddenError {
	return &ForbiddenError{Actor: actor, Action: action}
}

func NewForbiddenErrorWithCause(actor, action string, cause error) *ForbiddenError {
	return &ForbiddenError{Actor: actor, Action: action, Cause: cause}
}

func (e *ForbiddenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s may not %s (cause: %v)", ErrForbidden, e.Actor, e.Action, e.Cause)
	}
	return fmt.Sprintf("%s: %s may not %s", ErrForbidden, e.Actor, e.Action)
}

func (e *ForbiddenError) Unwrap() []error {
	return []error{ErrForbidden, e.Cause}
}

// ConflictError reports that a conditional write lost against a concurrent one.
type ConflictError struct {
	ParamName string
	ID        any
}

func NewConflictError(paramName string, id any) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s was changed concurrently", ErrConflict, e.ParamName, sanitize(e.ID))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ObjectAlreadyExistsError reports an insert whose identifier is already taken.
// It is a conflict as well, so callers checking ErrConflict see it too.
type ObjectAlreadyExistsError struct {
	ParamName string
	ID        any
}

func NewObjectAlreadyExistsError(paramName string, id any) *ObjectAlreadyExistsError {
	return &ObjectAlreadyExistsError{ParamName: paramName, ID: id}
}

func (e *ObjectAlreadyExistsError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrAlreadyExists, e.ParamName, sanitize(e.ID))
}

func (e *ObjectAlreadyExistsError) Unwrap() []error {
	return []error{ErrAlreadyExists, ErrConflict}
}

// StorageError wraps a datastore failure. The cause stays reachable through errors.As.
type StorageError struct {
	Operation string
	Cause     error
}

func NewStorageError(operation string, cause error) *StorageError {
	return &StorageError{Operation: operation, Cause: cause}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s (cause: %v)", ErrStorage, e.Operation, e.Cause)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Cause}
}

// IsValidation reports whether err belongs to the input validation family.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsOutOfRange)
}
