package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrObjectNotFound is the sentinel for lookups that matched nothing.
	ErrObjectNotFound = errors.New("object not found")
	// ErrValueIsInvalid is the sentinel for malformed or unknown input values.
	ErrValueIsInvalid = errors.New("value is invalid")
	// ErrValueIsRequired is the sentinel for missing input values.
	ErrValueIsRequired = errors.New("value is required")
	// ErrConflict is the sentinel for a lost race on an exclusive resource.
	ErrConflict = errors.New("conflict")
	// ErrForbidden is the sentinel for an operation the caller may not perform.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidState is the sentinel for an operation not permitted in the current state.
	ErrInvalidState = errors.New("invalid state")
)

// sanitize renders a value on a single line so it can be embedded in error text.
func sanitize(value any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", value), "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError reports that the object identified by ID does not exist.
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
		return withCause(
			fmt.Sprintf("%s: param is: %s, ID is: %s", ErrObjectNotFound, e.ParamName, sanitize(e.ID)),
			e.Cause,
		)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports that ParamName carries an unacceptable value.
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
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsRequiredError reports that ParamName was empty.
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
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidMembersError reports staff identifiers that are not on the roster.
// It unwraps to ErrValueIsInvalid so callers can treat it as a validation failure.
type InvalidMembersError struct {
	Members []string
}

func NewInvalidMembersError(members []string) *InvalidMembersError {
	return &InvalidMembersError{Members: append([]string(nil), members...)}
}

func (e *InvalidMembersError) Error() string {
	return fmt.Sprintf("%s: unknown staff members: %s", ErrValueIsInvalid, sanitize(strings.Join(e.Members, ", ")))
}

func (e *InvalidMembersError) Unwrap() error {
	return ErrValueIsInvalid
}

// ClaimConflictError reports that an order is held by another claimant.
type ClaimConflictError struct {
	OrderID   string
	ClaimedBy string
}

func NewClaimConflictError(orderID, claimedBy string) *ClaimConflictError {
	return &ClaimConflictError{OrderID: orderID, ClaimedBy: claimedBy}
}

func (e *ClaimConflictError) Error() string {
	return fmt.Sprintf("%s: order %s is already claimed by %s", ErrConflict, sanitize(e.OrderID), sanitize(e.ClaimedBy))
}

func (e *ClaimConflictError) Unwrap() error {
	return ErrConflict
}

// NotClaimantError reports an attempt to release an order claimed by someone else.
type NotClaimantError struct {
	OrderID   string
	ClaimedBy string
}

func NewNotClaimantError(orderID, claimedBy string) *NotClaimantError {
	return &NotClaimantError{OrderID: orderID, ClaimedBy: claimedBy}
}

func (e *NotClaimantError) Error() string {
	return fmt.Sprintf("%s: order %s is claimed by %s", ErrForbidden, sanitize(e.OrderID), sanitize(e.ClaimedBy))
}

func (e *NotClaimantError) Unwrap() error {
	return ErrForbidden
}

// InvalidStateError reports an operation rejected because of the order status.
type InvalidStateError struct {
	OrderID   string
	Status    string
	Operation string
}

func NewInvalidStateError(orderID, status, operation string) *InvalidStateError {
	return &InvalidStateError{OrderID: orderID, Status: status, Operation: operation}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s order %s in status %s",
		ErrInvalidState, e.Operation, sanitize(e.OrderID), sanitize(e.Status))
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}
