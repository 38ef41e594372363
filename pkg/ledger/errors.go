package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrAccountHasTransactions is returned when deleting an account that
	// transactions still reference
	ErrAccountHasTransactions = errors.New("account has transactions")

	// ErrAccountBalanceNonZero is returned when archiving an account whose
	// computed balance is not exactly zero
	ErrAccountBalanceNonZero = errors.New("account balance is not zero")

	// ErrTransferTypeChange is returned when an update would change a
	// transaction's type to or from transfer
	ErrTransferTypeChange = errors.New("cannot change transaction type to or from transfer")

	// ErrTransferPairMissing is returned when a transfer leg's sibling
	// cannot be located
	ErrTransferPairMissing = errors.New("transfer pair not found")

	// ErrSameAccountTransfer is returned when a transfer names the same
	// account on both sides
	ErrSameAccountTransfer = errors.New("transfer source and destination accounts are the same")

	// ErrNoDigits is returned when parsing a money string with no digits
	ErrNoDigits = errors.New("no digits in amount")
)

// Error represents a ledger error with a stable code
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}

	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Code == t.Code
}

// ValidationError represents a single schema validation failure
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ValidationErrors aggregates schema validation failures
type ValidationErrors struct {
	Errors []*ValidationError `json:"errors"`
}

// Error implements the error interface
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d validation errors occurred", len(e.Errors))
}

// add appends a failure for the given field path.
func (e *ValidationErrors) add(field, message string, value interface{}) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message, Value: value})
}

// orNil returns nil when no failure was recorded, so callers can return the
// result of validation directly.
func (e *ValidationErrors) orNil() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// NewError creates a new ledger error
func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an error with a code and message
func WrapError(err error, code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsBusinessRuleError checks if err is a semantically forbidden operation
// rather than a schema failure
func IsBusinessRuleError(err error) bool {
	return errors.Is(err, ErrAccountHasTransactions) ||
		errors.Is(err, ErrAccountBalanceNonZero) ||
		errors.Is(err, ErrTransferTypeChange) ||
		errors.Is(err, ErrSameAccountTransfer)
}

// IsValidationError checks if err is a schema validation failure
func IsValidationError(err error) bool {
	var single *ValidationError
	var multi *ValidationErrors
	return errors.As(err, &single) || errors.As(err, &multi)
}
