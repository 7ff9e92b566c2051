package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeImport represents dataset import errors. They are fatal for the process.
	ErrorTypeImport ErrorType = "import"
	// ErrorTypeQuery represents request-scoped lookup errors
	ErrorTypeQuery ErrorType = "query"
	// ErrorTypeStore represents storage backend errors
	ErrorTypeStore ErrorType = "store"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Import Errors

// MalformedInputError is returned when a source cannot be decoded into the
// expected record collection, or when a single record fails validation.
type MalformedInputError struct {
	*BaseError
	Source string
	Index  int // natural index of the offending record, -1 for the whole document
}

func NewMalformedInput(source string, index int, err error) *MalformedInputError {
	msg := fmt.Sprintf("malformed %s input", source)
	if index >= 0 {
		msg = fmt.Sprintf("malformed %s record at natural-index (%d)", source, index)
	}
	return &MalformedInputError{
		BaseError: NewBaseError(ErrorTypeImport, msg, err),
		Source:    source,
		Index:     index,
	}
}

// DuplicateIdentifierError is returned when two records resolve to the same canonical id
type DuplicateIdentifierError struct {
	*BaseError
	Source string
	ID     int
	Index  int
}

func NewDuplicateIdentifier(source string, id, index int) *DuplicateIdentifierError {
	return &DuplicateIdentifierError{
		BaseError: NewBaseError(ErrorTypeImport, fmt.Sprintf("duplicate %s index (%d) seen at natural-index (%d)", source, id, index), nil),
		Source:    source,
		ID:        id,
		Index:     index,
	}
}

// Reference kinds for UnknownReferenceError
const (
	ReferenceCompany = "company"
	ReferenceFood    = "food"
)

// UnknownReferenceError is returned when a person references a company or food that does not exist
type UnknownReferenceError struct {
	*BaseError
	Kind      string
	Reference string
	PersonID  int
	Index     int
}

func NewUnknownReference(kind, reference string, personID, index int) *UnknownReferenceError {
	return &UnknownReferenceError{
		BaseError: NewBaseError(ErrorTypeImport, fmt.Sprintf("person (%d) at natural-index (%d) references an unknown %s (%q)", personID, index, kind, reference), nil),
		Kind:      kind,
		Reference: reference,
		PersonID:  personID,
		Index:     index,
	}
}

// Query Errors

// UnknownInstanceError is returned when a query names an id that does not exist
type UnknownInstanceError struct {
	*BaseError
	Kind string
	ID   int
}

func NewUnknownInstance(kind string, id int) *UnknownInstanceError {
	return &UnknownInstanceError{
		BaseError: NewBaseError(ErrorTypeQuery, fmt.Sprintf("unknown %s id '%d'", kind, id), nil),
		Kind:      kind,
		ID:        id,
	}
}

// Store Errors

// StoreFailedError is returned when a storage backend operation fails
type StoreFailedError struct {
	*BaseError
	Operation string
}

func NewStoreFailed(operation string, err error) *StoreFailedError {
	return &StoreFailedError{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("store operation failed: %s", operation), err),
		Operation: operation,
	}
}

// Config Errors

// ErrConfigValidationFailed is returned when configuration validation fails
type ErrConfigValidationFailed struct {
	*BaseError
	Field  string
	Reason string
}

func NewConfigValidationFailed(field, reason string) *ErrConfigValidationFailed {
	return &ErrConfigValidationFailed{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("config validation failed: %s - %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsErrorType checks if an error, or anything it wraps, is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	for err != nil {
		if be := baseOf(err); be != nil && be.Type == errType {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// IsImportError reports whether err aborts an import
func IsImportError(err error) bool {
	return IsErrorType(err, ErrorTypeImport)
}

// IsUnknownInstance reports whether err is a query-time lookup miss
func IsUnknownInstance(err error) bool {
	var target *UnknownInstanceError
	return stderrors.As(err, &target)
}

func baseOf(err error) *BaseError {
	switch e := err.(type) {
	case *BaseError:
		return e
	case *MalformedInputError:
		return e.BaseError
	case *DuplicateIdentifierError:
		return e.BaseError
	case *UnknownReferenceError:
		return e.BaseError
	case *UnknownInstanceError:
		return e.BaseError
	case *StoreFailedError:
		return e.BaseError
	case *ErrConfigValidationFailed:
		return e.BaseError
	case *ErrConfigMissingRequired:
		return e.BaseError
	}
	return nil
}
