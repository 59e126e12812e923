// Package errors defines the structured error taxonomy shared by the
// catalog, importer and CLI layers. Every rejected operation surfaces one
// of these error values; there is no silent failure path.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes a catalog error.
type Kind string

const (
	// KindEmptyField reports a required field left empty.
	KindEmptyField Kind = "empty_field"
	// KindInvalidCategory reports a category outside the fixed enumeration.
	KindInvalidCategory Kind = "invalid_category"
	// KindDuplicateName reports an insertion clashing with an existing entry.
	KindDuplicateName Kind = "duplicate_name"
	// KindNotFound reports an operation against an absent entry.
	KindNotFound Kind = "not_found"
	// KindDanglingReference reports a related-pattern name that no longer
	// resolves to a catalog entry.
	KindDanglingReference Kind = "dangling_reference"
)

// Common error codes.
const (
	ErrCodeEmptyField        = "ERR_EMPTY_FIELD"
	ErrCodeInvalidCategory   = "ERR_INVALID_CATEGORY"
	ErrCodeDuplicateName     = "ERR_DUPLICATE_NAME"
	ErrCodeEntryNotFound     = "ERR_ENTRY_NOT_FOUND"
	ErrCodeDanglingReference = "ERR_DANGLING_REFERENCE"
)

// CatalogError is a structured error with entry and field context.
// All catalog errors are recoverable at the call site; the catalog's
// state is unchanged whenever one is returned from a mutation.
type CatalogError struct {
	Kind    Kind
	Code    string
	Entry   string
	Field   string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *CatalogError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}
	if e.Entry != "" {
		parts = append(parts, "entry:"+e.Entry)
	}
	if e.Field != "" {
		parts = append(parts, "field:"+e.Field)
	}
	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")
	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}
	return result
}

// Unwrap returns the underlying cause error.
func (e *CatalogError) Unwrap() error {
	return e.Cause
}

// Is matches errors by kind and code so callers can compare against the
// sentinel constructors with errors.Is.
func (e *CatalogError) Is(target error) bool {
	var t *CatalogError
	if errors.As(target, &t) {
		return e.Kind == t.Kind && (t.Code == "" || e.Code == t.Code)
	}
	return false
}

// WithEntry adds entry context to the error.
func (e *CatalogError) WithEntry(name string) *CatalogError {
	e.Entry = name
	return e
}

// WithField adds field context to the error.
func (e *CatalogError) WithField(field string) *CatalogError {
	e.Field = field
	return e
}

// Error creation functions

// ErrEmptyField creates an error for a required field left empty.
func ErrEmptyField(entry, field string) *CatalogError {
	return &CatalogError{
		Kind:    KindEmptyField,
		Code:    ErrCodeEmptyField,
		Entry:   entry,
		Field:   field,
		Message: "required field is empty",
	}
}

// ErrInvalidCategory creates an error for a category outside the fixed set.
func ErrInvalidCategory(entry, category string) *CatalogError {
	return &CatalogError{
		Kind:    KindInvalidCategory,
		Code:    ErrCodeInvalidCategory,
		Entry:   entry,
		Field:   "category",
		Message: "unknown category: " + category,
	}
}

// ErrDuplicateName creates an error for a name already present in the catalog.
func ErrDuplicateName(name string) *CatalogError {
	return &CatalogError{
		Kind:    KindDuplicateName,
		Code:    ErrCodeDuplicateName,
		Entry:   name,
		Message: "entry already present: " + name,
	}
}

// ErrNotFound creates an error for an absent entry.
func ErrNotFound(name string) *CatalogError {
	return &CatalogError{
		Kind:    KindNotFound,
		Code:    ErrCodeEntryNotFound,
		Entry:   name,
		Message: "entry not found: " + name,
	}
}

// ErrDanglingReference creates an error for a related-pattern reference
// that no longer resolves. entry is the referencing entry, target the
// missing name.
func ErrDanglingReference(entry, target string) *CatalogError {
	return &CatalogError{
		Kind:    KindDanglingReference,
		Code:    ErrCodeDanglingReference,
		Entry:   entry,
		Field:   "related",
		Message: "dangling reference to: " + target,
	}
}

// IsKind checks whether err is a CatalogError of the given kind.
func IsKind(err error, kind Kind) bool {
	var ce *CatalogError
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}

// IsDuplicateName checks if an error reports a duplicate entry name.
func IsDuplicateName(err error) bool { return IsKind(err, KindDuplicateName) }

// IsNotFound checks if an error reports an absent entry.
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

// IsDanglingReference checks if an error reports an unresolved reference.
func IsDanglingReference(err error) bool { return IsKind(err, KindDanglingReference) }
