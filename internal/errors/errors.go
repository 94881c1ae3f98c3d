// Package errors defines the error taxonomy shared by the resolver, bundler
// and bundle cache.
//
// Every failure kind has a sentinel (for errors.Is) and a typed error that
// carries the identifiers involved (for errors.As). Kind classifies any error
// into one of the tagged kinds so callers can branch without type switches.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrInvalidArgument indicates a nil, empty or malformed call parameter.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDescriptorFormat indicates a dependency descriptor exists but is not
	// a JSON array of strings.
	ErrDescriptorFormat = errors.New("invalid dependency descriptor")

	// ErrCyclicDependency indicates the dependency graph contains a cycle.
	ErrCyclicDependency = errors.New("cyclic dependency")

	// ErrResourceUnavailable indicates a resource's content could not be fetched.
	ErrResourceUnavailable = errors.New("resource unavailable")

	// ErrNotFound indicates a cache lookup by key found nothing.
	ErrNotFound = errors.New("not found")
)

// ErrorKind is the tagged classification of an error.
type ErrorKind string

const (
	KindUnknown             ErrorKind = "unknown"
	KindInvalidArgument     ErrorKind = "invalid argument"
	KindDescriptorFormat    ErrorKind = "descriptor format"
	KindCyclicDependency    ErrorKind = "cyclic dependency"
	KindResourceUnavailable ErrorKind = "resource unavailable"
	KindNotFound            ErrorKind = "not found"
)

// Kind returns the tag of err. A nil error has an empty kind.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, ErrDescriptorFormat):
		return KindDescriptorFormat
	case errors.Is(err, ErrCyclicDependency):
		return KindCyclicDependency
	case errors.Is(err, ErrResourceUnavailable):
		return KindResourceUnavailable
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindUnknown
	}
}

// InvalidArgumentError reports a rejected parameter.
type InvalidArgumentError struct {
	// Param is the name of the offending parameter.
	Param string
	// Reason describes what is wrong with it.
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Param, e.Reason)
}

// Is reports whether target is ErrInvalidArgument.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// InvalidArgument creates an InvalidArgumentError.
func InvalidArgument(param, reason string) error {
	return &InvalidArgumentError{Param: param, Reason: reason}
}

// DescriptorFormatError reports a descriptor that could not be parsed.
type DescriptorFormatError struct {
	// Resource is the resource whose descriptor was read.
	Resource string
	// Descriptor is the identifier of the descriptor itself.
	Descriptor string
	// Reason describes the format problem.
	Reason string
	// Cause is the underlying parse error, if any.
	Cause error
}

func (e *DescriptorFormatError) Error() string {
	msg := fmt.Sprintf("invalid dependency descriptor %s for %s: %s", e.Descriptor, e.Resource, e.Reason)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Is reports whether target is ErrDescriptorFormat.
func (e *DescriptorFormatError) Is(target error) bool {
	return target == ErrDescriptorFormat
}

// Unwrap returns the underlying parse error.
func (e *DescriptorFormatError) Unwrap() error {
	return e.Cause
}

// CyclicDependencyError reports a cycle found during resolution.
type CyclicDependencyError struct {
	// Resource is the node that closed the cycle.
	Resource string
	// Cycle is the path from the first occurrence of Resource back to it,
	// e.g. [p.js q.js p.js].
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	if len(e.Cycle) == 0 {
		return fmt.Sprintf("circular dependency found: %s", e.Resource)
	}
	return fmt.Sprintf("circular dependency found: %s", strings.Join(e.Cycle, " -> "))
}

// Is reports whether target is ErrCyclicDependency.
func (e *CyclicDependencyError) Is(target error) bool {
	return target == ErrCyclicDependency
}

// ResourceUnavailableError reports a resource whose content could not be read.
type ResourceUnavailableError struct {
	Resource string
	Cause    error
}

func (e *ResourceUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resource %s unavailable: %v", e.Resource, e.Cause)
	}
	return fmt.Sprintf("resource %s unavailable", e.Resource)
}

// Is reports whether target is ErrResourceUnavailable.
func (e *ResourceUnavailableError) Is(target error) bool {
	return target == ErrResourceUnavailable
}

// Unwrap returns the provider error.
func (e *ResourceUnavailableError) Unwrap() error {
	return e.Cause
}

// NotFoundError reports a missing cache entry.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no bundle found for key %s", e.Key)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DetailError captures structured error information for terminal display.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the resource or file the error refers to (optional).
	Location string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// Describe turns err into a DetailError with a hint suited to its kind.
// Errors that already are DetailErrors are returned as is.
func Describe(err error) *DetailError {
	var detail *DetailError
	if errors.As(err, &detail) {
		return detail
	}

	d := &DetailError{Type: string(Kind(err)), Message: err.Error(), Cause: err}

	var formatErr *DescriptorFormatError
	var cycleErr *CyclicDependencyError
	var unavailableErr *ResourceUnavailableError
	var notFoundErr *NotFoundError
	switch {
	case errors.As(err, &formatErr):
		d.Location = formatErr.Descriptor
		d.Hint = `A descriptor must contain a JSON array of strings, e.g. ["jquery.js"]`
	case errors.As(err, &cycleErr):
		d.Location = cycleErr.Resource
		d.Hint = "Remove one of the declarations that closes the cycle"
	case errors.As(err, &unavailableErr):
		d.Location = unavailableErr.Resource
		d.Hint = "Check that the file exists under the configured root"
	case errors.As(err, &notFoundErr):
		d.Location = notFoundErr.Key
	}
	return d
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
