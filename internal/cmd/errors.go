package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/jsmodule/cli/internal/config"
	oerrors "github.com/jsmodule/cli/internal/errors"
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int
	// Printed is true when the error has already been shown to the user.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return ExitCodeName(e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for ExitError first
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var validationErrs config.ValidationErrors
	if errors.As(err, &validationErrs) {
		return ExitValidationError
	}

	switch oerrors.Kind(err) {
	case oerrors.KindInvalidArgument, oerrors.KindDescriptorFormat:
		return ExitValidationError
	case oerrors.KindCyclicDependency:
		return ExitCycleError
	case oerrors.KindResourceUnavailable:
		return ExitResourceUnavailable
	case oerrors.KindNotFound:
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}

// withExitCode attaches the exit code for err, leaving nil and ExitErrors
// untouched.
func withExitCode(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return NewExitError(err, ExitCodeFromError(err))
}

// PrintError writes err to w in its user-facing form, unless it was already
// printed.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Printed {
			return
		}
		if exitErr.Err == nil {
			_, _ = fmt.Fprintln(w, exitErr.Error())
			return
		}
		err = exitErr.Err
	}

	var validationErrs config.ValidationErrors
	if errors.As(err, &validationErrs) {
		_, _ = fmt.Fprint(w, validationErrs.Error())
		return
	}
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		_, _ = fmt.Fprint(w, detail.Error())
		return
	}
	if oerrors.Kind(err) == oerrors.KindUnknown {
		_, _ = fmt.Fprintln(w, "Error:", err)
		return
	}
	_, _ = fmt.Fprint(w, oerrors.Describe(err).Error())
}
