// Package cmd provides command implementations for the jsm CLI.
package cmd

// Exit codes returned by jsm.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates bad input: an invalid argument, a
	// malformed descriptor or an invalid config file.
	ExitValidationError = 2

	// ExitCycleError indicates the dependency graph contains a cycle.
	ExitCycleError = 3

	// ExitResourceUnavailable indicates a script could not be read.
	ExitResourceUnavailable = 4

	// ExitNotFound indicates a bundle or file was not found.
	ExitNotFound = 5
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitCycleError:
		return "Cyclic Dependency"
	case ExitResourceUnavailable:
		return "Resource Unavailable"
	case ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}
