package cli

// Exit codes for the prbump CLI
// These codes support programmatic composition and CI integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitValidationFailed indicates one or more records failed validation
	ExitValidationFailed = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitMissingPrerequisites indicates required files or directories are missing
	ExitMissingPrerequisites = 4
)
