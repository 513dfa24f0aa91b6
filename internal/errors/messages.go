package errors

import "fmt"

// Canned errors for common prbump failure modes. Keeping the wording in one
// place keeps remediation guidance consistent across commands.

// NewRecordsDirMissing reports that the configured record directory does not exist.
func NewRecordsDirMissing(dir string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("record directory %q does not exist", dir),
		fmt.Sprintf("Create the directory: mkdir -p %s", dir),
		"Or pass record files explicitly: prbump check path/to/file.prdoc",
		"Or set prdoc_dir in .prbump/config.yml",
	)
}

// NewNoRecordsFound reports that no record files matched the inputs.
func NewNoRecordsFound(pattern string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("no record files matching %q were found", pattern),
		"Add a record file for your change, e.g. prdoc/pr_1234.prdoc",
		"Or adjust the pattern in .prbump/config.yml",
	)
}

// NewNotARepository reports that a git-dependent command ran outside a work tree.
func NewNotARepository(base string) *CLIError {
	return NewPrerequisiteError(
		"not inside a git repository",
		"Run this command from within a git work tree",
		fmt.Sprintf("Or use 'prbump check' with explicit paths instead of diffing against %s", base),
	)
}

// NewRecordsInvalid reports the batch validation outcome.
func NewRecordsInvalid(errorCount int) *CLIError {
	return NewValidationError(
		fmt.Sprintf("%d validation error(s) found", errorCount),
		"Fix the reported fields in each record file",
		"Re-run 'prbump check' until it passes",
	)
}
