package rename

import (
	"errors"
	"fmt"

	"github.com/temirov/git-rename-branch/internal/execshell"
)

// Process exit statuses.
const (
	ExitCodeSuccess      = 0
	ExitCodeUsage        = 1
	ExitCodeParseFailure = 2
	ExitCodePrecondition = 3
)

// ExitCodeDelegatedFallback is used when a git step failed without reporting its own status.
const ExitCodeDelegatedFallback = 1

const exitErrorTemplateConstant = "exit status %d"

// ExitError carries the process exit status for a failed invocation.
// Silent errors have already been reported to the user.
type ExitError struct {
	Code   int
	Err    error
	Silent bool
}

func (exitError ExitError) Error() string {
	if exitError.Err == nil {
		return fmt.Sprintf(exitErrorTemplateConstant, exitError.Code)
	}
	return exitError.Err.Error()
}

func (exitError ExitError) Unwrap() error {
	return exitError.Err
}

func usageExit() ExitError {
	return ExitError{Code: ExitCodeUsage, Silent: true}
}

func parseFailureExit(parseError error) ExitError {
	return ExitError{Code: ExitCodeParseFailure, Err: parseError, Silent: true}
}

func preconditionExit(preconditionError error) ExitError {
	return ExitError{Code: ExitCodePrecondition, Err: preconditionError}
}

// delegatedFailureExit propagates git's own exit status.
func delegatedFailureExit(stepError error) ExitError {
	var commandFailure execshell.CommandFailedError
	if errors.As(stepError, &commandFailure) && commandFailure.Result.ExitCode != ExitCodeSuccess {
		return ExitError{Code: commandFailure.Result.ExitCode, Err: stepError}
	}
	return ExitError{Code: ExitCodeDelegatedFallback, Err: stepError}
}
