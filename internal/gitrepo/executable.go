package gitrepo

import (
	"fmt"
	"os/exec"
)

const (
	gitExecutableNameConstant            = "git"
	gitExecutableMissingTemplateConstant = "%s executable not found on PATH: %v"
)

// ExecutableLocator resolves an executable name to a path, as exec.LookPath does.
type ExecutableLocator func(name string) (string, error)

// GitUnavailableError reports that the git executable cannot be found.
type GitUnavailableError struct {
	Cause error
}

// Error describes the missing executable.
func (unavailable GitUnavailableError) Error() string {
	return fmt.Sprintf(gitExecutableMissingTemplateConstant, gitExecutableNameConstant, unavailable.Cause)
}

// Unwrap exposes the lookup failure.
func (unavailable GitUnavailableError) Unwrap() error {
	return unavailable.Cause
}

// EnsureGitAvailable resolves git through locator, defaulting to exec.LookPath.
func EnsureGitAvailable(locator ExecutableLocator) (string, error) {
	if locator == nil {
		locator = exec.LookPath
	}
	executablePath, lookupError := locator(gitExecutableNameConstant)
	if lookupError != nil {
		return "", GitUnavailableError{Cause: lookupError}
	}
	return executablePath, nil
}
