package rename_test

import (
	"context"
	"strings"

	"github.com/temirov/git-rename-branch/internal/execshell"
)

const (
	testRepositoryRootConstant   = "/tmp/rename-repository"
	testCurrentBranchConstant    = "old-name"
	testTargetBranchConstant     = "new-name"
	testRemoteOriginConstant     = "origin"
	testRemoteUpstreamConstant   = "upstream"
	testRemoteListOutputConstant = "origin\nupstream\n"
	testDryRunLinePrefixConstant = "git-rename-branch (dry-run): git "
	testSymbolicRefCommandKey    = "symbolic-ref --quiet --short HEAD"
	testRemoteListCommandKey     = "remote"
	testRenameCommandKey         = "branch -m old-name new-name"
	testPushCommandKey           = "push --set-upstream origin new-name"
	testDeleteCommandKey         = "push origin --delete old-name"
)

type scriptedResponse struct {
	result execshell.ExecutionResult
	err    error
}

// scriptedGitExecutor answers by joined argument list and records every invocation.
type scriptedGitExecutor struct {
	responses map[string]scriptedResponse
	recorded  []execshell.CommandDetails
}

func newScriptedGitExecutor() *scriptedGitExecutor {
	return &scriptedGitExecutor{
		responses: map[string]scriptedResponse{
			testSymbolicRefCommandKey: {result: execshell.ExecutionResult{StandardOutput: testCurrentBranchConstant + "\n"}},
			testRemoteListCommandKey:  {result: execshell.ExecutionResult{StandardOutput: testRemoteListOutputConstant}},
		},
	}
}

func (executor *scriptedGitExecutor) respond(arguments string, result execshell.ExecutionResult, err error) {
	executor.responses[arguments] = scriptedResponse{result: result, err: err}
}

func (executor *scriptedGitExecutor) fail(arguments string, exitCode int, standardError string) {
	failure := execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: execshell.CommandDetails{Arguments: strings.Fields(arguments)}},
		Result:  execshell.ExecutionResult{ExitCode: exitCode, StandardError: standardError},
	}
	executor.respond(arguments, execshell.ExecutionResult{}, failure)
}

func (executor *scriptedGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recorded = append(executor.recorded, details)
	response, found := executor.responses[strings.Join(details.Arguments, " ")]
	if !found {
		return execshell.ExecutionResult{}, nil
	}
	return response.result, response.err
}

func (executor *scriptedGitExecutor) invoked(arguments string) bool {
	for _, details := range executor.recorded {
		if strings.Join(details.Arguments, " ") == arguments {
			return true
		}
	}
	return false
}

type staticRemoteValidator struct {
	remotes []string
	err     error
	queried []string
}

func (validator *staticRemoteValidator) RemoteExists(_ context.Context, remoteName string) (bool, error) {
	validator.queried = append(validator.queried, remoteName)
	if validator.err != nil {
		return false, validator.err
	}
	for _, remote := range validator.remotes {
		if remote == remoteName {
			return true, nil
		}
	}
	return false, nil
}

func newStaticRemoteValidator() *staticRemoteValidator {
	return &staticRemoteValidator{remotes: []string{testRemoteOriginConstant, testRemoteUpstreamConstant}}
}
