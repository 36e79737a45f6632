package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandMessageFormatterDescribesRenameWorkflowCommands(t *testing.T) {
	formatter := CommandMessageFormatter{}

	testCases := []struct {
		name      string
		arguments []string
		build     func(command ShellCommand) string
		expected  string
	}{
		{
			name:      "branch_rename_start",
			arguments: []string{"branch", "-m", "old-name", "new-name"},
			build:     formatter.BuildStartedMessage,
			expected:  "Renaming branch old-name to new-name in /workspace/repo",
		},
		{
			name:      "push_upstream_success",
			arguments: []string{"push", "--set-upstream", "origin", "new-name"},
			build: func(command ShellCommand) string {
				return formatter.BuildSuccessMessage(command, ExecutionResult{})
			},
			expected: "Pushed new-name to origin from /workspace/repo",
		},
		{
			name:      "push_delete_failure",
			arguments: []string{"push", "origin", "--delete", "old-name"},
			build: func(command ShellCommand) string {
				return formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 1, StandardError: "error: unable to delete\n"})
			},
			expected: "Failed to delete remote branch old-name from origin in /workspace/repo (exit code 1: error: unable to delete)",
		},
		{
			name:      "current_branch_success",
			arguments: []string{"symbolic-ref", "--quiet", "--short", "HEAD"},
			build: func(command ShellCommand) string {
				return formatter.BuildSuccessMessage(command, ExecutionResult{StandardOutput: "main\n"})
			},
			expected: "Current branch in /workspace/repo is main",
		},
		{
			name:      "current_branch_detached",
			arguments: []string{"symbolic-ref", "--quiet", "--short", "HEAD"},
			build: func(command ShellCommand) string {
				return formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 1})
			},
			expected: "/workspace/repo is in a detached HEAD state",
		},
		{
			name:      "remote_list_execution_failure",
			arguments: []string{"remote"},
			build: func(command ShellCommand) string {
				return formatter.BuildExecutionFailureMessage(command, errors.New("exec: \"git\": executable file not found"))
			},
			expected: "Unable to list remotes in /workspace/repo: exec: \"git\": executable file not found",
		},
		{
			name:      "generic_fallback",
			arguments: []string{"status", "--porcelain"},
			build:     formatter.BuildStartedMessage,
			expected:  "Running git status --porcelain (in /workspace/repo)",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			command := ShellCommand{
				Name:    CommandGit,
				Details: CommandDetails{Arguments: testCase.arguments, WorkingDirectory: "/workspace/repo"},
			}
			require.Equal(t, testCase.expected, testCase.build(command))
		})
	}
}

func TestBuildStartedMessageWithoutWorkingDirectoryUsesCurrentDirectoryLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandGit,
		Details: CommandDetails{Arguments: []string{"remote"}},
	}

	require.Equal(t, "Listing remotes in current directory", formatter.BuildStartedMessage(command))
}
