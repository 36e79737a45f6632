package rename_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/git-rename-branch/internal/execshell"
	"github.com/temirov/git-rename-branch/internal/gitrepo"
	"github.com/temirov/git-rename-branch/internal/rename"
	"github.com/temirov/git-rename-branch/internal/ui"
)

type commandHarness struct {
	gitExecutor     *scriptedGitExecutor
	executableError error
	rootError       error
	requestedModes  []ui.ColorMode
	configuration   rename.CommandConfiguration
	logger          *zap.Logger
}

func newCommandHarness() *commandHarness {
	return &commandHarness{
		gitExecutor:   newScriptedGitExecutor(),
		configuration: rename.DefaultCommandConfiguration(),
		logger:        zap.NewNop(),
	}
}

func (harness *commandHarness) execute(testInstance *testing.T, arguments ...string) (string, string, error) {
	builder := rename.CommandBuilder{
		LoggerProvider:        func() *zap.Logger { return harness.logger },
		ConfigurationProvider: func() rename.CommandConfiguration { return harness.configuration },
		StylingProvider: func(mode ui.ColorMode) bool {
			harness.requestedModes = append(harness.requestedModes, mode)
			return false
		},
		WorkingDirectory: testRepositoryRootConstant + "/nested",
		GitExecutor:      harness.gitExecutor,
		ExecutableLocator: func(name string) (string, error) {
			if harness.executableError != nil {
				return "", harness.executableError
			}
			return "/usr/bin/" + name, nil
		},
		RepositoryRootLocator: func(workingDirectory string) (string, error) {
			require.Equal(testInstance, testRepositoryRootConstant+"/nested", workingDirectory)
			if harness.rootError != nil {
				return "", harness.rootError
			}
			return testRepositoryRootConstant, nil
		},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	standardOutput := &bytes.Buffer{}
	standardError := &bytes.Buffer{}
	command.SetOut(standardOutput)
	command.SetErr(standardError)
	command.SetArgs(arguments)

	executionError := command.Execute()
	return standardOutput.String(), standardError.String(), executionError
}

func requireExitCode(testInstance *testing.T, executionError error, expectedCode int) rename.ExitError {
	testInstance.Helper()
	var exitError rename.ExitError
	require.ErrorAs(testInstance, executionError, &exitError)
	require.Equal(testInstance, expectedCode, exitError.Code)
	return exitError
}

func TestCommandHelpRequests(testInstance *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
	}{
		{name: "no_arguments", arguments: []string{}},
		{name: "help_word", arguments: []string{"help"}},
		{name: "short_flag", arguments: []string{"-h"}},
		{name: "long_flag", arguments: []string{"--help", "new-name"}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			harness := newCommandHarness()
			harness.executableError = errors.New("help must not need git")

			standardOutput, _, executionError := harness.execute(testInstance, testCase.arguments...)

			exitError := requireExitCode(testInstance, executionError, rename.ExitCodeUsage)
			require.True(testInstance, exitError.Silent)
			require.Contains(testInstance, standardOutput, "Usage:")
			require.Contains(testInstance, standardOutput, "--update-remote remote")
			require.Contains(testInstance, standardOutput, "-d, --dry-run")
			require.Empty(testInstance, harness.gitExecutor.recorded)
		})
	}
}

func TestCommandParseFailures(testInstance *testing.T) {
	testCases := []struct {
		name           string
		arguments      []string
		expectedErrors []string
	}{
		{
			name:           "update_remote_without_value",
			arguments:      []string{"-u"},
			expectedErrors: []string{"error: missing remote name for --update-remote", "error: missing target branch name"},
		},
		{
			name:           "two_positional_arguments",
			arguments:      []string{"feature-x", "feature-y"},
			expectedErrors: []string{`error: too many arguments: expected one branch name, got "feature-x", "feature-y"`},
		},
		{
			name:           "unknown_remote_and_option",
			arguments:      []string{"-u", "fork", "--force", "new-name"},
			expectedErrors: []string{`error: invalid remote "fork": no such remote in this repository`, "error: unknown option --force"},
		},
		{
			name:           "help_after_target",
			arguments:      []string{"new-name", "--help"},
			expectedErrors: []string{"error: unknown option --help"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			harness := newCommandHarness()

			standardOutput, standardError, executionError := harness.execute(testInstance, testCase.arguments...)

			exitError := requireExitCode(testInstance, executionError, rename.ExitCodeParseFailure)
			require.True(testInstance, exitError.Silent)
			require.Empty(testInstance, standardOutput)

			expectedOutput := strings.Join(testCase.expectedErrors, "\n") + "\nRun 'git-rename-branch --help' for usage.\n"
			require.Equal(testInstance, expectedOutput, standardError)
			require.False(testInstance, harness.gitExecutor.invoked(testRenameCommandKey))
			for _, details := range harness.gitExecutor.recorded {
				require.NotEqual(testInstance, "branch", details.Arguments[0])
				require.NotEqual(testInstance, "push", details.Arguments[0])
			}
		})
	}
}

func TestCommandDryRun(testInstance *testing.T) {
	testCases := []struct {
		name             string
		currentBranch    string
		arguments        []string
		expectedCommands []string
	}{
		{
			name:             "local_rename_only",
			currentBranch:    "old-name",
			arguments:        []string{"-d", "new-name"},
			expectedCommands: []string{"git-rename-branch (dry-run): git branch -m old-name new-name"},
		},
		{
			name:          "same_name_guard",
			currentBranch: "new-name",
			arguments:     []string{"-d", "-u", "origin", "new-name"},
			expectedCommands: []string{
				"git-rename-branch (dry-run): git branch -m new-name new-name",
				"git-rename-branch (dry-run): git push --set-upstream origin new-name",
			},
		},
		{
			name:          "full_remote_update",
			currentBranch: "old-name",
			arguments:     []string{"--update-remote", "origin", "--dry-run", "new-name"},
			expectedCommands: []string{
				"git-rename-branch (dry-run): git branch -m old-name new-name",
				"git-rename-branch (dry-run): git push --set-upstream origin new-name",
				"git-rename-branch (dry-run): git push origin --delete old-name",
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			harness := newCommandHarness()
			harness.gitExecutor.respond(testSymbolicRefCommandKey, execshell.ExecutionResult{StandardOutput: testCase.currentBranch + "\n"}, nil)

			standardOutput, standardError, executionError := harness.execute(testInstance, testCase.arguments...)
			require.NoError(testInstance, executionError)
			require.Empty(testInstance, standardError)
			require.Equal(testInstance, testCase.expectedCommands, plannedCommandLines(standardOutput))

			for _, details := range harness.gitExecutor.recorded {
				require.Contains(testInstance, []string{"symbolic-ref", "remote"}, details.Arguments[0])
			}
		})
	}
}

func TestCommandDryRunIgnoresFlagOrdering(testInstance *testing.T) {
	orderings := [][]string{
		{"--update-remote", "origin", "--dry-run", "new-name"},
		{"new-name", "--dry-run", "--update-remote", "origin"},
		{"-d", "new-name", "-u", "origin"},
	}

	outputs := []string{}
	for _, arguments := range orderings {
		harness := newCommandHarness()
		standardOutput, _, executionError := harness.execute(testInstance, arguments...)
		require.NoError(testInstance, executionError)
		outputs = append(outputs, standardOutput)
	}

	for _, output := range outputs[1:] {
		require.Equal(testInstance, outputs[0], output)
	}
}

func TestCommandExecutesPlan(testInstance *testing.T) {
	testCases := []struct {
		name             string
		configure        func(*scriptedGitExecutor)
		expectedOutput   string
		expectedExitCode int
		expectDelete     bool
	}{
		{
			name:           "success",
			expectedOutput: "RENAMED: old-name -> new-name\nPUSHED: new-name -> origin\nDELETED: origin/old-name\n",
			expectDelete:   true,
		},
		{
			name: "push_failure_never_deletes",
			configure: func(executor *scriptedGitExecutor) {
				executor.fail(testPushCommandKey, 128, "fatal: could not read from remote repository")
			},
			expectedOutput:   "RENAMED: old-name -> new-name\nSKIPPED: git push origin --delete old-name (previous step failed)\n",
			expectedExitCode: 128,
		},
		{
			name: "rename_failure_propagates_git_status",
			configure: func(executor *scriptedGitExecutor) {
				executor.fail(testRenameCommandKey, 1, "fatal: a branch named 'new-name' already exists")
			},
			expectedOutput:   "SKIPPED: git push --set-upstream origin new-name (previous step failed)\nSKIPPED: git push origin --delete old-name (previous step failed)\n",
			expectedExitCode: 1,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			harness := newCommandHarness()
			if testCase.configure != nil {
				testCase.configure(harness.gitExecutor)
			}

			standardOutput, _, executionError := harness.execute(testInstance, "-u", "origin", "new-name")
			require.Equal(testInstance, testCase.expectedOutput, standardOutput)
			require.Equal(testInstance, testCase.expectDelete, harness.gitExecutor.invoked(testDeleteCommandKey))

			if testCase.expectedExitCode == 0 {
				require.NoError(testInstance, executionError)
				return
			}
			exitError := requireExitCode(testInstance, executionError, testCase.expectedExitCode)
			require.False(testInstance, exitError.Silent)
		})
	}
}

func TestCommandPreconditionFailures(testInstance *testing.T) {
	testCases := []struct {
		name      string
		configure func(*commandHarness)
		errorType any
	}{
		{
			name: "git_missing",
			configure: func(harness *commandHarness) {
				harness.executableError = errors.New("executable file not found in $PATH")
			},
			errorType: &gitrepo.GitUnavailableError{},
		},
		{
			name: "not_a_repository",
			configure: func(harness *commandHarness) {
				harness.rootError = gitrepo.NotRepositoryError{WorkingDirectory: "/tmp"}
			},
			errorType: &gitrepo.NotRepositoryError{},
		},
		{
			name: "head_unreadable",
			configure: func(harness *commandHarness) {
				harness.gitExecutor.fail(testSymbolicRefCommandKey, 128, "fatal: not a git repository")
			},
			errorType: &execshell.CommandFailedError{},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			harness := newCommandHarness()
			testCase.configure(harness)

			standardOutput, _, executionError := harness.execute(testInstance, "-d", "new-name")

			exitError := requireExitCode(testInstance, executionError, rename.ExitCodePrecondition)
			require.False(testInstance, exitError.Silent)
			require.ErrorAs(testInstance, executionError, testCase.errorType)
			require.Empty(testInstance, standardOutput)
			require.False(testInstance, harness.gitExecutor.invoked(testRemoteListCommandKey))
		})
	}
}

func TestCommandPassesConfiguredColorMode(testInstance *testing.T) {
	harness := newCommandHarness()
	harness.configuration = rename.CommandConfiguration{Color: ui.ColorModeNever}

	_, _, executionError := harness.execute(testInstance, "-d", "new-name")
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, []ui.ColorMode{ui.ColorModeNever}, harness.requestedModes)
}

func TestCommandWarnsOnDetachedHead(testInstance *testing.T) {
	observerCore, observedLogs := observer.New(zap.WarnLevel)
	harness := newCommandHarness()
	harness.logger = zap.New(observerCore)
	harness.gitExecutor.fail(testSymbolicRefCommandKey, 1, "")
	harness.gitExecutor.respond("rev-parse --short HEAD", execshell.ExecutionResult{StandardOutput: "1a2b3c4\n"}, nil)

	standardOutput, _, executionError := harness.execute(testInstance, "-d", "new-name")
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, []string{"git-rename-branch (dry-run): git branch -m 1a2b3c4 new-name"}, plannedCommandLines(standardOutput))
	require.Equal(testInstance, 1, observedLogs.Len())
}
