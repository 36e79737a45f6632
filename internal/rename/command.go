package rename

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/git-rename-branch/internal/execshell"
	"github.com/temirov/git-rename-branch/internal/gitrepo"
	"github.com/temirov/git-rename-branch/internal/ui"
)

const (
	commandUseConstant               = "git-rename-branch [options] <name>"
	commandShortDescriptionConstant  = "Rename the current branch and optionally move it on a remote"
	commandLongDescriptionConstant   = "git-rename-branch renames the checked-out branch to <name>. With --update-remote it also pushes <name> to the remote, sets it as upstream, and deletes the old branch from that remote once the push succeeded."
	commandExampleConstant           = "git-rename-branch feature/login-form\ngit-rename-branch -u origin feature/login-form\ngit-rename-branch --dry-run --update-remote origin feature/login-form"
	logMessageDetachedHeadConstant   = "HEAD is detached; renaming from the abbreviated commit"
	logMessagePlanBuiltConstant      = "rename plan built"
	logFieldCurrentReferenceConstant = "current_ref"
	logFieldTargetNameConstant       = "target_name"
	logFieldRemoteNameConstant       = "remote_name"
	logFieldRepositoryRootConstant   = "repository_root"
	logFieldStepsConstant            = "steps"
	logFieldDryRunConstant           = "dry_run"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// RepositoryRootLocator resolves the repository root containing workingDirectory.
type RepositoryRootLocator func(workingDirectory string) (string, error)

// CommandBuilder assembles the git-rename-branch root command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	// StylingProvider decides, for the configured color mode, whether stdout gets bold tags.
	StylingProvider       func(mode ui.ColorMode) bool
	WorkingDirectory      string
	GitExecutor           gitrepo.GitExecutor
	ExecutableLocator     gitrepo.ExecutableLocator
	RepositoryRootLocator RepositoryRootLocator
}

// Build constructs the command. Flag parsing is disabled on the Cobra side because
// ArgumentParser accumulates errors that pflag would report one at a time.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	optionFlags := NewOptionFlagSet()

	command := &cobra.Command{
		Use:                commandUseConstant,
		Short:              commandShortDescriptionConstant,
		Long:               commandLongDescriptionConstant,
		Example:            commandExampleConstant,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, arguments, optionFlags)
		},
	}
	command.Flags().AddFlagSet(optionFlags)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string, optionFlags *pflag.FlagSet) error {
	if IsHelpRequest(arguments) {
		_ = command.Help()
		return usageExit()
	}

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}

	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()

	if _, lookupError := gitrepo.EnsureGitAvailable(builder.ExecutableLocator); lookupError != nil {
		return preconditionExit(lookupError)
	}

	repositoryRoot, rootError := builder.resolveRepositoryRoot()
	if rootError != nil {
		return preconditionExit(rootError)
	}

	gitExecutor, executorError := builder.resolveGitExecutor(logger)
	if executorError != nil {
		return preconditionExit(executorError)
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(gitExecutor)
	if managerError != nil {
		return preconditionExit(managerError)
	}

	currentReference, referenceError := repositoryManager.CurrentReference(executionContext, repositoryRoot)
	if referenceError != nil {
		return preconditionExit(referenceError)
	}
	if currentReference.Detached {
		logger.Warn(logMessageDetachedHeadConstant, zap.String(logFieldCurrentReferenceConstant, currentReference.Name))
	}

	parser, parserError := NewArgumentParser(optionFlags, repositoryRemoteValidator{manager: repositoryManager, repositoryRoot: repositoryRoot})
	if parserError != nil {
		return parserError
	}

	options, parseError := parser.Parse(executionContext, arguments)
	if parseError != nil {
		_ = RenderParseErrors(command.ErrOrStderr(), parseError)
		return parseFailureExit(parseError)
	}

	plan, planError := BuildPlan(options, currentReference, repositoryRoot)
	if planError != nil {
		return planError
	}

	logger.Debug(
		logMessagePlanBuiltConstant,
		zap.String(logFieldRepositoryRootConstant, repositoryRoot),
		zap.String(logFieldCurrentReferenceConstant, currentReference.Name),
		zap.String(logFieldTargetNameConstant, options.TargetName),
		zap.String(logFieldRemoteNameConstant, options.RemoteName),
		zap.Bool(logFieldDryRunConstant, options.DryRun),
		zap.Int(logFieldStepsConstant, len(plan.Steps)),
	)

	presenter := NewPresenter(command.OutOrStdout(), ui.NewStyler(builder.stylingEnabled(configuration.Color)))
	if options.DryRun {
		return presenter.RenderDryRun(plan)
	}

	planExecutor, planExecutorError := NewExecutor(gitExecutor)
	if planExecutorError != nil {
		return planExecutorError
	}

	report, executionError := planExecutor.Execute(executionContext, plan)
	if renderError := presenter.RenderReport(report); renderError != nil {
		return renderError
	}
	if executionError != nil {
		return delegatedFailureExit(executionError)
	}
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveRepositoryRoot() (string, error) {
	locator := builder.RepositoryRootLocator
	if locator == nil {
		locator = gitrepo.LocateRepositoryRoot
	}
	return locator(builder.WorkingDirectory)
}

func (builder *CommandBuilder) resolveGitExecutor(logger *zap.Logger) (gitrepo.GitExecutor, error) {
	if builder.GitExecutor != nil {
		return builder.GitExecutor, nil
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
	if creationError != nil {
		return nil, creationError
	}
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}
	return shellExecutor, nil
}

func (builder *CommandBuilder) stylingEnabled(mode ui.ColorMode) bool {
	if builder.StylingProvider == nil {
		return false
	}
	return builder.StylingProvider(mode)
}

type repositoryRemoteValidator struct {
	manager        *gitrepo.RepositoryManager
	repositoryRoot string
}

func (validator repositoryRemoteValidator) RemoteExists(executionContext context.Context, remoteName string) (bool, error) {
	return validator.manager.RemoteExists(executionContext, validator.repositoryRoot, remoteName)
}
