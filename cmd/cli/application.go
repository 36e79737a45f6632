package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/temirov/git-rename-branch/internal/gitrepo"
	"github.com/temirov/git-rename-branch/internal/rename"
	"github.com/temirov/git-rename-branch/internal/ui"
	"github.com/temirov/git-rename-branch/internal/utils"
)

const (
	applicationNameConstant                 = "git-rename-branch"
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	commonLogFileConfigKeyConstant          = commonConfigurationKeyConstant + ".log_file"
	toolsConfigurationKeyConstant           = "tools"
	renameConfigurationKeyConstant          = toolsConfigurationKeyConstant + ".rename"
	environmentPrefixConstant               = "GIT_RENAME_BRANCH"
	configurationFileEnvironmentConstant    = environmentPrefixConstant + "_CONFIG"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	defaultConfigurationSearchPathConstant  = "."
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationLogFileFieldConstant       = "log_file"
	configurationFileFieldConstant          = "config_file"
	configurationColorFieldConstant         = "color"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	commandBuildErrorTemplateConstant       = "unable to build command: %w"
	exitMessageTemplateConstant             = "%s: %v\n"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	LogFile   string `mapstructure:"log_file"`
}

// ApplicationToolsConfiguration holds per-command configuration.
type ApplicationToolsConfiguration struct {
	Rename rename.CommandConfiguration `mapstructure:"rename"`
}

// applicationDependencies lets tests replace process-level collaborators. Zero values select production defaults.
type applicationDependencies struct {
	workingDirectory      string
	configurationFilePath string
	searchPaths           []string
	terminal              ui.TerminalCapabilities
	gitExecutor           gitrepo.GitExecutor
	executableLocator     gitrepo.ExecutableLocator
	repositoryRootLocator rename.RepositoryRootLocator
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	terminal              ui.TerminalCapabilities
}

// NewApplication assembles the application from the process environment.
func NewApplication() (*Application, error) {
	dependencies := applicationDependencies{
		configurationFilePath: os.Getenv(configurationFileEnvironmentConstant),
		searchPaths:           defaultConfigurationSearchPaths(),
		terminal:              ui.ProbeTerminal(os.Stdout),
	}
	if workingDirectory, workingDirectoryError := os.Getwd(); workingDirectoryError == nil {
		dependencies.workingDirectory = workingDirectory
	}
	return newApplication(dependencies)
}

func newApplication(dependencies applicationDependencies) (*Application, error) {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		dependencies.searchPaths,
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:   configurationLoader,
		loggerFactory:         utils.NewLoggerFactory(),
		logger:                zap.NewNop(),
		configurationFilePath: strings.TrimSpace(dependencies.configurationFilePath),
		terminal:              dependencies.terminal,
	}

	renameBuilder := rename.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() rename.CommandConfiguration {
			return application.configuration.Tools.Rename
		},
		StylingProvider:       application.terminal.StylingEnabled,
		WorkingDirectory:      dependencies.workingDirectory,
		GitExecutor:           dependencies.gitExecutor,
		ExecutableLocator:     dependencies.executableLocator,
		RepositoryRootLocator: dependencies.repositoryRootLocator,
	}

	rootCommand, buildError := renameBuilder.Build()
	if buildError != nil {
		return nil, fmt.Errorf(commandBuildErrorTemplateConstant, buildError)
	}

	rootCommand.PersistentPreRunE = func(command *cobra.Command, arguments []string) error {
		return application.initializeConfiguration()
	}
	rootCommand.SetContext(context.Background())
	application.rootCommand = rootCommand

	return application, nil
}

// Execute runs the root command and flushes the logger.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return multierr.Append(executionError, fmt.Errorf(loggerSyncErrorTemplateConstant, syncError))
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command.
func Execute() error {
	application, creationError := NewApplication()
	if creationError != nil {
		return creationError
	}
	return application.Execute()
}

// ExitCode reports executionError on output unless it was already shown to the user and
// returns the process exit status for it.
func ExitCode(output io.Writer, executionError error) int {
	if executionError == nil {
		return rename.ExitCodeSuccess
	}

	var exitError rename.ExitError
	if !errors.As(executionError, &exitError) {
		fmt.Fprintf(output, exitMessageTemplateConstant, applicationNameConstant, executionError)
		return rename.ExitCodeDelegatedFallback
	}

	if !exitError.Silent {
		fmt.Fprintf(output, exitMessageTemplateConstant, applicationNameConstant, executionError)
	}
	return exitError.Code
}

func (application *Application) initializeConfiguration() error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelError),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
		commonLogFileConfigKeyConstant:   "",
	}
	for configurationKey, configurationValue := range rename.DefaultConfigurationValues(renameConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return rename.ExitError{Code: rename.ExitCodePrecondition, Err: fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)}
	}
	application.configurationMetadata = loadedConfiguration

	logger, loggerCreationError := application.loggerFactory.CreateLoggerWithFile(
		utils.LogLevel(strings.TrimSpace(application.configuration.Common.LogLevel)),
		utils.LogFormat(strings.TrimSpace(application.configuration.Common.LogFormat)),
		utils.LogFileSettings{Path: strings.TrimSpace(application.configuration.Common.LogFile)},
	)
	if loggerCreationError != nil {
		return rename.ExitError{Code: rename.ExitCodePrecondition, Err: fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)}
	}
	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationLogFileFieldConstant, application.configuration.Common.LogFile),
		zap.String(configurationColorFieldConstant, string(application.configuration.Tools.Rename.Color)),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	case errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func defaultConfigurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	if userConfigurationDirectory, directoryError := os.UserConfigDir(); directoryError == nil {
		searchPaths = append(searchPaths, filepath.Join(userConfigurationDirectory, applicationNameConstant))
	}
	return searchPaths
}
