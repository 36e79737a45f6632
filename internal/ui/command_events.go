package ui

import (
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/git-rename-branch/internal/execshell"
)

const (
	outputLineSeparatorConstant   = "\n"
	progressLineSeparatorConstant = "\r"
)

// ConsoleCommandEventLogger writes git lifecycle events as human-readable log lines.
type ConsoleCommandEventLogger struct {
	logger    *zap.Logger
	formatter execshell.CommandMessageFormatter
}

// NewConsoleCommandEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger, formatter: execshell.CommandMessageFormatter{}}
}

// CommandStarted implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(command execshell.ShellCommand) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(command))
}

// CommandCompleted implements execshell.CommandEventObserver; non-zero exits are logged as warnings.
// On success the lines git wrote to stderr, such as remote hints, follow the summary.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if eventLogger == nil {
		return
	}
	if result.ExitCode == 0 {
		eventLogger.logger.Info(eventLogger.formatter.BuildSuccessMessage(command, result))
		for _, line := range standardErrorLines(result.StandardError) {
			eventLogger.logger.Info(line)
		}
		return
	}
	eventLogger.logger.Warn(eventLogger.formatter.BuildFailureMessage(command, result))
}

// CommandExecutionFailed implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Error(eventLogger.formatter.BuildExecutionFailureMessage(command, failure))
}

// standardErrorLines keeps the final state of carriage-return progress lines and drops blanks.
func standardErrorLines(standardError string) []string {
	lines := []string{}
	for _, rawLine := range strings.Split(standardError, outputLineSeparatorConstant) {
		segments := strings.Split(rawLine, progressLineSeparatorConstant)
		line := ""
		for index := len(segments) - 1; index >= 0; index-- {
			line = strings.TrimSpace(segments[index])
			if len(line) > 0 {
				break
			}
		}
		if len(line) == 0 {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
