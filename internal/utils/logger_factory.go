package utils

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logLevelDebugStringConstant            = "debug"
	logLevelInfoStringConstant             = "info"
	logLevelWarnStringConstant             = "warn"
	logLevelErrorStringConstant            = "error"
	logFormatStructuredStringConstant      = "structured"
	logFormatConsoleStringConstant         = "console"
	unsupportedLogLevelTemplateConstant    = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant   = "unsupported log format: %s"
	defaultLogFileMaxSizeMegabytesConstant = 10
	defaultLogFileMaxBackupsConstant       = 3
	defaultLogFileMaxAgeDaysConstant       = 28
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

// LogFileSettings configures an optional rotating JSON log file written alongside stderr.
type LogFileSettings struct {
	Path             string
	MaxSizeMegabytes int
	MaxBackups       int
	MaxAgeDays       int
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct{}

// NewLoggerFactory constructs a new logger factory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLogger produces a stderr zap.Logger honoring the requested log level and format.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	return factory.CreateLoggerWithFile(requestedLogLevel, requestedLogFormat, LogFileSettings{})
}

// CreateLoggerWithFile behaves like CreateLogger and additionally tees entries into a rotating file when a path is set.
func (factory *LoggerFactory) CreateLoggerWithFile(requestedLogLevel LogLevel, requestedLogFormat LogFormat, fileSettings LogFileSettings) (*zap.Logger, error) {
	zapLogLevel, levelExists := logLevelMapping[requestedLogLevel]
	if !levelExists {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}

	encoderConfiguration := zap.NewProductionEncoderConfig()
	encoderConfiguration.EncodeTime = zapcore.ISO8601TimeEncoder

	var terminalEncoder zapcore.Encoder
	switch requestedLogFormat {
	case LogFormatStructured:
		terminalEncoder = zapcore.NewJSONEncoder(encoderConfiguration)
	case LogFormatConsole:
		consoleEncoderConfiguration := encoderConfiguration
		consoleEncoderConfiguration.EncodeLevel = zapcore.CapitalLevelEncoder
		terminalEncoder = zapcore.NewConsoleEncoder(consoleEncoderConfiguration)
	default:
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}

	levelEnabler := zap.NewAtomicLevelAt(zapLogLevel)
	cores := []zapcore.Core{zapcore.NewCore(terminalEncoder, zapcore.Lock(os.Stderr), levelEnabler)}

	if logFilePath := strings.TrimSpace(fileSettings.Path); len(logFilePath) > 0 {
		fileWriter := &lumberjack.Logger{
			Filename:   logFilePath,
			MaxSize:    positiveOrDefault(fileSettings.MaxSizeMegabytes, defaultLogFileMaxSizeMegabytesConstant),
			MaxBackups: positiveOrDefault(fileSettings.MaxBackups, defaultLogFileMaxBackupsConstant),
			MaxAge:     positiveOrDefault(fileSettings.MaxAgeDays, defaultLogFileMaxAgeDaysConstant),
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfiguration), zapcore.AddSync(fileWriter), levelEnabler))
	}

	return zap.New(zapcore.NewTee(cores...), zap.ErrorOutput(zapcore.Lock(os.Stderr))), nil
}

func positiveOrDefault(value int, defaultValue int) int {
	if value > 0 {
		return value
	}
	return defaultValue
}
