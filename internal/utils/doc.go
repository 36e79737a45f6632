// Package utils holds the configuration loader and logger factory shared by the CLI.
//
// ConfigurationLoader layers embedded defaults, an optional YAML file, and
// environment variables through Viper. LoggerFactory builds zap loggers that
// write to standard error and, when configured, to a rotating log file.
package utils
