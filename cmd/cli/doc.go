// Package cli builds the git-rename-branch application: it loads configuration,
// creates the zap logger, probes the terminal, and hands them to the rename
// command, which serves as the Cobra root command.
package cli
