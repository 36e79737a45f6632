// Package ui renders console output for git-rename-branch.
//
// ConsoleCommandEventLogger turns git lifecycle events into one-line messages
// for the console log format, and Styler applies bold emphasis to output tags
// only when the caller has decided the destination can display it.
package ui
