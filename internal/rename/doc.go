// Package rename renames the checked-out branch and optionally moves it on a remote.
//
// ArgumentParser turns raw arguments into Options while accumulating every
// recoverable error. BuildPlan derives the ordered git steps, Executor runs
// them with per-step guards, and Presenter prints either the dry-run plan or
// the outcome of each step. CommandBuilder wires these pieces into the Cobra
// root command.
package rename
