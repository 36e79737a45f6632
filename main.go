package main

import (
	"os"

	"github.com/temirov/git-rename-branch/cmd/cli"
)

// main executes the git-rename-branch command-line application.
func main() {
	os.Exit(cli.ExitCode(os.Stderr, cli.Execute()))
}
