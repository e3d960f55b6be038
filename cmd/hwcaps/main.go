package main

import (
	"os"

	"codeberg.org/mutker/hwcaps/cmd/hwcaps/commands"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// errors are printed by the printer package
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
