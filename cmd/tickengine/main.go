package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "tickengine",
		Short:   "A deterministic, cycle-budgeted semantic reasoning substrate",
		Long:    "tickengine runs fixed-cost triple-store queries and SHACL-like constraint checks against an arena-backed reasoning substrate.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	rootCmd.AddCommand(
		newLoadCommand(),
		newQueryCommand(),
		newValidateCommand(),
		newBenchmarkCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
