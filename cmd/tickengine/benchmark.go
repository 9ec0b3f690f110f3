package main

import (
	"fmt"
	"io"

	"github.com/fenilsonani/tickengine/internal/telemetry"
	"github.com/fenilsonani/tickengine/pkg/tickengine"
	"github.com/spf13/cobra"
)

func newBenchmarkCommand() *cobra.Command {
	var iterations int

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Run the built-in demo benchmark and report cycle-budget compliance",
		Long:  "Seeds a small demo graph, runs engine_add_triple and engine_ask repeatedly under the cycle-budget harness, and emits the spec's JSON summary to stdout.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmark(cmd.OutOrStdout(), iterations)
		},
	}

	cmd.Flags().IntVar(&iterations, "iterations", 1000, "number of add/ask round trips to run")

	return cmd
}

func runBenchmark(out io.Writer, iterations int) error {
	e, err := tickengine.Open()
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	defer e.Destroy()
	// keep overruns so seven_tick_compliant reflects the ceiling checks
	e.Budget().Strict = true

	passed, failed := 0, 0
	for i := 0; i < iterations; i++ {
		sub := uint32(i % 1000)
		if err := e.AddTriple(sub, 0, 1); err != nil {
			failed++
			continue
		}
		if !e.Ask(sub, 0, 1) {
			failed++
			continue
		}
		passed++
	}

	snap := e.Budget().Snapshot("engine_add_triple")
	overruns := len(e.Budget().Overruns())
	summary := telemetry.NewSummary("tickengine-demo", iterations, iterations, passed, failed, snap.Avg(), overruns)

	if err := telemetry.Emit(out, summary); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d/%d iterations failed", failed, iterations)
	}
	return nil
}
