package main

import (
	"fmt"

	"github.com/fenilsonani/tickengine/pkg/tickengine"
	"github.com/spf13/cobra"
)

func newLoadCommand() *cobra.Command {
	var (
		maxSubjects   int
		maxPredicates int
		maxObjects    int
		arenaCapacity int
	)

	cmd := &cobra.Command{
		Use:   "load [file]",
		Short: "Load a triples file and report how many triples were inserted",
		Long:  "Reads whitespace-separated (subject predicate object) integer triples, one per line, and inserts them into a fresh engine.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			e, err := tickengine.Open(
				tickengine.MaxSubjects(maxSubjects),
				tickengine.MaxPredicates(maxPredicates),
				tickengine.MaxObjects(maxObjects),
				tickengine.ArenaCapacity(arenaCapacity),
			)
			if err != nil {
				return fmt.Errorf("create engine: %w", err)
			}
			defer e.Destroy()

			n, err := loadFile(e, path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "loaded %d triples\n", n)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxSubjects, "max-subjects", 1<<10, "subject dimension")
	cmd.Flags().IntVar(&maxPredicates, "max-predicates", 1<<6, "predicate dimension")
	cmd.Flags().IntVar(&maxObjects, "max-objects", 1<<10, "object dimension")
	cmd.Flags().IntVar(&arenaCapacity, "arena-capacity", 16<<20, "backing arena size in bytes")

	return cmd
}
