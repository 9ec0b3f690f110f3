package main

import (
	"errors"
	"fmt"

	"github.com/fenilsonani/tickengine/pkg/tickengine"
	"github.com/spf13/cobra"
)

func newQueryCommand() *cobra.Command {
	var (
		triplesFile string
		maxResults  int
	)

	cmd := &cobra.Command{
		Use:   "query <plan-name>",
		Short: "Execute a named compiled query plan",
		Long:  "Loads a triples file, then dispatches the named statically-generated plan and prints each result row.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			planName := args[0]

			e, err := tickengine.Open()
			if err != nil {
				return fmt.Errorf("create engine: %w", err)
			}
			defer e.Destroy()

			if triplesFile != "" {
				if _, err := loadFile(e, triplesFile); err != nil {
					return err
				}
			}

			out := make([]tickengine.Row, maxResults)
			n, err := e.QueryExecute(planName, out, maxResults)
			if err != nil {
				if errors.Is(err, tickengine.ErrNotFound) {
					return fmt.Errorf("unknown plan %q", planName)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d row(s)\n", n)
			for i := 0; i < n; i++ {
				fmt.Fprintf(cmd.OutOrStdout(), "  subject=%d predicate=%d object=%d value=%v\n",
					out[i].SubjectID, out[i].PredicateID, out[i].ObjectID, out[i].Value)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&triplesFile, "triples", "", "triples file to load before querying")
	cmd.Flags().IntVar(&maxResults, "max-results", 256, "maximum rows to return")

	return cmd
}
