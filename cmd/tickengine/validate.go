package main

import (
	"fmt"

	"github.com/fenilsonani/tickengine/pkg/tickengine"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	var (
		triplesFile  string
		targetClass  uint32
		minCount     int
		minCountPath uint32
	)

	cmd := &cobra.Command{
		Use:   "validate <node-id>",
		Short: "Validate one node against a single MIN_COUNT shape",
		Long:  "Loads a triples file, registers one demo shape (target class + a MIN_COUNT constraint), and prints the validation report for the given node.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var node uint32
			if _, err := fmt.Sscanf(args[0], "%d", &node); err != nil {
				return fmt.Errorf("invalid node id %q: %w", args[0], err)
			}

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

			if err := e.ShapeRegister(1, targetClass); err != nil {
				return fmt.Errorf("register shape: %w", err)
			}
			if err := e.ConstraintAdd(1, tickengine.Constraint{
				Kind: tickengine.MinCount,
				Path: minCountPath,
				N:    minCount,
			}); err != nil {
				return fmt.Errorf("add constraint: %w", err)
			}

			report := &tickengine.Report{Conforms: true}
			e.Validate(node, report)
			fmt.Fprint(cmd.OutOrStdout(), report.Render())
			return nil
		},
	}

	cmd.Flags().StringVar(&triplesFile, "triples", "", "triples file to load before validating")
	cmd.Flags().Uint32Var(&targetClass, "target-class", 0, "shape's target class term id")
	cmd.Flags().Uint32Var(&minCountPath, "path", 0, "MIN_COUNT constraint's property term id")
	cmd.Flags().IntVar(&minCount, "min-count", 1, "MIN_COUNT constraint's required count")

	return cmd
}
