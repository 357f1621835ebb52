package main

import (
	"fmt"

	"github.com/cmdflow/cmdflow/internal/validator"
	"github.com/cmdflow/cmdflow/pkg/samples"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:       "validate [workflow]",
	Short:     "Check a workflow for unreachable nodes and ignored edges",
	Args:      cobra.ExactArgs(1),
	ValidArgs: samples.Names(),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := buildSample(args[0])
		if err != nil {
			return err
		}
		if err := validator.ValidateGraph(g); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
