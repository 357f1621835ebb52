package main

import (
	"github.com/cmdflow/cmdflow/internal/cli"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in workflows",
	Run: func(cmd *cobra.Command, args []string) {
		cli.PrintSamples(cmd.OutOrStdout())
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent runs from the configured history store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		noColor, _ := cmd.Flags().GetBool("no-color")
		return cli.PrintHistory(cmd.Context(), cmd.OutOrStdout(), cfg, limit, noColor)
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of runs to show (0 for all)")
	historyCmd.Flags().Bool("no-color", false, "Print the raw markdown table")
	rootCmd.AddCommand(listCmd, historyCmd)
}
