package main

import (
	"github.com/cmdflow/cmdflow/internal/cli"
	"github.com/cmdflow/cmdflow/pkg/samples"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:       "run [workflow]",
	Short:     "Run a workflow",
	Long:      `Runs a built-in workflow until it finishes. Ctrl+C stops it after the current node.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: samples.Names(),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		debug, _ := cmd.Flags().GetBool("debug")
		jsonMode, _ := cmd.Flags().GetBool("json")
		noColor, _ := cmd.Flags().GetBool("no-color")

		return cli.RunWorkflow(cmd.Context(), cfg, cli.RunOptions{
			Workflow: args[0],
			Debug:    debug,
			JSON:     jsonMode,
			NoColor:  noColor,
			Out:      cmd.OutOrStdout(),
		})
	},
}

func init() {
	runCmd.Flags().Bool("json", false, "Stream events as JSON lines instead of the log view")
	runCmd.Flags().Bool("no-color", false, "Disable colored output")
	rootCmd.AddCommand(runCmd)
}
