package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCleanupCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Ask the conversion service to purge expired files",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.backendClient()
			if err != nil {
				return err
			}

			result, err := client.Cleanup(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d file(s) remaining)\n", result.Message, result.FilesRemaining)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON output")
	return cmd
}
