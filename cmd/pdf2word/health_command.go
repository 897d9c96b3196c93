package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pdf2word/internal/preflight"
	"pdf2word/internal/services/convertapi"
)

type healthOutput struct {
	Backend *convertapi.HealthStatus `json:"backend,omitempty"`
	Checks  []preflight.Result       `json:"checks"`
	Healthy bool                     `json:"healthy"`
}

func newHealthCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the conversion service and local environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.backendClient()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg, client)
			output := healthOutput{
				Checks:  results,
				Healthy: preflight.AllPassed(results),
			}
			if output.Healthy {
				probeCtx, cancel := context.WithTimeout(cmd.Context(), cfg.HealthTimeout())
				defer cancel()
				if status, err := client.Health(probeCtx); err == nil {
					output.Backend = status
				}
			}

			if jsonOutput {
				if err := writeJSON(cmd, output); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				rows := make([][]string, 0, len(results))
				for _, result := range results {
					status := "ok"
					if !result.Passed {
						status = "failed"
					}
					rows = append(rows, []string{result.Name, status, orDash(result.Detail)})
				}
				fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows, []columnAlignment{alignLeft, alignLeft, alignLeft}))
				if output.Backend != nil {
					fmt.Fprintf(out, "Service status: %s (%s tracked file(s))\n",
						output.Backend.Status, strconv.Itoa(output.Backend.FilesTracked))
				}
			}

			if !output.Healthy {
				return errors.New("one or more health checks failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON output")
	return cmd
}
