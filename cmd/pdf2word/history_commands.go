package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pdf2word/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and manage past conversions",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))
	historyCmd.AddCommand(newHistoryHealthCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded conversions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			items, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, items)
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "History is empty")
				return nil
			}

			rows := make([][]string, 0, len(items))
			for _, item := range items {
				rows = append(rows, []string{
					strconv.FormatInt(item.ID, 10),
					item.DisplayTitle,
					string(item.Status),
					formatSize(item.FileSize),
					formatTimestamp(item.CreatedAt),
					orDash(item.OutputPath),
				})
			}
			table := renderTable(
				[]string{"ID", "Title", "Status", "Size", "Created", "Saved To"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			)
			fmt.Fprintln(out, table)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON output")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	var clearAll bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove finished conversions from history",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			removed, err := store.Clear(cmd.Context(), clearAll)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d conversion(s)\n", removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearAll, "all", false, "Also remove in-flight conversions")
	return cmd
}

func newHistoryHealthCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the history database",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			health := store.Health(cmd.Context())
			if jsonOutput {
				return writeJSON(cmd, health)
			}

			rows := buildHistoryHealthRows(health)
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Check", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
			if health.Error != "" {
				return fmt.Errorf("history database unhealthy: %s", health.Error)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON output")
	return cmd
}

func buildHistoryHealthRows(health history.DatabaseHealth) [][]string {
	rows := [][]string{
		{"Database path", health.DBPath},
		{"Exists", yesNo(health.DatabaseExists)},
		{"Readable", yesNo(health.DatabaseReadable)},
		{"Table present", yesNo(health.TableExists)},
		{"Integrity", yesNo(health.IntegrityCheck)},
		{"Conversions", strconv.Itoa(health.TotalItems)},
	}
	if health.Error != "" {
		rows = append(rows, []string{"Error", health.Error})
	}
	return rows
}
