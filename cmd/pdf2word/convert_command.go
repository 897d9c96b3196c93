package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pdf2word/internal/config"
)

type convertOutput struct {
	FileID            string `json:"file_id"`
	OriginalFilename  string `json:"original_filename"`
	ConvertedFilename string `json:"converted_filename"`
	FileSize          int64  `json:"file_size"`
	OutputPath        string `json:"output_path,omitempty"`
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var noDownload bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "convert <file.pdf>",
		Short: "Convert a PDF document to Word format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve input path: %w", err)
			}

			session, store, err := ctx.newSession()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			out := cmd.OutOrStdout()
			if !jsonOutput && isTerminal(os.Stdout) {
				fmt.Fprintf(out, "Uploading %s...\n", path)
			}

			state, err := session.Convert(cmd.Context(), path)
			if err != nil {
				return err
			}
			result := state.Result

			output := convertOutput{
				FileID:            result.FileID,
				OriginalFilename:  result.OriginalFilename,
				ConvertedFilename: result.ConvertedFilename,
				FileSize:          result.FileSize,
			}

			if !noDownload {
				outputPath, err := session.Download(cmd.Context())
				if err != nil {
					return err
				}
				output.OutputPath = outputPath
			}

			if jsonOutput {
				return writeJSON(cmd, output)
			}

			rows := [][]string{
				{"Original", output.OriginalFilename},
				{"Converted", output.ConvertedFilename},
				{"File ID", output.FileID},
				{"Size", formatSize(output.FileSize)},
			}
			if output.OutputPath != "" {
				rows = append(rows, []string{"Saved to", output.OutputPath})
			}
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
			if noDownload {
				fmt.Fprintf(out, "Run 'pdf2word download %s' to fetch the document.\n", output.FileID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noDownload, "no-download", false, "Convert without downloading the result")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON output")
	return cmd
}
