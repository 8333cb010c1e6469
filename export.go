package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/looker-cli/internal/drive"
)

// errFileUnavailable is returned when a report cannot be read before an
// export or clone.
var errFileUnavailable = errors.New("file not found or not accessible; check the file ID and your permissions")

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a report to PDF or JSON",
		Long: `Export a report to a local file.

PDF exports use Drive's PDF rendering and fall back to downloading the raw
file when Drive cannot render it. JSON exports contain file metadata only.
The file is written to the working directory unless --output is given.`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().String("id", "", "Drive file ID of the report (required)")
	cmd.Flags().StringP("format", "f", drive.FormatPDF, "export format: json or pdf")
	cmd.Flags().StringP("output", "o", "", "output file path")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

// exportResult is the JSON schema for `export --json`.
type exportResult struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Format string `json:"format"`
	Path   string `json:"path"`
	Note   string `json:"note,omitempty"`
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cc := mustCLIContext(ctx)

	id, _ := cmd.Flags().GetString("id")
	rawFormat, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("--id must not be empty")
	}

	format, err := drive.ParseFormat(rawFormat)
	if err != nil {
		return err
	}

	cc.Logger.Debug("export requested",
		slog.String("id", id),
		slog.String("format", format),
		slog.String("output", output),
	)

	cc.Statusf("Exporting report %s as %s...\n", id, strings.ToUpper(format))

	svc, err := openSession(ctx, cc)
	if err != nil {
		return err
	}

	info, err := svc.FileInfo(ctx, id)
	if err != nil {
		cc.Logger.Debug("file lookup failed", slog.String("id", id), slog.String("error", err.Error()))

		return fmt.Errorf("%w: %w", errFileUnavailable, err)
	}

	cc.Statusf("   File: %s\n   Type: %s\n", info.Name, info.MimeType)

	path, err := svc.ExportReport(ctx, id, drive.ExportOptions{Format: format, OutputPath: output})
	if err != nil {
		return fmt.Errorf("exporting report: %w", err)
	}

	if cc.Flags.JSON {
		res := exportResult{ID: id, Name: info.Name, Format: format, Path: path}
		if format == drive.FormatJSON {
			res.Note = drive.ExportNote
		}

		return printJSON(cc.Out, res)
	}

	fmt.Fprintf(cc.Out, "%s\n", successMark("Export completed successfully!"))
	fmt.Fprintf(cc.Out, "   Output file: %s\n", path)

	if format == drive.FormatJSON {
		fmt.Fprintln(cc.Out)
		fmt.Fprintln(cc.Out, hintMark("Note: JSON export contains metadata only."))
		fmt.Fprintln(cc.Out, "   Looker Studio reports cannot be fully exported as JSON via the Drive API.")
		fmt.Fprintln(cc.Out, "   For complete data export, use the PDF format or export directly from Looker Studio.")
	}

	return nil
}
