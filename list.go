package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/looker-cli/internal/drive"
)

// titleWidth is the widest report title shown in the summary table.
const titleWidth = 30

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List Looker Studio reports in Google Drive",
		Long: `List files in Google Drive that look like Looker Studio reports.

Reports have no dedicated file type in Drive, so the search matches names
containing "looker", "data studio", "dashboard" or "report", plus native
Google documents. Only the first page of each search is shown.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cc := mustCLIContext(ctx)

	cc.Statusf("Listing Looker Studio reports...\n")

	svc, err := openSession(ctx, cc)
	if err != nil {
		return err
	}

	reports, err := svc.ListReports(ctx)
	if err != nil {
		return fmt.Errorf("listing reports: %w", err)
	}

	if cc.Flags.JSON {
		if reports == nil {
			reports = []drive.Report{}
		}

		return printJSON(cc.Out, reports)
	}

	if len(reports) == 0 {
		printNoReports(cc.Out)

		return nil
	}

	printReports(cc.Out, reports)

	return nil
}

func printNoReports(w io.Writer) {
	fmt.Fprintln(w, "No Looker Studio reports found.")
	fmt.Fprintln(w, "Make sure you have reports in your Google Drive that contain keywords like:")

	for _, kw := range drive.SearchKeywords {
		fmt.Fprintf(w, "- %q\n", kw)
	}
}

func printReports(w io.Writer, reports []drive.Report) {
	fmt.Fprintf(w, "Found %d report(s):\n\n", len(reports))

	table := newTable(w, 3)
	table.Header("Title", "File ID", "Last Modified")

	for i := range reports {
		r := &reports[i]
		_ = table.Append(truncate(r.Name, titleWidth), r.ID, formatDate(r.ModifiedTime))
	}

	_ = table.Render()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Details:")
	fmt.Fprintln(w)

	for i := range reports {
		printReportDetail(w, i+1, &reports[i])
	}

	fmt.Fprintln(w, hintMark("Use these file IDs with the export and clone commands:"))
	fmt.Fprintln(w, "   looker-cli export --id <FILE_ID> --format pdf")
	fmt.Fprintln(w, `   looker-cli clone --id <FILE_ID> --name "My New Report"`)
}

func printReportDetail(w io.Writer, n int, r *drive.Report) {
	fmt.Fprintf(w, "%d. %s\n", n, r.Name)
	fmt.Fprintf(w, "   File ID:  %s\n", r.ID)
	fmt.Fprintf(w, "   Modified: %s\n", formatTimestamp(r.ModifiedTime))

	if r.Size > 0 {
		fmt.Fprintf(w, "   Size:     %s (%s)\n", formatBytes(r.Size), formatSize(r.Size))
	}

	if len(r.Owners) > 0 {
		fmt.Fprintf(w, "   Owners:   %s\n", strings.Join(r.Owners, ", "))
	}

	if r.WebViewLink != "" {
		fmt.Fprintf(w, "   Link:     %s\n", r.WebViewLink)
	}

	fmt.Fprintln(w)
}
