package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/looker-cli/internal/drive"
)

func newCloneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clone",
		Short: "Copy a report under a new name",
		Long: `Copy a report into the same folder as the original under a new name.

You need edit access to the source, or its owner must allow copying.`,
		Args: cobra.NoArgs,
		RunE: runClone,
	}

	cmd.Flags().String("id", "", "Drive file ID of the source report (required)")
	cmd.Flags().StringP("name", "n", "", "name of the new report (required)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runClone(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cc := mustCLIContext(ctx)

	id, _ := cmd.Flags().GetString("id")
	name, _ := cmd.Flags().GetString("name")

	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("--id must not be empty")
	}

	if strings.TrimSpace(name) == "" {
		return drive.ErrEmptyTitle
	}

	cc.Statusf("Cloning report %s as %q...\n", id, name)

	svc, err := openSession(ctx, cc)
	if err != nil {
		return err
	}

	info, err := svc.FileInfo(ctx, id)
	if err != nil {
		printCloneHints(cc.Err, err)

		return fmt.Errorf("source %w: %w", errFileUnavailable, err)
	}

	size := "unknown"
	if info.Size > 0 {
		size = formatBytes(info.Size)
	}

	cc.Statusf("   Source: %s\n   Type:   %s\n   Size:   %s\n", info.Name, info.MimeType, size)

	res, err := svc.CloneReport(ctx, id, drive.CloneOptions{NewTitle: name})
	if err != nil {
		printCloneHints(cc.Err, err)

		return fmt.Errorf("cloning report: %w", err)
	}

	if cc.Flags.JSON {
		return printJSON(cc.Out, res)
	}

	fmt.Fprintln(cc.Out, successMark("Clone completed successfully!"))
	fmt.Fprintf(cc.Out, "   New File ID: %s\n", res.ID)
	fmt.Fprintf(cc.Out, "   New Name:    %s\n", res.Name)
	fmt.Fprintln(cc.Out)

	if res.ViewLink != "" {
		fmt.Fprintf(cc.Out, "View your cloned report: %s\n", res.ViewLink)
	} else {
		fmt.Fprintln(cc.Out, "Clone created but unable to retrieve view link.")
	}

	fmt.Fprintln(cc.Out)
	fmt.Fprintln(cc.Out, hintMark("You can now:"))
	fmt.Fprintln(cc.Out, "   - Edit the cloned report in Looker Studio")
	fmt.Fprintf(cc.Out, "   - Export it: looker-cli export --id %s --format pdf\n", res.ID)
	fmt.Fprintln(cc.Out, "   - List all reports: looker-cli list")

	return nil
}

// printCloneHints suggests fixes for the two failures users hit most.
func printCloneHints(w io.Writer, err error) {
	msg := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, drive.ErrForbidden), strings.Contains(msg, "permission"):
		fmt.Fprintln(w, hintMark("Common solutions:"))
		fmt.Fprintln(w, "   - Make sure you have edit access to the source report")
		fmt.Fprintln(w, "   - Check that the report owner has enabled copying")
		fmt.Fprintln(w, "   - Try logging in again: looker-cli login")
	case errors.Is(err, drive.ErrNotFound), strings.Contains(msg, "not found"):
		fmt.Fprintln(w, hintMark("The file might be:"))
		fmt.Fprintln(w, "   - Deleted or moved")
		fmt.Fprintln(w, "   - Not shared with your account")
		fmt.Fprintln(w, "   - Identified by an incorrect file ID")
	}
}
