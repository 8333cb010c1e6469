package drive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	drivev3 "google.golang.org/api/drive/v3"
)

// Export formats.
const (
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ExportNote is written into every JSON export.
const ExportNote = "This is metadata only. Looker Studio reports cannot be fully exported as JSON via Drive API."

const (
	pdfMimeType    = "application/pdf"
	exportMetaKeys = "id,name,mimeType,webViewLink"
)

// ErrUnsupportedFormat is returned by ParseFormat for anything but pdf or json.
var ErrUnsupportedFormat = errors.New("drive: unsupported export format")

// ParseFormat normalizes a user-supplied format. Empty means pdf.
func ParseFormat(s string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(s))

	switch f {
	case "":
		return FormatPDF, nil
	case FormatPDF, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q (use json or pdf)", ErrUnsupportedFormat, s)
	}
}

// ExportOptions control ExportReport. Format must already be normalized by
// ParseFormat. OutputPath wins over the derived name; Dir defaults to the
// working directory.
type ExportOptions struct {
	Format     string
	OutputPath string
	Dir        string
}

// ExportDocument is the JSON written by a json export.
type ExportDocument struct {
	Metadata   *drivev3.File `json:"metadata"`
	ExportedAt string        `json:"exportedAt"`
	Note       string        `json:"note"`
}

// ExportReport writes the report to disk and returns the path written.
// A pdf export streams Drive's PDF rendering, falling back to the raw file
// content if Drive cannot render it. A json export writes the file's
// metadata only. Partially written files are left in place on error.
func (c *Client) ExportReport(ctx context.Context, id string, opts ExportOptions) (string, error) {
	format, err := ParseFormat(opts.Format)
	if err != nil {
		return "", err
	}

	meta, err := c.getFile(ctx, id, exportMetaKeys)
	if err != nil {
		return "", err
	}

	path, err := c.outputPath(meta, id, format, opts)
	if err != nil {
		return "", err
	}

	c.logger.Info("exporting report",
		slog.String("id", id),
		slog.String("format", format),
		slog.String("path", path),
	)

	if format == FormatJSON {
		err = c.exportJSON(ctx, id, path)
	} else {
		err = c.exportPDF(ctx, id, path)
	}

	if err != nil {
		return "", err
	}

	return path, nil
}

func (c *Client) outputPath(meta *drivev3.File, id, format string, opts ExportOptions) (string, error) {
	if opts.OutputPath != "" {
		return opts.OutputPath, nil
	}

	name := meta.Name
	if name == "" {
		name = "report_" + id
	}

	dir := opts.Dir
	if dir == "" {
		wd, err := c.getwd()
		if err != nil {
			return "", fmt.Errorf("drive: resolving working directory: %w", err)
		}

		dir = wd
	}

	return filepath.Join(dir, SanitizeFileName(name)+"."+format), nil
}

func (c *Client) exportPDF(ctx context.Context, id, path string) error {
	resp, err := c.transfer.Files.Export(id, pdfMimeType).Context(ctx).Download()
	if err != nil {
		c.logger.Warn("pdf export failed, downloading file content instead",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)

		resp, err = c.transfer.Files.Get(id).SupportsAllDrives(true).Context(ctx).Download()
		if err != nil {
			return classify("download file "+id, err)
		}
	}

	return writeBody(resp, path, c.logger)
}

// writeBody streams resp into a new file at path. The file is complete once
// this returns nil.
func writeBody(resp *http.Response, path string, logger *slog.Logger) error {
	defer resp.Body.Close()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("drive: creating %s: %w", path, err)
	}

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		f.Close()

		return fmt.Errorf("drive: writing %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("drive: closing %s: %w", path, err)
	}

	logger.Debug("export written", slog.String("path", path), slog.Int64("bytes", n))

	return nil
}

func (c *Client) exportJSON(ctx context.Context, id, path string) error {
	meta, err := c.getFile(ctx, id, "*")
	if err != nil {
		return err
	}

	doc := ExportDocument{
		Metadata:   meta,
		ExportedAt: c.now().UTC().Format(time.RFC3339),
		Note:       ExportNote,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("drive: encoding export: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil { //nolint:gosec // exports are user documents
		return fmt.Errorf("drive: writing %s: %w", path, err)
	}

	return nil
}

// SanitizeFileName replaces every rune that is not an ASCII letter, digit,
// hyphen, underscore or whitespace with an underscore.
func SanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', isNameSpace(r):
			return r
		default:
			return '_'
		}
	}, name)
}

// isNameSpace is the ECMAScript whitespace set: Unicode White_Space minus
// NEL (U+0085), plus the byte order mark (U+FEFF).
func isNameSpace(r rune) bool {
	switch r {
	case '\u0085':
		return false
	case '\uFEFF':
		return true
	}

	return unicode.IsSpace(r)
}
