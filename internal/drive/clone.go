package drive

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	drivev3 "google.golang.org/api/drive/v3"
)

// ErrEmptyTitle is returned when a clone is requested without a usable name.
var ErrEmptyTitle = errors.New("drive: new report name must not be empty")

// CloneOptions control CloneReport.
type CloneOptions struct {
	NewTitle string
}

// CloneResult describes the copy. ViewLink is empty when fetching it failed;
// ViewLinkErr then says why. The copy itself succeeded either way.
type CloneResult struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ViewLink    string `json:"webViewLink,omitempty"`
	ViewLinkErr error  `json:"-"`
}

// CloneReport copies a file into the same folders as the original under a
// new name.
func (c *Client) CloneReport(ctx context.Context, id string, opts CloneOptions) (CloneResult, error) {
	if strings.TrimSpace(opts.NewTitle) == "" {
		return CloneResult{}, ErrEmptyTitle
	}

	src, err := c.getFile(ctx, id, "parents")
	if err != nil {
		return CloneResult{}, err
	}

	copied, err := c.svc.Files.Copy(id, &drivev3.File{
		Name:    opts.NewTitle,
		Parents: src.Parents,
	}).
		Fields("id,name").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return CloneResult{}, classify("copy file "+id, err)
	}

	result := CloneResult{ID: copied.Id, Name: copied.Name}
	if result.Name == "" {
		result.Name = opts.NewTitle
	}

	c.logger.Info("report cloned",
		slog.String("source_id", id),
		slog.String("new_id", result.ID),
	)

	link, err := c.getFile(ctx, copied.Id, "webViewLink")
	switch {
	case err != nil:
		result.ViewLinkErr = err
	case link.WebViewLink == "":
		result.ViewLinkErr = errors.New("drive: no view link returned")
	default:
		result.ViewLink = link.WebViewLink
	}

	if result.ViewLinkErr != nil {
		c.logger.Warn("could not fetch view link of copy",
			slog.String("id", result.ID),
			slog.String("error", result.ViewLinkErr.Error()),
		)
	}

	return result, nil
}
