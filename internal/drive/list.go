package drive

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

// Report discovery queries. Looker Studio reports have no MIME type of their
// own in Drive, so listing is a heuristic: a name search plus native
// documents, merged and de-duplicated.
const (
	keywordQuery = "(name contains 'looker' or name contains 'data studio' or " +
		"name contains 'dashboard' or name contains 'report') and trashed=false"
	mimeQuery = "mimeType='application/vnd.google-apps.document' and trashed=false"

	keywordPageSize = 100
	mimePageSize    = 50

	listFields googleapi.Field = "files(id,name,modifiedTime,size,owners,webViewLink,mimeType)"
)

// SearchKeywords are the name fragments the keyword query matches.
var SearchKeywords = []string{"looker", "data studio", "dashboard", "report"}

// ListReports runs the keyword and MIME searches concurrently and returns
// their union, keyword matches first, with duplicates removed by ID. Only the
// first page of each search is read. Either search failing fails the call.
func (c *Client) ListReports(ctx context.Context) ([]Report, error) {
	c.logger.Debug("listing reports")

	var byKeyword, byMime []*drivev3.File

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		files, err := c.search(gctx, keywordQuery, keywordPageSize)
		byKeyword = files

		return err
	})

	g.Go(func() error {
		files, err := c.search(gctx, mimeQuery, mimePageSize)
		byMime = files

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := dedupeByID(append(byKeyword, byMime...))

	reports := make([]Report, 0, len(merged))
	for _, f := range merged {
		reports = append(reports, toReport(f))
	}

	c.logger.Debug("listed reports",
		slog.Int("keyword_matches", len(byKeyword)),
		slog.Int("mime_matches", len(byMime)),
		slog.Int("unique", len(reports)),
	)

	return reports, nil
}

func (c *Client) search(ctx context.Context, query string, pageSize int64) ([]*drivev3.File, error) {
	resp, err := c.svc.Files.List().
		Q(query).
		PageSize(pageSize).
		Fields(listFields).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify("list files", err)
	}

	return resp.Files, nil
}

// dedupeByID keeps the first file seen for each ID, preserving order.
func dedupeByID(files []*drivev3.File) []*drivev3.File {
	seen := make(map[string]bool, len(files))
	out := make([]*drivev3.File, 0, len(files))

	for _, f := range files {
		if f == nil || seen[f.Id] {
			continue
		}

		seen[f.Id] = true
		out = append(out, f)
	}

	return out
}

// FileInfo fetches the full metadata of one file.
func (c *Client) FileInfo(ctx context.Context, id string) (Report, error) {
	f, err := c.getFile(ctx, id, "*")
	if err != nil {
		return Report{}, err
	}

	return toReport(f), nil
}

func (c *Client) getFile(ctx context.Context, id string, fields googleapi.Field) (*drivev3.File, error) {
	f, err := c.svc.Files.Get(id).
		Fields(fields).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify("get file "+id, err)
	}

	return f, nil
}
