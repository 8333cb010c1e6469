// Package drive is a thin client over the Google Drive v3 API for finding,
// exporting and copying Looker Studio reports. There is no caching and no
// retry: every call maps to one or two Drive requests and errors are
// classified into sentinels.
package drive

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Options tune a Client. The zero value targets production Drive.
type Options struct {
	// Endpoint overrides the Drive API base URL (tests point it at httptest).
	Endpoint  string
	UserAgent string
	// MetadataTimeout bounds each metadata request. Export downloads are
	// never bounded. Zero means no limit.
	MetadataTimeout time.Duration
	Logger          *slog.Logger
}

// Client wraps two Drive services sharing one authorized transport.
type Client struct {
	svc      *drivev3.Service // metadata ops (MetadataTimeout)
	transfer *drivev3.Service // export downloads (no timeout)
	logger   *slog.Logger

	// now and getwd are swapped in tests.
	now   func() time.Time
	getwd func() (string, error)
}

// New creates a Client that sends requests through httpClient, which must
// already carry OAuth2 credentials. httpClient is used as-is for downloads;
// metadata requests go through a copy limited to opts.MetadataTimeout.
func New(ctx context.Context, httpClient *http.Client, opts Options) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metaHTTP := httpClient
	if opts.MetadataTimeout > 0 {
		metaHTTP = &http.Client{
			Transport:     httpClient.Transport,
			CheckRedirect: httpClient.CheckRedirect,
			Jar:           httpClient.Jar,
			Timeout:       opts.MetadataTimeout,
		}
	}

	svc, err := newService(ctx, metaHTTP, opts)
	if err != nil {
		return nil, err
	}

	transfer, err := newService(ctx, httpClient, opts)
	if err != nil {
		return nil, err
	}

	return &Client{
		svc:      svc,
		transfer: transfer,
		logger:   logger,
		now:      time.Now,
		getwd:    os.Getwd,
	}, nil
}

func newService(ctx context.Context, httpClient *http.Client, opts Options) (*drivev3.Service, error) {
	clientOpts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	if opts.UserAgent != "" {
		clientOpts = append(clientOpts, option.WithUserAgent(opts.UserAgent))
	}

	svc, err := drivev3.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("drive: creating service: %w", err)
	}

	return svc, nil
}
