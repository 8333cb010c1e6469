package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/browser"
	"golang.org/x/oauth2"

	"github.com/tonimelisma/looker-cli/internal/auth"
	"github.com/tonimelisma/looker-cli/internal/drive"
)

// reportService is the slice of the Drive client the commands use.
type reportService interface {
	ListReports(ctx context.Context) ([]drive.Report, error)
	FileInfo(ctx context.Context, id string) (drive.Report, error)
	ExportReport(ctx context.Context, id string, opts drive.ExportOptions) (string, error)
	CloneReport(ctx context.Context, id string, opts drive.CloneOptions) (drive.CloneResult, error)
	About(ctx context.Context) (drive.AccountInfo, error)
}

// openSession authenticates and returns a Drive-backed reportService.
// Tests replace it to avoid the network.
var openSession = openDriveSession

// serviceEndpoints points the auth and Drive clients somewhere other than
// Google. Zero values mean production.
type serviceEndpoints struct {
	OAuth     oauth2.Endpoint
	TokenInfo string
	Revoke    string
	Drive     string
}

var endpoints serviceEndpoints

// launchBrowser opens the authorization URL. Tests replace it.
var launchBrowser = openBrowser

// errNotInteractive is returned by the browser opener off a terminal.
var errNotInteractive = errors.New("not running in an interactive terminal")

func openDriveSession(ctx context.Context, cc *CLIContext) (reportService, error) {
	authn, err := newAuthenticator(cc)
	if err != nil {
		return nil, err
	}

	httpClient, err := authn.Client(ctx)
	if err != nil {
		return nil, err
	}

	return newDriveClient(ctx, cc, httpClient)
}

func newDriveClient(ctx context.Context, cc *CLIContext, httpClient *http.Client) (*drive.Client, error) {
	return drive.New(ctx, httpClient, drive.Options{
		Endpoint:        endpoints.Drive,
		UserAgent:       "looker-cli/" + version,
		MetadataTimeout: cc.Cfg.Timeout,
		Logger:          cc.Logger,
	})
}

// newAuthenticator builds the Authenticator from the resolved config.
// Missing credentials fail here, before any network traffic.
func newAuthenticator(cc *CLIContext) (*auth.Authenticator, error) {
	if err := cc.Cfg.RequireCredentials(); err != nil {
		return nil, err
	}

	return auth.New(auth.Config{
		ClientID:     cc.Cfg.ClientID,
		ClientSecret: cc.Cfg.ClientSecret,
		TokenPath:    cc.Cfg.TokenPath,
		RedirectURL:  cc.Cfg.RedirectURL,
		Endpoint:     endpoints.OAuth,
		TokenInfoURL: endpoints.TokenInfo,
		RevokeURL:    endpoints.Revoke,
		HTTPClient:   &http.Client{Timeout: cc.Cfg.Timeout},
		Prompt:       auth.NewConsolePrompt(cc.In, cc.Err),
		OpenURL:      launchBrowser,
		Logger:       cc.Logger,
	})
}

// openBrowser launches the default browser unless stdin or stdout is not a
// terminal, in which case nobody is there to use it.
func openBrowser(url string) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errNotInteractive
	}

	browser.Stdout = io.Discard
	browser.Stderr = io.Discard

	return browser.OpenURL(url)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
