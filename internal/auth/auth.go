// Package auth obtains an authorized HTTP client for the Google Drive API.
//
// A stored token is reused when Google's tokeninfo endpoint accepts it.
// Otherwise the user is walked through the OAuth2 authorization code flow
// (with PKCE): the authorization URL is opened in a browser and the code is
// read back through a CodePrompt. Tokens are persisted with the tokenfile
// package, including silent refreshes.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/tonimelisma/looker-cli/internal/config"
	"github.com/tonimelisma/looker-cli/internal/tokenfile"
)

// DriveScope is the single OAuth scope requested. Full Drive access is needed
// because copies are created next to reports the user does not own.
const DriveScope = "https://www.googleapis.com/auth/drive"

// DefaultRevokeURL is Google's token revocation endpoint.
const DefaultRevokeURL = "https://oauth2.googleapis.com/revoke"

// stateTokenBytes is the number of random bytes for the OAuth2 state parameter.
const stateTokenBytes = 16

// ErrRevokeFailed is returned when the revocation endpoint rejects the token.
var ErrRevokeFailed = errors.New("auth: token revocation failed")

// Config carries everything the Authenticator needs. Only ClientID,
// ClientSecret and TokenPath are required; the rest default to Google's
// production endpoints and the process-wide HTTP client.
type Config struct {
	ClientID     string
	ClientSecret string
	TokenPath    string
	RedirectURL  string

	// Endpoint overrides the OAuth2 authorization and token URLs.
	Endpoint oauth2.Endpoint
	// TokenInfoURL overrides the base URL of the oauth2/v2 API.
	TokenInfoURL string
	// RevokeURL overrides DefaultRevokeURL.
	RevokeURL string

	// HTTPClient is used for token exchange, introspection and revocation,
	// and as the base transport of the authorized client.
	HTTPClient *http.Client

	Prompt  CodePrompt
	OpenURL func(string) error
	Logger  *slog.Logger
}

// Authenticator hands out authorized clients backed by a token file.
type Authenticator struct {
	oauth      *oauth2.Config
	tokenPath  string
	tokenInfo  string
	revokeURL  string
	httpClient *http.Client
	prompt     CodePrompt
	openURL    func(string) error
	logger     *slog.Logger
}

// New validates cfg and builds an Authenticator. Missing client credentials
// yield config.ErrMissingCredentials; no network traffic happens here.
func New(cfg Config) (*Authenticator, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, config.ErrMissingCredentials
	}

	if cfg.TokenPath == "" {
		return nil, errors.New("auth: token path is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" && endpoint.TokenURL == "" {
		endpoint = google.Endpoint
	}

	revokeURL := cfg.RevokeURL
	if revokeURL == "" {
		revokeURL = DefaultRevokeURL
	}

	openURL := cfg.OpenURL
	if openURL == nil {
		openURL = func(string) error { return errors.New("no browser available") }
	}

	prompt := cfg.Prompt
	if prompt == nil {
		prompt = NewConsolePrompt(nil, nil)
	}

	a := &Authenticator{
		tokenPath:  cfg.TokenPath,
		tokenInfo:  cfg.TokenInfoURL,
		revokeURL:  revokeURL,
		httpClient: httpClient,
		prompt:     prompt,
		openURL:    openURL,
		logger:     logger,
	}

	a.oauth = &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       []string{DriveScope},
		Endpoint:     endpoint,
		// Called by ReuseTokenSource after each silent refresh, outside its mutex.
		OnTokenChange: a.persistRefreshed,
	}

	return a, nil
}

// Client returns an HTTP client authorized for Drive. A stored token is used
// when the tokeninfo endpoint accepts it; an unreadable token or a rejected
// one falls through to the interactive flow.
func (a *Authenticator) Client(ctx context.Context) (*http.Client, error) {
	ctx = a.withHTTPClient(ctx)

	tok, err := tokenfile.Load(a.tokenPath)
	if err != nil {
		a.logger.Warn("ignoring unreadable token file",
			slog.String("path", a.tokenPath),
			slog.String("error", err.Error()),
		)

		tok = nil
	}

	if tok != nil {
		src := a.oauth.TokenSource(ctx, tok)

		verifyErr := a.verify(ctx, src)
		if verifyErr == nil {
			a.logger.Debug("stored token accepted", slog.String("path", a.tokenPath))

			return a.authorizedClient(ctx, src), nil
		}

		a.logger.Warn("stored token rejected, re-authorizing",
			slog.String("path", a.tokenPath),
			slog.String("error", verifyErr.Error()),
		)
	}

	return a.Login(ctx)
}

// Login always runs the interactive authorization flow and replaces any
// stored token.
func (a *Authenticator) Login(ctx context.Context) (*http.Client, error) {
	ctx = a.withHTTPClient(ctx)

	a.logger.Info("starting authorization code flow",
		slog.String("path", a.tokenPath),
	)

	verifier := oauth2.GenerateVerifier()

	state, err := generateState()
	if err != nil {
		return nil, fmt.Errorf("auth: generating state token: %w", err)
	}

	authURL := a.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
	)

	if outcome := launchBrowser(authURL, a.openURL); outcome.Failed() {
		outcome.Log(a.logger)
	}

	input, err := a.prompt.PromptCode(ctx, authURL)
	if err != nil {
		return nil, fmt.Errorf("auth: reading authorization code: %w", err)
	}

	code, err := ExtractCode(input, state)
	if err != nil {
		return nil, err
	}

	return a.exchangeAndSave(ctx, code, verifier)
}

// Revoke invalidates the stored token at Google and then removes the local
// file. Without a token file it does nothing.
func (a *Authenticator) Revoke(ctx context.Context) error {
	if !tokenfile.Exists(a.tokenPath) {
		a.logger.Info("revoke: no token file (already logged out)",
			slog.String("path", a.tokenPath),
		)

		return nil
	}

	// An unreadable file is reported and left in place.
	tok, err := tokenfile.Load(a.tokenPath)
	if err != nil {
		return err
	}

	if tok == nil {
		return nil
	}

	// Revoking the refresh token also invalidates every access token minted from it.
	value := tok.RefreshToken
	if value == "" {
		value = tok.AccessToken
	}

	if err := a.postRevoke(ctx, value); err != nil {
		return err
	}

	if err := tokenfile.Delete(a.tokenPath); err != nil {
		return err
	}

	a.logger.Info("revoke: removed token file", slog.String("path", a.tokenPath))

	return nil
}

// TokenPath returns the file the Authenticator reads and writes.
func (a *Authenticator) TokenPath() string {
	return a.tokenPath
}

func (a *Authenticator) postRevoke(ctx context.Context, token string) error {
	form := url.Values{"token": {token}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.revokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("auth: building revoke request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth: revoke request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		return fmt.Errorf("%w: HTTP %d: %s", ErrRevokeFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	a.logger.Debug("token revoked at provider")

	return nil
}

// verify obtains a token from src (refreshing it if the stored expiry has
// passed) and asks Google's tokeninfo endpoint whether it is still valid.
func (a *Authenticator) verify(ctx context.Context, src oauth2.TokenSource) error {
	tok, err := src.Token()
	if err != nil {
		return fmt.Errorf("auth: obtaining token: %w", err)
	}

	opts := []option.ClientOption{option.WithHTTPClient(a.httpClient)}
	if a.tokenInfo != "" {
		opts = append(opts, option.WithEndpoint(a.tokenInfo))
	}

	svc, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return fmt.Errorf("auth: creating tokeninfo service: %w", err)
	}

	info, err := svc.Tokeninfo().AccessToken(tok.AccessToken).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("auth: token introspection: %w", err)
	}

	a.logger.Debug("token introspection succeeded",
		slog.Int64("expires_in", info.ExpiresIn),
		slog.String("scope", info.Scope),
	)

	return nil
}

// exchangeAndSave exchanges the auth code for a token and persists it.
func (a *Authenticator) exchangeAndSave(ctx context.Context, code, verifier string) (*http.Client, error) {
	a.logger.Info("received authorization code, exchanging for token")

	tok, err := a.oauth.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("auth: token exchange failed: %w", err)
	}

	if saveErr := tokenfile.Save(a.tokenPath, tok); saveErr != nil {
		return nil, fmt.Errorf("auth: saving token: %w", saveErr)
	}

	a.logger.Info("authorization successful",
		slog.String("path", a.tokenPath),
		slog.Time("expiry", tok.Expiry),
	)

	return a.authorizedClient(ctx, a.oauth.TokenSource(ctx, tok)), nil
}

// authorizedClient has no overall timeout: it also carries export
// downloads, whose bodies can take longer than any metadata call. Callers
// bound metadata requests themselves.
func (a *Authenticator) authorizedClient(ctx context.Context, src oauth2.TokenSource) *http.Client {
	return oauth2.NewClient(ctx, src)
}

// withHTTPClient makes the oauth2 package use our client for token
// endpoint calls and as the base transport of authorized clients.
func (a *Authenticator) withHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)
}

func (a *Authenticator) persistRefreshed(tok *oauth2.Token) {
	a.logger.Info("token refreshed by oauth2 library",
		slog.String("path", a.tokenPath),
		slog.Time("new_expiry", tok.Expiry),
	)

	// Google omits the refresh token from refresh responses; the library
	// carries the old one forward, so tok is complete here.
	if err := tokenfile.Save(a.tokenPath, tok); err != nil {
		a.logger.Warn("failed to persist refreshed token",
			slog.String("path", a.tokenPath),
			slog.String("error", err.Error()),
		)
	}
}

// generateState produces a cryptographically random hex string for the OAuth2
// state parameter.
func generateState() (string, error) {
	b := make([]byte, stateTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
