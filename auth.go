package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/looker-cli/internal/drive"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authorize access to Google Drive",
		Long: `Run the OAuth2 authorization flow and store a new token.

The authorization URL is opened in your browser and printed. After you
approve access, paste the code (or the whole address Google redirected you
to) back into the terminal. Any stored token is replaced.`,
		Args: cobra.NoArgs,
		RunE: runLogin,
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke and remove the stored token",
		Args:  cobra.NoArgs,
		RunE:  runLogout,
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Display the authenticated user and storage quota",
		Args:  cobra.NoArgs,
		RunE:  runWhoami,
	}
}

func runLogin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cc := mustCLIContext(ctx)

	authn, err := newAuthenticator(cc)
	if err != nil {
		return err
	}

	cc.Logger.Info("login started", slog.String("token_path", authn.TokenPath()))

	httpClient, err := authn.Login(ctx)
	if err != nil {
		return err
	}

	svc, err := newDriveClient(ctx, cc, httpClient)
	if err != nil {
		return err
	}

	// The token is already saved; the account lookup only personalizes output.
	info, err := svc.About(ctx)
	if err != nil {
		cc.Logger.Warn("could not fetch account after login", slog.String("error", err.Error()))
		fmt.Fprintln(cc.Out, successMark("Login successful."))

		return nil
	}

	fmt.Fprintf(cc.Out, "%s Signed in as %s.\n", successMark("Login successful."), accountLabel(info))
	cc.Statusf("Token stored to %s\n", authn.TokenPath())

	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cc := mustCLIContext(ctx)

	authn, err := newAuthenticator(cc)
	if err != nil {
		return err
	}

	if err := authn.Revoke(ctx); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}

	cc.Logger.Info("logout successful", slog.String("token_path", authn.TokenPath()))
	fmt.Fprintln(cc.Out, "Logged out.")

	return nil
}

// whoamiOutput is the JSON schema for `whoami --json`.
type whoamiOutput struct {
	drive.AccountInfo
	TokenPath string `json:"token_path"`
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cc := mustCLIContext(ctx)

	svc, err := openSession(ctx, cc)
	if err != nil {
		return err
	}

	info, err := svc.About(ctx)
	if err != nil {
		return fmt.Errorf("fetching account: %w", err)
	}

	if cc.Flags.JSON {
		return printJSON(cc.Out, whoamiOutput{AccountInfo: info, TokenPath: cc.Cfg.TokenPath})
	}

	fmt.Fprintf(cc.Out, "User:    %s\n", accountLabel(info))

	if info.Limit > 0 {
		fmt.Fprintf(cc.Out, "Storage: %s of %s used\n", formatSize(info.Usage), formatSize(info.Limit))
	} else {
		fmt.Fprintf(cc.Out, "Storage: %s used (unlimited)\n", formatSize(info.Usage))
	}

	fmt.Fprintf(cc.Out, "Token:   %s\n", cc.Cfg.TokenPath)

	return nil
}

func accountLabel(info drive.AccountInfo) string {
	switch {
	case info.DisplayName != "" && info.Email != "":
		return fmt.Sprintf("%s <%s>", info.DisplayName, info.Email)
	case info.Email != "":
		return info.Email
	case info.DisplayName != "":
		return info.DisplayName
	default:
		return "unknown user"
	}
}
