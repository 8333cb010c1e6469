package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/looker-cli/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// Global persistent flags, bound in newRootCmd().
var (
	flagConfigPath string
	flagTokenPath  string
	flagJSON       bool
	flagVerbose    bool
	flagQuiet      bool
)

// skipConfigAnnotation marks commands that must run without resolving the
// configuration, e.g. "config init" which creates it.
const skipConfigAnnotation = "skipConfig"

// CLIFlags is a snapshot of the persistent flags for one invocation.
type CLIFlags struct {
	ConfigPath string
	TokenPath  string
	JSON       bool
	Verbose    bool
	Quiet      bool
}

// CLIContext carries everything a subcommand needs. It is built once in
// PersistentPreRunE and stored in the command context.
type CLIContext struct {
	Flags  CLIFlags
	Logger *slog.Logger
	Cfg    *config.Resolved

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

type cliContextKey struct{}

// mustCLIContext returns the CLIContext stored by the root pre-run. Every
// subcommand runs after it, so a missing value is a programming error.
func mustCLIContext(ctx context.Context) *CLIContext {
	cc, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cc == nil {
		panic("CLIContext missing from command context")
	}

	return cc
}

// newRootCmd builds and returns the fully-assembled root command with all
// subcommands registered. Called once from main().
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "looker-cli",
		Short:   "Manage Looker Studio reports in Google Drive",
		Long:    "List, export and clone Looker Studio reports stored in Google Drive.",
		Version: version,
		// Silence Cobra's default error/usage printing; main handles it.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupCLIContext(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file path")
	cmd.PersistentFlags().StringVar(&flagTokenPath, "token-path", "", "OAuth token file path")
	cmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output in JSON format")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress informational output")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newCloneCmd())
	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newWhoamiCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// setupCLIContext loads the .env file and the configuration, builds the
// logger, and stores the resulting CLIContext in the command context.
func setupCLIContext(cmd *cobra.Command) error {
	flags := CLIFlags{
		ConfigPath: flagConfigPath,
		TokenPath:  flagTokenPath,
		JSON:       flagJSON,
		Verbose:    flagVerbose,
		Quiet:      flagQuiet,
	}

	cc := &CLIContext{
		Flags:  flags,
		Logger: buildLogger("", flags),
		In:     cmd.InOrStdin(),
		Out:    cmd.OutOrStdout(),
		Err:    cmd.ErrOrStderr(),
	}

	config.LoadDotEnv(config.DotEnvFile, cc.Logger)

	if cmd.Annotations[skipConfigAnnotation] != "true" {
		resolved, err := loadConfig(flags)
		if err != nil {
			return err
		}

		cc.Cfg = resolved
		cc.Logger = buildLogger(resolved.LogLevel, flags)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cc))

	return nil
}

// loadConfig resolves the effective configuration from the four-layer
// override chain.
func loadConfig(flags CLIFlags) (*config.Resolved, error) {
	cli := config.CLIOverrides{
		ConfigPath: flags.ConfigPath,
		TokenPath:  flags.TokenPath,
	}

	resolved, err := config.Resolve(config.ReadEnvOverrides(), cli)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return resolved, nil
}

// buildLogger creates an slog.Logger from the config log level and CLI
// flags. Config provides the baseline; --verbose and --quiet override it
// because CLI flags always win.
func buildLogger(configLevel string, flags CLIFlags) *slog.Logger {
	level := slog.LevelWarn

	switch configLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}

	if flags.Verbose {
		level = slog.LevelDebug
	}

	if flags.Quiet {
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// exitOnError prints a user-friendly error message to stderr and exits.
func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", failureMark("Error:"), err)
	os.Exit(1)
}
