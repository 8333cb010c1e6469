package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonimelisma/looker-cli/internal/config"
	"github.com/tonimelisma/looker-cli/internal/drive"
)

// Global flag reset pattern: newRootCmd() binds flags via StringVar/BoolVar,
// which reset the global flag variables to their zero values. Tests go
// through runCLI so Cobra parses flags for every invocation.

func TestMain(m *testing.M) {
	color.NoColor = true

	os.Exit(m.Run())
}

// testEnv isolates config, token and credentials in a temp directory.
type testEnv struct {
	dir       string
	tokenPath string
}

func setupEnv(t *testing.T) testEnv {
	t.Helper()

	dir := t.TempDir()
	env := testEnv{dir: dir, tokenPath: filepath.Join(dir, "token.json")}

	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(config.EnvConfig, filepath.Join(dir, "looker-cli", "config.toml"))
	t.Setenv(config.EnvTokenPath, env.tokenPath)
	t.Setenv(config.EnvClientID, "test-client.apps.googleusercontent.com")
	t.Setenv(config.EnvClientSecret, "test-secret")

	return env
}

// runCLI executes the root command with args and returns what it wrote.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), errOut.String(), err
}

// fakeService records calls and returns canned results.
type fakeService struct {
	reports []drive.Report
	listErr error

	info    drive.Report
	infoErr error

	exportPath  string
	exportErr   error
	exportID    string
	exportOpts  drive.ExportOptions
	exportCalls int

	clone      drive.CloneResult
	cloneErr   error
	cloneID    string
	cloneOpts  drive.CloneOptions
	cloneCalls int

	about    drive.AccountInfo
	aboutErr error
}

func (f *fakeService) ListReports(context.Context) ([]drive.Report, error) {
	return f.reports, f.listErr
}

func (f *fakeService) FileInfo(_ context.Context, id string) (drive.Report, error) {
	if f.infoErr != nil {
		return drive.Report{}, f.infoErr
	}

	info := f.info
	if info.ID == "" {
		info.ID = id
	}

	return info, nil
}

func (f *fakeService) ExportReport(_ context.Context, id string, opts drive.ExportOptions) (string, error) {
	f.exportCalls++
	f.exportID = id
	f.exportOpts = opts

	return f.exportPath, f.exportErr
}

func (f *fakeService) CloneReport(_ context.Context, id string, opts drive.CloneOptions) (drive.CloneResult, error) {
	f.cloneCalls++
	f.cloneID = id
	f.cloneOpts = opts

	return f.clone, f.cloneErr
}

func (f *fakeService) About(context.Context) (drive.AccountInfo, error) {
	return f.about, f.aboutErr
}

// useService swaps openSession for one returning svc and returns a pointer
// to the number of sessions opened.
func useService(t *testing.T, svc reportService) *int {
	t.Helper()

	calls := 0
	orig := openSession

	openSession = func(context.Context, *CLIContext) (reportService, error) {
		calls++

		return svc, nil
	}

	t.Cleanup(func() { openSession = orig })

	return &calls
}

func TestBuildLogger_Levels(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		configLevel string
		flags       CLIFlags
		enabled     slog.Level
		disabled    slog.Level
	}{
		{"default warn", "", CLIFlags{}, slog.LevelWarn, slog.LevelInfo},
		{"config info", "info", CLIFlags{}, slog.LevelInfo, slog.LevelDebug},
		{"config debug", "debug", CLIFlags{}, slog.LevelDebug, slog.LevelDebug - 1},
		{"config error", "error", CLIFlags{}, slog.LevelError, slog.LevelWarn},
		{"verbose beats config", "error", CLIFlags{Verbose: true}, slog.LevelDebug, slog.LevelDebug - 1},
		{"quiet beats verbose", "debug", CLIFlags{Verbose: true, Quiet: true}, slog.LevelError, slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := buildLogger(tt.configLevel, tt.flags)
			assert.True(t, logger.Handler().Enabled(ctx, tt.enabled))
			assert.False(t, logger.Handler().Enabled(ctx, tt.disabled))
		})
	}
}

func TestMustCLIContext_PanicsWithoutSetup(t *testing.T) {
	assert.Panics(t, func() { mustCLIContext(context.Background()) })
}

func TestRoot_NoArgsShowsHelp(t *testing.T) {
	setupEnv(t)

	out, _, err := runCLI(t, "")
	require.NoError(t, err)
	assert.Contains(t, out, "list")
	assert.Contains(t, out, "export")
	assert.Contains(t, out, "clone")
}

func TestRoot_Version(t *testing.T) {
	setupEnv(t)

	out, _, err := runCLI(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}

func TestRoot_BrokenConfigFails(t *testing.T) {
	env := setupEnv(t)

	cfgPath := filepath.Join(env.dir, "broken.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`log_levl = "debug"`), 0o600))

	calls := useService(t, &fakeService{})

	_, _, err := runCLI(t, "", "--config", cfgPath, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
	assert.Contains(t, err.Error(), "log_level")
	assert.Equal(t, 0, *calls)
}

func TestRoot_TokenPathFlag(t *testing.T) {
	env := setupEnv(t)
	custom := filepath.Join(env.dir, "custom", "token.json")

	out, _, err := runCLI(t, "", "--token-path", custom, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, custom)
}

func TestMissingCredentials_NoNetwork(t *testing.T) {
	setupEnv(t)
	t.Setenv(config.EnvClientID, "")
	t.Setenv(config.EnvClientSecret, "")

	for _, args := range [][]string{
		{"list"},
		{"export", "--id", "abc"},
		{"clone", "--id", "abc", "--name", "Copy"},
		{"login"},
		{"logout"},
		{"whoami"},
	} {
		t.Run(args[0], func(t *testing.T) {
			_, _, err := runCLI(t, "", args...)
			require.ErrorIs(t, err, config.ErrMissingCredentials)
		})
	}
}
