// Package testutil provides shared environment helpers for E2E tests that
// run the looker-cli binary against a real Google account.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variables read by the E2E suite.
const (
	// EnvTestToken points at a token file produced by `looker-cli login`.
	EnvTestToken = "LOOKER_CLI_TEST_TOKEN"
	// EnvTestReportID names a report the test account can read. Export and
	// clone tests are skipped without it.
	EnvTestReportID = "LOOKER_CLI_TEST_REPORT_ID"
)

// LoadDotEnv reads KEY=VALUE pairs from a .env file at the given path.
// A missing file is not an error (CI sets env vars directly). Existing env
// vars take precedence over .env values.
func LoadDotEnv(envPath string) {
	_ = godotenv.Load(envPath)
}

// RequireEnv returns the value of key or exits when it is unset.
func RequireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		fmt.Fprintf(os.Stderr, "FATAL: %s not set\n", key)
		fmt.Fprintln(os.Stderr, "Set it in .env or as an environment variable.")
		os.Exit(1)
	}

	return v
}

// FindModuleRoot walks up from the current directory to find go.mod.
// Returns the fallback if the root is not found.
func FindModuleRoot(fallback string) string {
	dir, err := os.Getwd()
	if err != nil {
		return fallback
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return fallback
		}

		dir = parent
	}
}

// CopyFile copies a file from src to dst with the given permissions.
// Crashes on failure because tests cannot proceed without the file.
func CopyFile(src, dst string, perm os.FileMode) {
	data, err := os.ReadFile(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: cannot read %s: %v\n", src, err)
		fmt.Fprintln(os.Stderr, "Run `looker-cli login --token-path <file>` to create a test token.")
		os.Exit(1)
	}

	if writeErr := os.WriteFile(dst, data, perm); writeErr != nil {
		fmt.Fprintf(os.Stderr, "FATAL: writing %s: %v\n", dst, writeErr)
		os.Exit(1)
	}
}
