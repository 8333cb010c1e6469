package config

import (
	"fmt"
	"io"
)

// RenderEffective writes the resolved configuration as a human-readable
// annotated summary to w. The client secret is never printed.
func RenderEffective(r *Resolved, w io.Writer) error {
	ew := &errWriter{w: w}

	ew.printf("# Effective configuration (config file: %q)\n\n", r.ConfigPath)

	ew.printf("# auth\n")
	ew.printf("  client_id     = %q\n", r.ClientID)
	ew.printf("  client_secret = %s\n", maskSecret(r.ClientSecret))
	ew.printf("  token_path    = %q\n", r.TokenPath)
	ew.printf("  redirect_url  = %q\n", r.RedirectURL)
	ew.printf("\n")

	ew.printf("# logging\n")
	ew.printf("  log_level = %q\n", r.LogLevel)
	ew.printf("\n")

	ew.printf("# network\n")
	ew.printf("  timeout = %q\n", r.Timeout.String())

	return ew.err
}

// maskSecret reports whether a secret is set without revealing it.
func maskSecret(s string) string {
	if s == "" {
		return "(unset)"
	}

	return "(set)"
}

// errWriter wraps an io.Writer and captures the first write error.
// Subsequent writes after an error are no-ops, so callers can chain
// printf calls without checking each one individually.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}

	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
