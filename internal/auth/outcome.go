package auth

import "log/slog"

// Outcome is the result of a best-effort step. A failed step is logged by
// the caller and never aborts the surrounding operation.
type Outcome struct {
	Step string
	Err  error
}

// Failed reports whether the step went wrong.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Log records a failed outcome at WARN.
func (o Outcome) Log(logger *slog.Logger) {
	if !o.Failed() {
		return
	}

	logger.Warn("best-effort step failed",
		slog.String("step", o.Step),
		slog.String("error", o.Err.Error()),
	)
}

// launchBrowser attempts to open the auth URL. The prompt always shows the
// URL too, so a failure here only costs the user a copy-paste.
func launchBrowser(authURL string, openURL func(string) error) Outcome {
	return Outcome{Step: "open browser", Err: openURL(authURL)}
}
