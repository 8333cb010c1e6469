package auth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
)

// ErrNoCode is returned when the prompt yields nothing usable as an
// authorization code.
var ErrNoCode = errors.New("auth: no authorization code entered")

// ErrStateMismatch is returned when a pasted redirect URL carries a state
// parameter other than the one sent.
var ErrStateMismatch = errors.New("auth: OAuth2 state mismatch (possible CSRF)")

// CodePrompt asks the user for the authorization code after they approved
// access at authURL. Implementations block until input arrives or ctx ends.
type CodePrompt interface {
	PromptCode(ctx context.Context, authURL string) (string, error)
}

// ConsolePrompt prints the authorization URL and reads one line of input.
type ConsolePrompt struct {
	in  io.Reader
	out io.Writer
}

// NewConsolePrompt returns a prompt reading from in and writing to out.
// Nil values mean stdin and stderr.
func NewConsolePrompt(in io.Reader, out io.Writer) *ConsolePrompt {
	if in == nil {
		in = os.Stdin
	}

	if out == nil {
		out = os.Stderr
	}

	return &ConsolePrompt{in: in, out: out}
}

type lineResult struct {
	line string
	err  error
}

// PromptCode implements CodePrompt. The read happens on a goroutine so that
// ctx cancellation (Ctrl-C) returns immediately; the goroutine is abandoned
// with the process.
func (p *ConsolePrompt) PromptCode(ctx context.Context, authURL string) (string, error) {
	fmt.Fprintf(p.out, "Authorize this app by visiting this url:\n%s\n\n", authURL)
	fmt.Fprint(p.out, "Enter the code from that page here (or paste the full redirect URL): ")

	resultCh := make(chan lineResult, 1)

	go func() {
		line, err := bufio.NewReader(p.in).ReadString('\n')
		if errors.Is(err, io.EOF) && line != "" {
			err = nil
		}

		resultCh <- lineResult{line: line, err: err}
	}()

	select {
	case r := <-resultCh:
		if r.err != nil {
			return "", r.err
		}

		return strings.TrimSpace(r.line), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// ExtractCode accepts either a bare authorization code or the full URL the
// browser was redirected to, and returns the code. For a URL, an error
// parameter is reported and a state other than wantState is rejected.
func ExtractCode(input, wantState string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrNoCode
	}

	if !strings.Contains(input, "code=") && !strings.Contains(input, "error=") {
		return input, nil
	}

	query := input
	if i := strings.IndexByte(input, '?'); i >= 0 {
		query = input[i+1:]
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return "", fmt.Errorf("auth: parsing redirect URL: %w", err)
	}

	if errParam := values.Get("error"); errParam != "" {
		return "", fmt.Errorf("auth: authorization failed: %s", errParam)
	}

	if state := values.Get("state"); state != "" && state != wantState {
		return "", ErrStateMismatch
	}

	code := values.Get("code")
	if code == "" {
		return "", ErrNoCode
	}

	return code, nil
}
