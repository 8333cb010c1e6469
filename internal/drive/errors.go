package drive

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Sentinel errors for HTTP status code classification.
// Use errors.Is(err, drive.ErrNotFound) to check.
var (
	ErrBadRequest   = errors.New("drive: bad request")
	ErrUnauthorized = errors.New("drive: unauthorized")
	ErrForbidden    = errors.New("drive: forbidden")
	ErrNotFound     = errors.New("drive: not found")
	ErrThrottled    = errors.New("drive: throttled")
	ErrServerError  = errors.New("drive: server error")
)

// Error wraps a Drive API failure with the operation that failed, the HTTP
// status and the API message. Both the sentinel and the underlying
// *googleapi.Error are reachable through errors.Is / errors.As.
type Error struct {
	Op         string
	StatusCode int
	Message    string
	Err        error // sentinel, nil for unclassified codes

	cause *googleapi.Error
}

func (e *Error) Error() string {
	return fmt.Sprintf("drive: %s: HTTP %d: %s", e.Op, e.StatusCode, e.Message)
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	if e.cause != nil {
		errs = append(errs, e.cause)
	}

	return errs
}

// classify wraps err for operation op. API errors become *Error; transport
// and context errors are wrapped unchanged.
func classify(op string, err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("drive: %s: %w", op, err)
	}

	msg := apiErr.Message
	if msg == "" {
		msg = http.StatusText(apiErr.Code)
	}

	return &Error{
		Op:         op,
		StatusCode: apiErr.Code,
		Message:    msg,
		Err:        classifyStatus(apiErr.Code),
		cause:      apiErr,
	}
}

// classifyStatus maps an HTTP status code to a sentinel error.
// Returns nil for codes without a sentinel.
func classifyStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrThrottled
	default:
		if code >= http.StatusInternalServerError {
			return ErrServerError
		}

		return nil
	}
}
