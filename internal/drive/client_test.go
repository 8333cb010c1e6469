package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestClient starts a Drive stand-in serving mux under /drive/v3/ and
// returns a Client pointed at it.
func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := New(context.Background(), srv.Client(), Options{
		Endpoint:  srv.URL + "/drive/v3/",
		UserAgent: "looker-cli/test",
		Logger:    slog.Default(),
	})
	require.NoError(t, err)

	return c
}

// writeJSON writes v as a 200 JSON response.
func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// writeAPIError writes a Drive-style error body.
func writeAPIError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprintf(w, `{"error": {"code": %d, "message": %q, "errors": [{"message": %q, "reason": "test"}]}}`,
		code, message, message)
}
