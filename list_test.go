package main

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonimelisma/looker-cli/internal/drive"
)

func TestList_NoReports_PrintsGuidance(t *testing.T) {
	setupEnv(t)
	useService(t, &fakeService{})

	out, _, err := runCLI(t, "", "list")
	require.NoError(t, err)

	assert.Contains(t, out, "No Looker Studio reports found.")

	for _, kw := range []string{`"looker"`, `"data studio"`, `"dashboard"`, `"report"`} {
		assert.Contains(t, out, kw)
	}

	assert.NotContains(t, out, "Found")
}

func TestList_PrintsTableAndDetails(t *testing.T) {
	setupEnv(t)

	modified := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	useService(t, &fakeService{reports: []drive.Report{
		{
			ID:           "id-long",
			Name:         "An extremely long Looker dashboard title for sales",
			ModifiedTime: modified,
			Size:         1536,
			Owners:       []string{"Ada", "bob@example.com"},
			WebViewLink:  "https://lookerstudio.google.com/id-long",
		},
		{ID: "id-short", Name: "KPI report"},
	}})

	out, stderr, err := runCLI(t, "", "list")
	require.NoError(t, err)

	assert.Contains(t, stderr, "Listing Looker Studio reports")
	assert.Contains(t, out, "Found 2 report(s):")
	assert.Contains(t, out, "An extremely long Looker da...")
	assert.Contains(t, out, "id-long")
	assert.Contains(t, out, "id-short")

	assert.Contains(t, out, "1. An extremely long Looker dashboard title for sales")
	assert.Contains(t, out, "1,536 bytes")
	assert.Contains(t, out, "Ada, bob@example.com")
	assert.Contains(t, out, "https://lookerstudio.google.com/id-long")
	assert.Contains(t, out, "2. KPI report")
	assert.Contains(t, out, "looker-cli export --id <FILE_ID> --format pdf")
}

func TestList_QuietSuppressesProgress(t *testing.T) {
	setupEnv(t)
	useService(t, &fakeService{})

	_, stderr, err := runCLI(t, "", "--quiet", "list")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestList_JSON(t *testing.T) {
	setupEnv(t)
	useService(t, &fakeService{reports: []drive.Report{
		{ID: "a", Name: "Looker A", Owners: []string{"Ada"}},
	}})

	out, _, err := runCLI(t, "", "--json", "list")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0]["id"])
	assert.Equal(t, "Looker A", got[0]["name"])
}

func TestList_JSONEmptyIsArray(t *testing.T) {
	setupEnv(t)
	useService(t, &fakeService{})

	out, _, err := runCLI(t, "", "--json", "list")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestList_Error(t *testing.T) {
	setupEnv(t)
	useService(t, &fakeService{listErr: drive.ErrForbidden})

	_, _, err := runCLI(t, "", "list")
	require.Error(t, err)
	assert.True(t, errors.Is(err, drive.ErrForbidden))
	assert.Contains(t, err.Error(), "listing reports")
}

func TestList_RejectsArgs(t *testing.T) {
	setupEnv(t)
	calls := useService(t, &fakeService{})

	_, _, err := runCLI(t, "", "list", "extra")
	require.Error(t, err)
	assert.Equal(t, 0, *calls)
}
