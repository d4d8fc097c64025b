package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAirportsRefreshCmd(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testAirportsCSV))
	}))
	defer feed.Close()

	cachePath := filepath.Join(t.TempDir(), "airports.json")

	cmd := newAirportsRefreshCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"--airports-url", feed.URL,
		"--airports-cache", cachePath,
		"--airport-cache-backend", "file",
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
	})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Airport cache "+cachePath+" updated with 2 airports.\n", stdout.String())

	data, err := os.ReadFile(cachePath)
	require.NoError(t, err)

	var cached map[string]string
	require.NoError(t, json.Unmarshal(data, &cached))
	assert.Equal(t, "San Francisco International Airport, San Francisco, US", cached["SFO"])
	assert.Contains(t, cached, "LHR")
}

func TestAirportsRefreshCmd_FeedFailure(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer feed.Close()

	cachePath := filepath.Join(t.TempDir(), "airports.json")

	cmd := newAirportsRefreshCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"--airports-url", feed.URL,
		"--airports-cache", cachePath,
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to refresh airport directory")

	_, statErr := os.Stat(cachePath)
	assert.True(t, os.IsNotExist(statErr), "cache must not be written on a failed refresh")
}

func TestAirportsCmdHasRefresh(t *testing.T) {
	cmd := newAirportsCmd()
	assert.Equal(t, "airports", cmd.Use)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Use)
	}
	assert.Equal(t, []string{"refresh"}, names)
}
