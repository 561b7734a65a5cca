package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--host", srv.URL}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPlayersCommand(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	out, err := runCLI(t, srv, "players", "7")
	require.NoError(t, err)
	assert.Equal(t, "/api/tournaments/7/players", gotPath)
	assert.Contains(t, out, "Status Code: 200")
	assert.Contains(t, out, "[]")
}

func TestTeamsAndAwardsCommands(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := runCLI(t, srv, "teams", "7")
	require.NoError(t, err)
	assert.Equal(t, "/api/tournaments/7/teams", gotPath)

	_, err = runCLI(t, srv, "awards", "3")
	require.NoError(t, err)
	assert.Equal(t, "/api/tournaments/3/awards", gotPath)
}

func TestPlayersCommand_RejectsNonIntegerID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	}))
	defer srv.Close()

	_, err := runCLI(t, srv, "players", "seven")
	assert.Error(t, err)
}

func TestTournamentsCommand(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[{"tournamentId":1}]`))
	}))
	defer srv.Close()

	out, err := runCLI(t, srv, "tournaments")
	require.NoError(t, err)
	assert.Equal(t, "/api/tournaments", gotPath)
	assert.Contains(t, out, `"tournamentId":1`)
}
