package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setStore(t *testing.T, body string) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rest/v1/profiles" {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	t.Setenv("SUPABASE_URL", server.URL)
	t.Setenv("SUPABASE_ANON_KEY", "anon_test")
}

func TestRun_Status(t *testing.T) {
	setStore(t, `[]`)
	t.Setenv("STATUS_ALIASES", "LISTO=Ready for pickup")

	tests := []struct {
		status  string
		index   int
		percent int
	}{
		{status: "Ready for pickup", index: 3, percent: 75},
		{status: "LISTO", index: 3, percent: 75},
		{status: "Unknown Status XYZ", index: 0, percent: 0},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run([]string{"--env-dir", t.TempDir(), "--status", tt.status}, &stdout, &stderr)
			require.NoError(t, err)

			var out struct {
				StageIndex int `json:"stage_index"`
				Percent    int `json:"percent"`
			}
			require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
			assert.Equal(t, tt.index, out.StageIndex)
			assert.Equal(t, tt.percent, out.Percent)
		})
	}
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"--help"}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "--query")
}

func TestRun_Lookup(t *testing.T) {
	setStore(t, `[{"id": 12345, "status": "Diagnosis", "user_id": "owner-1"}]`)

	var stdout, stderr bytes.Buffer
	err := run([]string{"--env-dir", t.TempDir(), "12345"}, &stdout, &stderr)
	require.NoError(t, err)

	var out struct {
		QueryKind string `json:"query_kind"`
		Orders    []struct {
			Order struct {
				ID string `json:"order_id"`
			} `json:"order"`
			Progress struct {
				Percent int `json:"percent"`
			} `json:"progress"`
		} `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Equal(t, "EXACT_ID", out.QueryKind)
	require.Len(t, out.Orders, 1)
	assert.Equal(t, "12345", out.Orders[0].Order.ID)
	assert.Equal(t, 25, out.Orders[0].Progress.Percent)
}

func TestRun_NotFound(t *testing.T) {
	setStore(t, `[]`)

	var stdout, stderr bytes.Buffer
	err := run([]string{"--env-dir", t.TempDir(), "-q", "999"}, &stdout, &stderr)
	require.Error(t, err)

	coder, ok := err.(interface{ ExitCode() int })
	require.True(t, ok)
	assert.Equal(t, exitNotFound, coder.ExitCode())
	assert.Empty(t, stdout.String())
}

func TestRun_MissingConfig(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")

	var stdout, stderr bytes.Buffer
	err := run([]string{"--env-dir", t.TempDir(), "12345"}, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_URL")
}
