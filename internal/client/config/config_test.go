package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:3000", c.ServerURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 5*time.Second, c.OnlineCheckInterval)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, `{"server_url":"https://file:1","request_timeout":"3s","online_check_interval":"30s"}`)

	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "defaults only",
			args: nil,
			want: Config{ServerURL: "http://127.0.0.1:3000", RequestTimeout: 10 * time.Second, OnlineCheckInterval: 5 * time.Second},
		},
		{
			name: "json file",
			args: []string{"-c", path},
			want: Config{ServerURL: "https://file:1", RequestTimeout: 3 * time.Second, OnlineCheckInterval: 30 * time.Second},
		},
		{
			name: "flags override json",
			args: []string{"-config", path, "-a", "https://flag:2", "-i", "7"},
			want: Config{ServerURL: "https://flag:2", RequestTimeout: 3 * time.Second, OnlineCheckInterval: 7 * time.Second},
		},
		{
			name: "unknown flags ignored",
			args: []string{"-x", "1", "-a=https://flag:3"},
			want: Config{ServerURL: "https://flag:3", RequestTimeout: 10 * time.Second, OnlineCheckInterval: 5 * time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadConfig(tt.args)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, *got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadConfig_PartialJSONKeepsDefaults(t *testing.T) {
	path := writeTempJSON(t, `{"server_url":"https://only-url"}`)

	got, err := LoadConfig([]string{"-c", path})
	require.NoError(t, err)

	assert.Equal(t, "https://only-url", got.ServerURL)
	assert.Equal(t, 10*time.Second, got.RequestTimeout)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig([]string{"-c", filepath.Join(t.TempDir(), "nope.json")})
		require.Error(t, err)
	})

	t.Run("bad json", func(t *testing.T) {
		_, err := LoadConfig([]string{"-c", writeTempJSON(t, `{`)})
		require.Error(t, err)
	})

	t.Run("bad flag value", func(t *testing.T) {
		_, err := LoadConfig([]string{"-i", "soon"})
		require.Error(t, err)
	})

	t.Run("empty url", func(t *testing.T) {
		_, err := LoadConfig([]string{"-a="})
		require.Error(t, err)
	})

	t.Run("zero interval", func(t *testing.T) {
		_, err := LoadConfig([]string{"-i", "0"})
		require.Error(t, err)
	})
}
