package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	f := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(f, []byte(content), 0o644))
	return f
}

func TestLoadConfig_Defaults(t *testing.T) {
	c, realpath, err := LoadConfig(writeConfig(t, "server:\n  http-port: \":9000\"\n"))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(realpath))
	assert.Equal(t, ":9000", c.Server.HttpPort)
	assert.Equal(t, "sqlite", c.Database.Type)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, 60*time.Second, c.GetContextTimeout())
	assert.Equal(t, 30*time.Minute, c.Database.GetConnMaxLifetime())

	s, err := c.GetReferenceSweep()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, s.Every)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DB_HOST", "db.internal")

	c, _, err := LoadConfig(writeConfig(t, "database:\n  type: sqlite\n"))
	require.NoError(t, err)
	assert.Equal(t, ":7000", c.Server.HttpPort)
	assert.Equal(t, "postgres", c.Database.Type)
	assert.Equal(t, "db.internal", c.Database.Host)

	dc := c.Database.DaoConfig("debug")
	assert.Equal(t, "postgres", dc.Type)
	assert.Equal(t, "debug", dc.RunMode)
	assert.Equal(t, 10*time.Minute, dc.ConnMaxIdleTime)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, _, err := LoadConfig(writeConfig(t, "database:\n  type: oracle\n"))
	assert.Error(t, err)

	_, _, err = LoadConfig(writeConfig(t, "app:\n  reference-sweep: soon\n"))
	assert.Error(t, err)

	_, _, err = LoadConfig(writeConfig(t, "app:\n  route-limits:\n    - path: notes\n      rate: 5\n"))
	assert.Error(t, err)

	_, _, err = LoadConfig(writeConfig(t, "app:\n  route-limits:\n    - path: /api/notes\n      rate: 0\n"))
	assert.Error(t, err)

	_, _, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetReferenceSweep(t *testing.T) {
	tests := []struct {
		value    string
		every    time.Duration
		cron     string
		disabled bool
		wantErr  bool
	}{
		{value: "0", disabled: true},
		{value: "off", disabled: true},
		{value: "30s", every: 30 * time.Second},
		{value: "1d", every: 24 * time.Hour},
		{value: "*/5 * * * *", cron: "*/5 * * * *"},
		{value: "@hourly", cron: "@hourly"},
		{value: "61 * * * *", wantErr: true},
	}
	for _, tt := range tests {
		c := &AppConfig{App: AppSettings{ReferenceSweep: tt.value}}
		s, err := c.GetReferenceSweep()
		if tt.wantErr {
			assert.Error(t, err, tt.value)
			continue
		}
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.every, s.Every, tt.value)
		assert.Equal(t, tt.cron, s.Cron, tt.value)
		assert.Equal(t, tt.disabled, s.Disabled(), tt.value)
	}
}
