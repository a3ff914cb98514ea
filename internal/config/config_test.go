package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
api:
  base_url: "https://coach.example.com/api"
  token: "tok-123"
  timeout_seconds: 10
session:
  plan_id: "plan-42"
  sound_enabled: false
  compact: true
logging:
  level: "debug"
  json: true
server:
  host: "0.0.0.0"
  port: 9090
  db_path: "/var/lib/coachlix/plans.db"
  token: "server-secret"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "https://coach.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "tok-123", cfg.API.Token)
	assert.Equal(t, 10, cfg.API.TimeoutSeconds)
	assert.Equal(t, "plan-42", cfg.Session.PlanID)
	assert.False(t, cfg.Session.SoundEnabled)
	assert.True(t, cfg.Session.Compact)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.JSON)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
	assert.Equal(t, "server-secret", cfg.Server.Token)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
	assert.True(t, cfg.Session.SoundEnabled)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeTemp(t, "session:\n  plan_id: p1\n  sound_enabled: true\n"))
	require.NoError(t, err)

	assert.Equal(t, "p1", cfg.Session.PlanID)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("COACHLIX_API_BASE_URL", "http://10.0.0.5:8088/api")
	t.Setenv("COACHLIX_API_TOKEN", "env-token")
	t.Setenv("COACHLIX_PLAN_ID", "env-plan")
	t.Setenv("COACHLIX_SOUND", "true")
	t.Setenv("COACHLIX_LOG_LEVEL", "warn")
	t.Setenv("COACHLIX_SERVER_PORT", "7000")
	t.Setenv("COACHLIX_SERVER_DB", "/tmp/x.db")
	t.Setenv("COACHLIX_SERVER_TOKEN", "env-secret")

	cfg, err := Load(writeTemp(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:8088/api", cfg.API.BaseURL)
	assert.Equal(t, "env-token", cfg.API.Token)
	assert.Equal(t, "env-plan", cfg.Session.PlanID)
	assert.True(t, cfg.Session.SoundEnabled)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "/tmp/x.db", cfg.Server.DBPath)
	assert.Equal(t, "env-secret", cfg.Server.Token)
}

func TestEnvOverrideIgnoresGarbage(t *testing.T) {
	t.Setenv("COACHLIX_SOUND", "loud")
	t.Setenv("COACHLIX_SERVER_PORT", "eighty")

	cfg, err := Load(writeTemp(t, validYAML))
	require.NoError(t, err)
	assert.False(t, cfg.Session.SoundEnabled)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestValidation(t *testing.T) {
	cases := map[string]string{
		"bad url":     "api:\n  base_url: \"ftp://x\"\n",
		"bad level":   "logging:\n  level: chatty\n",
		"bad port":    "server:\n  port: 70000\n",
		"neg timeout": "api:\n  timeout_seconds: -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeTemp(t, body))
			assert.Error(t, err)
		})
	}
}

func TestInvalidYAML(t *testing.T) {
	_, err := Load(writeTemp(t, "api: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	assert.False(t, Exists(path))

	cfg := Default()
	cfg.API.Token = "saved"
	cfg.Session.PlanID = "plan-7"
	cfg.Session.SoundEnabled = false
	require.NoError(t, Save(path, cfg))
	assert.True(t, Exists(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "saved", got.API.Token)
	assert.Equal(t, "plan-7", got.Session.PlanID)
	assert.False(t, got.Session.SoundEnabled)
}

func TestSaveRejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = ""
	assert.Error(t, Save(filepath.Join(t.TempDir(), "c.yaml"), cfg))
}
