package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnv = []string{
	"PORT", "ALLOWED_ORIGINS", "AI_PROVIDER", "AI_MODEL", "AI_BASE_URL", "AI_API_KEY",
	"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY",
	"FILE_STORE_DRIVER", "FILE_STORE_DATABASE_URL", "FILE_STORE_TTL",
	"CHROME_PATH", "LOG_LEVEL", "LOG_FORMAT", "BODY_LIMIT_MB",
}

// clearEnv blanks every variable Load reads; t.Setenv restores them.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnv {
		t.Setenv(k, "")
	}
}

func TestLoadDefaultsWithKeyFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.Origins())
	assert.Equal(t, ProviderOpenAI, cfg.AI.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, "sk-env", cfg.AI.APIKey)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, time.Hour, cfg.Store.TTL)
	assert.Equal(t, 200, cfg.JobPage.MinChars)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9000"
  allowed_origins: "https://a.example, https://b.example"
ai:
  provider: anthropic
  api_key: from-file
  timeout: 30s
store:
  ttl: 10m
log:
  format: json
`), 0o600))
	t.Setenv("ANTHROPIC_API_KEY", "from-env")
	t.Setenv("FILE_STORE_TTL", "2m")
	t.Setenv("PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.Origins())
	assert.Equal(t, ProviderAnthropic, cfg.AI.Provider)
	assert.Equal(t, "from-env", cfg.AI.APIKey)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.AI.Model)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 2*time.Minute, cfg.Store.TTL)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "missing key", env: map[string]string{}, wantErr: "api_key"},
		{name: "unknown provider", env: map[string]string{"AI_PROVIDER": "bard", "AI_API_KEY": "k"}, wantErr: "unknown ai.provider"},
		{name: "unknown driver", env: map[string]string{"OPENAI_API_KEY": "k", "FILE_STORE_DRIVER": "redis"}, wantErr: "unknown store.driver"},
		{name: "postgres without url", env: map[string]string{"OPENAI_API_KEY": "k", "FILE_STORE_DRIVER": "postgres"}, wantErr: "database_url"},
		{name: "bad ttl", env: map[string]string{"OPENAI_API_KEY": "k", "FILE_STORE_TTL": "soon"}, wantErr: "FILE_STORE_TTL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
