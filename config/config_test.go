package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/FrenchMajesty/turbo-translate/clients/microsoft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ProviderMicrosoft, cfg.Provider)
	assert.Equal(t, microsoft.DefaultEndpoint, cfg.Microsoft.Endpoint)
	assert.Equal(t, "en", cfg.Microsoft.From)
	assert.Equal(t, "ar", cfg.Microsoft.To)
	assert.Equal(t, 6, cfg.Retry.Count)
	assert.Equal(t, 500*time.Millisecond, cfg.Retry.BaseDelay())
	assert.Equal(t, time.Duration(0), cfg.Retry.MaxDelay())
	assert.False(t, cfg.Quota.Enabled)
	assert.Empty(t, cfg.Metrics.Listen)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	path := writeConfig(t, `
provider: microsoft
microsoft:
  api_key: file-key
  to: fr
retry:
  count: 3
  base_delay_ms: 250
  max_delay_ms: 2000
quota:
  enabled: true
  requests_per_minute: 60
  units_per_minute: 10000
logging:
  output: noop
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.Microsoft.APIKey)
	assert.Equal(t, "en", cfg.Microsoft.From, "unset fields keep their defaults")
	assert.Equal(t, "fr", cfg.Microsoft.To)
	assert.Equal(t, 3, cfg.Retry.Count)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.BaseDelay())
	assert.Equal(t, 2*time.Second, cfg.Retry.MaxDelay())
	assert.True(t, cfg.Quota.Enabled)
	assert.Equal(t, 60, cfg.Quota.RequestsPerMinute)
	assert.Equal(t, "noop", cfg.Logging.Output)
}

func TestLoad_EnvKeyOverridesSelectedProvider(t *testing.T) {
	t.Setenv(APIKeyEnv, "env-key")

	path := writeConfig(t, `
provider: openai
openai:
  api_key: file-key
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.OpenAI.APIKey)
	assert.Equal(t, "", cfg.Microsoft.APIKey)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "provider: [unterminated"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"unknown provider":     func(c *Config) { c.Provider = "deepl" },
		"negative retries":     func(c *Config) { c.Retry.Count = -1 },
		"negative delay":       func(c *Config) { c.Retry.BaseDelayMS = -5 },
		"missing endpoint":     func(c *Config) { c.Microsoft.Endpoint = "" },
		"missing language":     func(c *Config) { c.Microsoft.To = "" },
		"file without path":    func(c *Config) { c.Logging.Output = "file" },
		"unknown log output":   func(c *Config) { c.Logging.Output = "syslog" },
		"negative quota":       func(c *Config) { c.Quota = QuotaConfig{Enabled: true, UnitsPerMinute: -1} },
		"openai missing model": func(c *Config) { c.Provider = ProviderOpenAI; c.OpenAI.Model = "" },
		"metrics without path": func(c *Config) { c.Metrics = MetricsConfig{Listen: ":9090"} },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestHTTPTimeout_FollowsProvider(t *testing.T) {
	cfg := Default()
	cfg.Microsoft.Timeout = 5
	cfg.OpenAI.Timeout = 90

	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout())

	cfg.Provider = ProviderOpenAI
	assert.Equal(t, 90*time.Second, cfg.HTTPTimeout())
}
