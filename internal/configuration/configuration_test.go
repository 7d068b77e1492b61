package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soc-toolbox/esmbridge/internal/model"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
log_level: debug
monitor_interval: 1m
esm:
  endpoint: https://esm.example.com:8443
  login_endpoint: https://esm.example.com:8443/core-service/rest/LoginService/login
  username: operator
  password: hunter2
  batch_size: 25
`)

	config, err := Load(&model.Args{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, time.Minute, config.MonitorInterval)
	assert.Equal(t, "https://esm.example.com:8443", config.Esm.Endpoint)
	assert.Equal(t, "operator", config.Esm.Username)
	assert.Equal(t, 25, config.Esm.BatchSize)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfigFile(t, `
esm:
  endpoint: https://esm.example.com:8443
`)

	config, err := Load(&model.Args{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, defaultMonitorInterval, config.MonitorInterval)
}

func TestLoadMissingEndpoint(t *testing.T) {
	path := writeConfigFile(t, `
log_level: debug
`)

	_, err := Load(&model.Args{ConfigFile: path})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConfig)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(&model.Args{ConfigFile: "/nonexistent/config.yaml"})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConfig)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ESMBRIDGE_ESM_ENDPOINT", "https://env.example.com:8443")
	t.Setenv("ESMBRIDGE_ESM_STATIC_TOKEN", "env-token")
	t.Setenv("ESMBRIDGE_LOG_LEVEL", "trace")

	config, err := Load(&model.Args{})
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com:8443", config.Esm.Endpoint)
	assert.Equal(t, "env-token", config.Esm.StaticToken)
	assert.Equal(t, "trace", config.LogLevel)
}

func TestLoadArgsOverride(t *testing.T) {
	path := writeConfigFile(t, `
log_level: info
esm:
  endpoint: https://esm.example.com:8443
`)

	config, err := Load(&model.Args{ConfigFile: path, LogLevel: "debug", EnableProfiling: true})
	require.NoError(t, err)

	assert.Equal(t, "debug", config.LogLevel)
	assert.True(t, config.EnableProfiling)
}

func TestRedacted(t *testing.T) {
	config := New()
	config.Esm.Endpoint = "https://esm.example.com:8443"
	config.Esm.Password = "hunter2"
	config.Esm.StaticToken = "tok"
	config.Esm.OidcClientSecret = "secret"

	clone, err := config.Redacted()
	require.NoError(t, err)

	assert.Equal(t, redacted, clone.Esm.Password)
	assert.Equal(t, redacted, clone.Esm.StaticToken)
	assert.Equal(t, redacted, clone.Esm.OidcClientSecret)

	// the original stays intact
	assert.Equal(t, "hunter2", config.Esm.Password)
	assert.Equal(t, "tok", config.Esm.StaticToken)
}

func TestRedactedEmptySecrets(t *testing.T) {
	config := New()
	config.Esm.Endpoint = "https://esm.example.com:8443"

	clone, err := config.Redacted()
	require.NoError(t, err)

	assert.Empty(t, clone.Esm.Password)
	assert.Empty(t, clone.Esm.StaticToken)
}
