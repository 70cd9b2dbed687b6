package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
env: "dev"
http_server:
  address: "localhost:9000"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "localhost:9000", cfg.HTTPServer.Addr)
	assert.Equal(t, "storage/storage.db", cfg.StoragePath)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "localhost:8080", cfg.Web.Addr)
	assert.Equal(t, "http://localhost:8082", cfg.Web.APIBaseURL)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
env: "prod"
storage_path: "/var/lib/students.db"
storage:
  driver: "memory"
http_server:
  address: ":8082"
web:
  address: ":8080"
  api_base_url: "http://records:8082"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "/var/lib/students.db", cfg.StoragePath)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, ":8080", cfg.Web.Addr)
	assert.Equal(t, "http://records:8082", cfg.Web.APIBaseURL)
}

func TestLoad_WebOnlyConfig(t *testing.T) {
	unsetEnv(t, "HTTP_SERVER_ADDR")
	path := writeConfig(t, `
env: "dev"
web:
  address: ":8080"
  api_base_url: "http://records:8082"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Web.Addr)
	assert.Equal(t, "localhost:8082", cfg.HTTPServer.Addr)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
env: "dev"
http_server:
  address: "localhost:9000"
`)
	t.Setenv("API_BASE_URL", "http://elsewhere:1234")
	t.Setenv("ENV", "staging")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, "http://elsewhere:1234", cfg.Web.APIBaseURL)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("missing required", func(t *testing.T) {
		unsetEnv(t, "ENV")
		path := writeConfig(t, `
http_server:
  address: "localhost:9000"
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		path := writeConfig(t, `
env: "dev"
storage:
  driver: "mongo"
http_server:
  address: "localhost:9000"
`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "unknown storage driver")
	})

	t.Run("postgres without url", func(t *testing.T) {
		unsetEnv(t, "DATABASE_URL")
		path := writeConfig(t, `
env: "dev"
storage:
  driver: "postgres"
http_server:
  address: "localhost:9000"
`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "postgres_url")
	})
}
