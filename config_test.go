package teapot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSettingsDefaults(t *testing.T) {
	t.Setenv(MongoURLEnvVar, "")
	t.Setenv(ListenAddrEnvVar, "")

	settings, err := NewSettings("")
	require.NoError(t, err)

	assert.Equal(t, DefaultDatabaseURL, settings.Database.Url)
	assert.Equal(t, DefaultDatabaseName, settings.Database.DB)
	assert.Equal(t, DefaultTeapotCollection, settings.Database.Collection)
	assert.Equal(t, DefaultDatabaseConnectTimeout, settings.Database.ConnectTimeoutSecs)
	assert.Equal(t, DefaultListenAddr, settings.Api.ListenAddr)
	assert.Equal(t, DefaultLogLevel, settings.LogLevel)
}

func TestNewSettingsFromFile(t *testing.T) {
	t.Setenv(MongoURLEnvVar, "")
	t.Setenv(ListenAddrEnvVar, "")

	fn := filepath.Join(t.TempDir(), "teapot.yml")
	conf := `
database:
  url: mongodb://db.example.com:27017
  db: kitchen
api:
  listen_addr: 0.0.0.0:9090
log_level: debug
`
	require.NoError(t, os.WriteFile(fn, []byte(conf), 0600))

	settings, err := NewSettings(fn)
	require.NoError(t, err)
	assert.Equal(t, "mongodb://db.example.com:27017", settings.Database.Url)
	assert.Equal(t, "kitchen", settings.Database.DB)
	assert.Equal(t, DefaultTeapotCollection, settings.Database.Collection)
	assert.Equal(t, "0.0.0.0:9090", settings.Api.ListenAddr)
	assert.Equal(t, "debug", settings.LogLevel)
}

func TestNewSettingsEnvironmentOverrides(t *testing.T) {
	t.Setenv(MongoURLEnvVar, "mongodb://override:27017")
	t.Setenv(ListenAddrEnvVar, "127.0.0.1:8123")

	settings, err := NewSettings("")
	require.NoError(t, err)
	assert.Equal(t, "mongodb://override:27017", settings.Database.Url)
	assert.Equal(t, "127.0.0.1:8123", settings.Api.ListenAddr)
}

func TestNewSettingsMissingFile(t *testing.T) {
	_, err := NewSettings(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestSettingsValidation(t *testing.T) {
	for name, settings := range map[string]Settings{
		"BadListenAddr":   {Api: APIConfig{ListenAddr: "no-port"}},
		"BadLogLevel":     {LogLevel: "chatty"},
		"NegativeTimeout": {Database: DBSettings{ConnectTimeoutSecs: -1}},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, settings.ValidateAndDefault())
		})
	}

	t.Run("ReportsEverySection", func(t *testing.T) {
		settings := Settings{
			Api:      APIConfig{ListenAddr: "no-port"},
			Database: DBSettings{ConnectTimeoutSecs: -1},
		}
		err := settings.ValidateAndDefault()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api")
		assert.Contains(t, err.Error(), "database")
	})
}
