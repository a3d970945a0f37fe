package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "foodyhub", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Address())
	assert.Equal(t, "/web", cfg.Web.Prefix)
	assert.Equal(t, []string{"web/dist", "web", "dist", "."}, cfg.Web.AssetCandidates)
	assert.Equal(t, DefaultBackendURL, cfg.API.BaseURL)
	assert.Equal(t, "X-Foody-Key", cfg.API.KeyHeader)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromEnv_LegacyEnvNames(t *testing.T) {
	// Имена без префикса, которые выставляет хостинг
	t.Setenv("PORT", "8080")
	t.Setenv("FOODY_API", "https://backend.example.com")
	t.Setenv("WEB_PREFIX", "/app")
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://backend.example.com", cfg.API.BaseURL)
	assert.Equal(t, "/app", cfg.Web.Prefix)
	assert.Equal(t, "production", cfg.App.Environment)
	assert.True(t, cfg.App.IsProduction())
}

func TestLoadFromEnv_PrefixedEnvWins(t *testing.T) {
	t.Setenv("FOODY_SERVER_PORT", "9000")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("ValidDefaults", func(t *testing.T) {
		assert.NoError(t, Development().Validate())
	})

	t.Run("BadPort", func(t *testing.T) {
		cfg := Development()
		cfg.Server.Port = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("MissingBackendURL", func(t *testing.T) {
		cfg := Development()
		cfg.API.BaseURL = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("PrefixMustStartWithSlash", func(t *testing.T) {
		cfg := Development()
		cfg.Web.Prefix = "web"
		assert.Error(t, cfg.Validate())
	})

	t.Run("NoAssetCandidates", func(t *testing.T) {
		cfg := Development()
		cfg.Web.AssetCandidates = nil
		assert.Error(t, cfg.Validate())
	})
}
