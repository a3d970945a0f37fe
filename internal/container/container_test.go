package container

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haleralex/foodyhub/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Test()

	// Валидная сборка фронтенда во временном каталоге
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html></html>"), 0o644))
	cfg.Web.AssetCandidates = []string{dir}
	return cfg
}

func TestContainer_InitServer(t *testing.T) {
	t.Run("BuildsServerFromResolvedAssets", func(t *testing.T) {
		c := New(testConfig(t))

		require.NoError(t, c.InitServer())
		assert.NotNil(t, c.Server())
		assert.NotNil(t, c.AssetRoot())
	})

	t.Run("FailsWithoutAssets", func(t *testing.T) {
		cfg := config.Test()
		cfg.Web.AssetCandidates = []string{filepath.Join(t.TempDir(), "missing")}
		c := New(cfg)

		err := c.InitServer()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing", "error must list the tried candidates")
	})
}

func TestContainer_Clients(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.API.BaseURL = srv.URL
	c := New(cfg)

	t.Run("APIClientIsSingleton", func(t *testing.T) {
		assert.Same(t, c.APIClient(), c.APIClient())
		assert.Equal(t, srv.URL, c.APIClient().BaseURL())
	})

	t.Run("BuyerControllerWorks", func(t *testing.T) {
		res := c.Buyer().Load(context.Background())
		assert.False(t, res.Degraded)
	})

	t.Run("MerchantControllerIsSingleton", func(t *testing.T) {
		m1, err := c.Merchant()
		require.NoError(t, err)
		m2, err := c.Merchant()
		require.NoError(t, err)
		assert.Same(t, m1, m2)
	})
}
