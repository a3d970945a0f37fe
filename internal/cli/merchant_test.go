package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haleralex/foodyhub/internal/domain"
	"github.com/Haleralex/foodyhub/internal/foodyapi"
	"github.com/Haleralex/foodyhub/internal/merchant"
)

// seedCredentials пишет пару в пользовательский конфиг, изолированный
// во временной директории через XDG_CONFIG_HOME.
func seedCredentials(t *testing.T, creds domain.Credentials) string {
	t.Helper()
	cfgDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgDir)

	path := filepath.Join(cfgDir, "foody", "credentials.json")
	require.NoError(t, merchant.NewFileStore(path).Save(creds))
	return path
}

func TestMerchantCreateExpiryFlags(t *testing.T) {
	t.Run("EodIsExclusiveWithIn", func(t *testing.T) {
		root := NewRootCommand("test")
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs([]string{
			"merchant", "create",
			"--title", "box", "--price", "5.00",
			"--eod", "22:00", "--in", "30",
		})

		err := root.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "none of the others can be")
	})

	t.Run("InvalidEodIsRejected", func(t *testing.T) {
		seedCredentials(t, domain.Credentials{RestaurantID: "42", APIKey: "secret-key"})

		root := NewRootCommand("test")
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs([]string{
			"merchant", "create",
			"--title", "box", "--price", "5.00",
			"--eod", "25:99",
		})

		err := root.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid --eod")
	})

	t.Run("EodSetsExpiryClock", func(t *testing.T) {
		seedCredentials(t, domain.Credentials{RestaurantID: "42", APIKey: "secret-key"})

		var got foodyapi.CreateOfferRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/v1/merchant/offers", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusCreated)
		}))
		defer srv.Close()

		root := NewRootCommand("test")
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs([]string{
			"merchant", "create", "--api", srv.URL,
			"--title", "box", "--price", "5.00",
			"--eod", "23:59",
		})

		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "offer created")
		require.NotNil(t, got.ExpiresAt)
		expires := got.ExpiresAt.Local()
		assert.Equal(t, 23, expires.Hour())
		assert.Equal(t, 59, expires.Minute())
	})
}

func TestMerchantStartupURL(t *testing.T) {
	t.Run("LogoutMarkerClearsCredentials", func(t *testing.T) {
		path := seedCredentials(t, domain.Credentials{RestaurantID: "42", APIKey: "secret-key"})

		root := NewRootCommand("test")
		var out, errOut bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&errOut)
		root.SetArgs([]string{
			"merchant", "whoami",
			"--startup-url", "https://foody.app/merchant/?logout=1",
		})

		require.NoError(t, root.Execute())
		assert.Contains(t, errOut.String(), "logged out by startup marker")
		assert.Contains(t, out.String(), "not logged in")

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("PlainURLKeepsSession", func(t *testing.T) {
		seedCredentials(t, domain.Credentials{RestaurantID: "42", APIKey: "secret-key"})

		root := NewRootCommand("test")
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs([]string{
			"merchant", "whoami",
			"--startup-url", "https://foody.app/merchant/",
		})

		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "restaurant 42")
	})
}
