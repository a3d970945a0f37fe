package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(backendURL string) *httptest.ResponseRecorder {
		router := gin.New()
		router.GET("/config.js", NewConfigHandler(backendURL).ConfigJS)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/config.js", nil))
		return w
	}

	t.Run("EmitsExecutableSnippet", func(t *testing.T) {
		w := serve("https://backend.example.com")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/javascript; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, `window.__FOODY__={"FOODY_API":"https://backend.example.com"};`, w.Body.String())
	})

	t.Run("EscapesSpecialCharacters", func(t *testing.T) {
		// URL с кавычкой не должен ломать сниппет
		w := serve(`https://x.example.com/?q="v"`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `window.__FOODY__=`)
		assert.NotContains(t, w.Body.String(), `"q="v""`)
	})
}
