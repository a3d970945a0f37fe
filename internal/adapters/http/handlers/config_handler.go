package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GlobalName - имя глобального объекта, в который клиент получает
// runtime-конфигурацию. Захардкожено с обеих сторон: бандлы фронтенда
// читают window.__FOODY__ до своего кода.
const GlobalName = "__FOODY__"

// ConfigHandler отдаёт исполняемый сниппет с runtime-конфигурацией.
//
// Одна и та же статическая сборка фронтенда целится в разные деплои
// бекенда без пересборки: адрес приезжает через /config.js, который
// браузер исполняет раньше клиентского кода.
type ConfigHandler struct {
	backendURL string
}

// NewConfigHandler создаёт ConfigHandler c адресом бекенда.
func NewConfigHandler(backendURL string) *ConfigHandler {
	return &ConfigHandler{backendURL: backendURL}
}

// clientConfig - то, что видит фронтенд. Больше никакая конфигурация
// сюда не пробрасывается.
type clientConfig struct {
	FoodyAPI string `json:"FOODY_API"`
}

// ConfigJS отдаёт сниппет вида window.__FOODY__={"FOODY_API":"..."};
// Content-Type обязан быть исполняемым script'ом, иначе браузер не
// выполнит его до остального клиентского кода.
func (h *ConfigHandler) ConfigJS(c *gin.Context) {
	cfg, err := json.Marshal(clientConfig{FoodyAPI: h.backendURL})
	if err != nil {
		c.String(http.StatusInternalServerError, "config marshal failed")
		return
	}
	script := fmt.Sprintf("window.%s=%s;", GlobalName, cfg)
	c.Data(http.StatusOK, "application/javascript; charset=utf-8", []byte(script))
}
