// Package handlers - HTTP handlers веб-сервера.
//
// Сервер отдаёт только статику и два служебных endpoint'а; вся логика
// маркетплейса живёт на внешнем бекенде, сюда она не протекает.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler обрабатывает health check запросы.
type HealthHandler struct {
	base      string
	version   string
	startTime time.Time
}

// NewHealthHandler создаёт HealthHandler.
// base - выбранный asset root, попадает в ответ как диагностика.
func NewHealthHandler(base, version string) *HealthHandler {
	return &HealthHandler{
		base:      base,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthResponse - ответ health check.
//
// ok и base - контракт, на который завязан мониторинг деплоя;
// version и uptime - дополнительная диагностика.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Base    string `json:"base"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// Health возвращает фиксированный успешный ответ с asset root.
// Endpoint не аутентифицируется - в ответе нет ничего чувствительного.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		OK:      true,
		Base:    h.base,
		Version: h.version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	})
}
