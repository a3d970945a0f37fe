package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/Haleralex/foodyhub/internal/adapters/http/middleware"
	"github.com/Haleralex/foodyhub/internal/assets"
)

// SPAHandler отдаёт статику под URL-префиксом с SPA-фоллбеком.
//
// Существующий файл отдаётся как есть; несуществующий путь под префиксом
// не 404, а entry-файл по политике assets.Root.Entry - это и позволяет
// клиентский роутинг. На один запрос всегда уходит ровно один файл,
// без редиректов.
type SPAHandler struct {
	root   *assets.Root
	prefix string
	logger *slog.Logger
}

// NewSPAHandler создаёт SPAHandler поверх выбранного asset root.
func NewSPAHandler(root *assets.Root, prefix string, logger *slog.Logger) *SPAHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SPAHandler{root: root, prefix: prefix, logger: logger}
}

// Serve обрабатывает любой GET/HEAD под префиксом.
//
// Ошибка чтения уже найденного файла - это серверная ошибка (её вернёт
// http.ServeFile), а не повод для фоллбека: фоллбек применяется только
// когда файла нет вовсе.
func (h *SPAHandler) Serve(c *gin.Context) {
	p := c.Request.URL.Path

	if file, ok := h.root.FilePath(p, h.prefix); ok {
		middleware.RecordStaticFile()
		c.File(file)
		return
	}

	entry := h.root.Entry(p, h.prefix)
	middleware.RecordStaticFallback()
	h.logger.Debug("spa fallback",
		slog.String("path", p),
		slog.String("entry", entry),
	)
	c.File(entry)
}
