// Package container - Dependency Injection container for the application.
//
// Container управляет жизненным циклом зависимостей обоих бинарников:
// веб-сервер статики (cmd/web) и CLI-клиент (cmd/foodyctl) собираются
// из одних и тех же частей.
//
// Pattern: Composition Root
// - Все зависимости собираются в одном месте
// - Легко тестировать
// - Легко заменять реализации
package container

import (
	"fmt"
	"log/slog"
	"net/http"

	adapterhttp "github.com/Haleralex/foodyhub/internal/adapters/http"
	"github.com/Haleralex/foodyhub/internal/assets"
	"github.com/Haleralex/foodyhub/internal/buyer"
	"github.com/Haleralex/foodyhub/internal/config"
	"github.com/Haleralex/foodyhub/internal/foodyapi"
	"github.com/Haleralex/foodyhub/internal/merchant"
	"github.com/Haleralex/foodyhub/internal/pkg/logger"
)

// Container - DI контейнер приложения.
type Container struct {
	config *config.Config
	logger *slog.Logger

	// Состояние сервера
	root       *assets.Root
	httpServer *adapterhttp.Server

	// Состояние клиентов
	apiClient   *foodyapi.Client
	credStore   merchant.CredentialStore
	buyerCtrl   *buyer.Controller
	merchantCtl *merchant.Controller
}

// New создаёт контейнер с заданной конфигурацией.
func New(cfg *config.Config) *Container {
	c := &Container{config: cfg}
	c.logger = logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	slog.SetDefault(c.logger)
	return c
}

// Logger возвращает сконфигурированный логгер.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

// Config возвращает конфигурацию.
func (c *Container) Config() *config.Config {
	return c.config
}

// ============================================
// Web Server
// ============================================

// InitServer резолвит asset root и собирает HTTP сервер.
// Ошибка резолва фатальна: без статики серверу нечего отдавать.
func (c *Container) InitServer() error {
	root, err := assets.Resolve(c.config.Web.AssetCandidates)
	if err != nil {
		return fmt.Errorf("resolve asset root: %w", err)
	}
	c.root = root
	c.logger.Info("asset root resolved", slog.String("base", root.Base()))

	router := adapterhttp.NewRouter(&adapterhttp.RouterConfig{
		Logger:         c.logger,
		Root:           root,
		Prefix:         c.config.Web.Prefix,
		BackendURL:     c.config.API.BaseURL,
		Version:        c.config.App.Version,
		Environment:    c.config.App.Environment,
		AllowedOrigins: c.config.CORS.AllowedOrigins,
	})

	c.httpServer = adapterhttp.NewServer(&adapterhttp.ServerConfig{
		Addr:            c.config.Server.Address(),
		ReadTimeout:     c.config.Server.ReadTimeout,
		WriteTimeout:    c.config.Server.WriteTimeout,
		IdleTimeout:     c.config.Server.IdleTimeout,
		ShutdownTimeout: c.config.Server.ShutdownTimeout,
		Logger:          c.logger,
	}, router)

	return nil
}

// Server возвращает собранный HTTP сервер.
func (c *Container) Server() *adapterhttp.Server {
	return c.httpServer
}

// AssetRoot возвращает выбранный каталог статики.
func (c *Container) AssetRoot() *assets.Root {
	return c.root
}

// ============================================
// API Clients
// ============================================

// APIClient возвращает (лениво создавая) клиент бекенда.
func (c *Container) APIClient() *foodyapi.Client {
	if c.apiClient == nil {
		hc := http.DefaultClient
		if c.config.API.Timeout > 0 {
			hc = &http.Client{Timeout: c.config.API.Timeout}
		}
		c.apiClient = foodyapi.NewClient(
			c.config.API.BaseURL,
			foodyapi.WithKeyHeader(c.config.API.KeyHeader),
			foodyapi.WithHTTPClient(hc),
			foodyapi.WithLogger(c.logger),
		)
	}
	return c.apiClient
}

// CredentialStore возвращает файловый стор credential pair.
func (c *Container) CredentialStore() (merchant.CredentialStore, error) {
	if c.credStore == nil {
		path, err := merchant.DefaultCredentialsPath()
		if err != nil {
			return nil, err
		}
		c.credStore = merchant.NewFileStore(path)
	}
	return c.credStore, nil
}

// Buyer возвращает контроллер витрины.
func (c *Container) Buyer() *buyer.Controller {
	if c.buyerCtrl == nil {
		c.buyerCtrl = buyer.NewController(c.APIClient(), c.logger)
	}
	return c.buyerCtrl
}

// Merchant возвращает контроллер дашборда.
func (c *Container) Merchant() (*merchant.Controller, error) {
	if c.merchantCtl == nil {
		store, err := c.CredentialStore()
		if err != nil {
			return nil, err
		}
		c.merchantCtl = merchant.NewController(c.APIClient(), store, c.logger)
	}
	return c.merchantCtl, nil
}
