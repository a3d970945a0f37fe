// Package config - Application configuration management.
//
// Использует Viper для:
// - Загрузки из YAML файлов
// - Переменных окружения
// - Значений по умолчанию
//
// Порядок приоритета (от высшего к низшему):
// 1. Environment variables
// 2. Config file
// 3. Default values
//
// Легаси-имена PORT и FOODY_API поддерживаются отдельным BindEnv,
// потому что так сконфигурированы существующие деплои.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBackendURL - продовый бекенд, если FOODY_API не задан.
const DefaultBackendURL = "https://foodyback-production.up.railway.app"

// ============================================
// Main Configuration
// ============================================

// Config - главная структура конфигурации приложения.
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	Web    WebConfig    `mapstructure:"web"`
	API    APIConfig    `mapstructure:"api"`
	CORS   CORSConfig   `mapstructure:"cors"`
	Log    LogConfig    `mapstructure:"log"`
}

// AppConfig - конфигурация приложения.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"` // development, staging, production
}

// IsProduction возвращает true если окружение production.
func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

// ============================================
// Server Configuration
// ============================================

// ServerConfig - конфигурация HTTP сервера.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Address возвращает полный адрес сервера.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ============================================
// Web Configuration
// ============================================

// WebConfig - раздача статики мини-аппа.
//
// AssetCandidates перебираются в заданном порядке; первый каталог,
// где есть entry-файл, становится asset root на всё время работы
// процесса. Порядок фиксированный и не зависит от файловой системы.
type WebConfig struct {
	// Prefix - URL префикс, под которым монтируется статика (e.g. "/web")
	Prefix string `mapstructure:"prefix"`
	// AssetCandidates - каталоги-кандидаты с собранным фронтендом
	AssetCandidates []string `mapstructure:"asset_candidates"`
}

// ============================================
// Backend API Configuration
// ============================================

// APIConfig - адрес внешнего FOODY бекенда.
//
// Сервер сам на бекенд не ходит - он только пробрасывает BaseURL
// клиенту через /config.js. CLI использует тот же адрес напрямую.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// Key header, которым merchant-запросы авторизуются на бекенде
	KeyHeader string `mapstructure:"key_header"`
	// Timeout исходящих запросов CLI (0 = без таймаута, как browser fetch)
	Timeout time.Duration `mapstructure:"timeout"`
}

// ============================================
// CORS Configuration
// ============================================

// CORSConfig - конфигурация CORS.
type CORSConfig struct {
	AllowedOrigins   []string      `mapstructure:"allowed_origins"`
	AllowedMethods   []string      `mapstructure:"allowed_methods"`
	AllowedHeaders   []string      `mapstructure:"allowed_headers"`
	AllowCredentials bool          `mapstructure:"allow_credentials"`
	MaxAge           time.Duration `mapstructure:"max_age"`
}

// ============================================
// Log Configuration
// ============================================

// LogConfig - конфигурация логирования.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// ============================================
// Configuration Loading
// ============================================

// Load загружает конфигурацию из файла и переменных окружения.
//
// configPath - путь к директории с конфигурацией (например, "configs")
// configName - имя файла конфигурации без расширения (например, "config")
func Load(configPath, configName string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("FOODY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Файл не найден - используем defaults и env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadFromEnv загружает конфигурацию только из переменных окружения.
func LoadFromEnv() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("FOODY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults устанавливает значения по умолчанию.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "foodyhub")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")

	// Web defaults: тот же порядок кандидатов, что и у express-версии
	v.SetDefault("web.prefix", "/web")
	v.SetDefault("web.asset_candidates", []string{
		"web/dist",
		"web",
		"dist",
		".",
	})

	// Backend API defaults
	v.SetDefault("api.base_url", DefaultBackendURL)
	v.SetDefault("api.key_header", "X-Foody-Key")
	v.SetDefault("api.timeout", "0s")

	// CORS defaults
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Origin", "Content-Type", "Accept", "X-Request-ID", "X-Foody-Key"})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", "12h")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// bindEnvVars привязывает переменные окружения.
func bindEnvVars(v *viper.Viper) {
	// Легаси-имена, которые выставляет хостинг
	_ = v.BindEnv("server.port", "FOODY_SERVER_PORT", "PORT")
	_ = v.BindEnv("api.base_url", "FOODY_API_BASE_URL", "FOODY_API")
	_ = v.BindEnv("web.prefix", "FOODY_WEB_PREFIX", "WEB_PREFIX")
	_ = v.BindEnv("app.environment", "FOODY_APP_ENVIRONMENT", "ENVIRONMENT", "APP_ENV")
}

// ============================================
// Configuration Validation
// ============================================

// Validate валидирует конфигурацию.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.API.BaseURL == "" {
		return fmt.Errorf("api base_url is required")
	}

	if !strings.HasPrefix(c.Web.Prefix, "/") {
		return fmt.Errorf("web prefix must start with '/': %q", c.Web.Prefix)
	}

	if len(c.Web.AssetCandidates) == 0 {
		return fmt.Errorf("at least one asset candidate is required")
	}

	return nil
}

// ============================================
// Development Helpers
// ============================================

// Development возвращает конфигурацию для разработки.
func Development() *Config {
	return &Config{
		App: AppConfig{
			Name:        "foodyhub",
			Version:     "dev",
			Environment: "development",
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            3000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Web: WebConfig{
			Prefix:          "/web",
			AssetCandidates: []string{"web/dist", "web", "dist", "."},
		},
		API: APIConfig{
			BaseURL:   DefaultBackendURL,
			KeyHeader: "X-Foody-Key",
		},
		CORS: CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		},
		Log: LogConfig{
			Level:  "debug",
			Format: "text",
		},
	}
}

// Test возвращает конфигурацию для тестов.
func Test() *Config {
	cfg := Development()
	cfg.App.Environment = "test"
	cfg.Log.Level = "error" // Меньше шума в тестах
	return cfg
}
