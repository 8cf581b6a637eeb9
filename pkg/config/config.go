package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable read by the terminal.
const EnvPrefix = "PUNTOTECNO"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
	Catalog CatalogConfig
	Notify  NotifyConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Session.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PUNTOTECNO_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"PUNTOTECNO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PUNTOTECNO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// APIConfig points the terminal at the remote PuntoTecno REST API.
type APIConfig struct {
	BaseURL string        `envconfig:"PUNTOTECNO_API_BASE_URL" default:"http://127.0.0.1:8000/api"`
	Timeout time.Duration `envconfig:"PUNTOTECNO_API_TIMEOUT" default:"15s"`
}

// SessionConfig selects where the logged-in session is persisted. The file
// backend is the default for a single terminal; redis is meant for shops
// running several terminals against one shared session.
type SessionConfig struct {
	Backend    string `envconfig:"PUNTOTECNO_SESSION_BACKEND" default:"file"`
	Path       string `envconfig:"PUNTOTECNO_SESSION_PATH" default:".puntotecno/session.json"`
	TerminalID string `envconfig:"PUNTOTECNO_TERMINAL_ID" default:"default"`
}

func (s SessionConfig) validate() error {
	switch s.Backend {
	case "file", "redis":
		return nil
	}
	return fmt.Errorf("invalid session backend %q (want file or redis)", s.Backend)
}

type RedisConfig struct {
	URL          string        `envconfig:"PUNTOTECNO_REDIS_URL"`
	Address      string        `envconfig:"PUNTOTECNO_REDIS_ADDR"`
	Password     string        `envconfig:"PUNTOTECNO_REDIS_PASSWORD"`
	DB           int           `envconfig:"PUNTOTECNO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PUNTOTECNO_REDIS_POOL_SIZE" default:"5"`
	MinIdleConns int           `envconfig:"PUNTOTECNO_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"PUNTOTECNO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PUNTOTECNO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PUNTOTECNO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CatalogConfig configures the local product snapshot cache.
type CatalogConfig struct {
	Path    string        `envconfig:"PUNTOTECNO_CATALOG_PATH" default:".puntotecno/catalog.db"`
	MaxAge  time.Duration `envconfig:"PUNTOTECNO_CATALOG_MAX_AGE" default:"10m"`
	PageCap int           `envconfig:"PUNTOTECNO_CATALOG_PAGE_CAP" default:"1000"`
}

type NotifyConfig struct {
	InfoTTL    time.Duration `envconfig:"PUNTOTECNO_NOTIFY_INFO_TTL" default:"3s"`
	WarningTTL time.Duration `envconfig:"PUNTOTECNO_NOTIFY_WARNING_TTL" default:"4s"`
	ErrorTTL   time.Duration `envconfig:"PUNTOTECNO_NOTIFY_ERROR_TTL" default:"5s"`
}
