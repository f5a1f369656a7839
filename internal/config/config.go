package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix vai na frente de toda variável de ambiente, ex.
// TTA_STORAGE_DRIVER=redis
const EnvPrefix = "TTA"

// drivers de armazenamento
const (
	DriverSqlite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Config espelha o config.yaml
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Mode      string     `mapstructure:"mode"`
	Address   string     `mapstructure:"address"`
	Cors      CorsConfig `mapstructure:"cors"`
	ImagesDir string     `mapstructure:"imagesDir"`
}

type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// CatalogConfig aponta pra lista de cartas, caminho local ou URL http(s)
type CatalogConfig struct {
	Source            string        `mapstructure:"source"`
	Timeout           time.Duration `mapstructure:"timeout"`
	StableFallbackIDs bool          `mapstructure:"stableFallbackIDs"`
}

type StorageConfig struct {
	Driver string       `mapstructure:"driver"`
	Key    string       `mapstructure:"key"`
	Sqlite SqliteConfig `mapstructure:"sqlite"`
	Redis  RedisConfig  `mapstructure:"redis"`
}

type SqliteConfig struct {
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.cors.allowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("server.imagesDir", "")

	v.SetDefault("catalog.source", "card-data.json")
	v.SetDefault("catalog.timeout", 10*time.Second)
	v.SetDefault("catalog.stableFallbackIDs", false)

	v.SetDefault("storage.driver", DriverSqlite)
	v.SetDefault("storage.key", "tta_collection_v1")
	v.SetDefault("storage.sqlite.path", "tta.db")
	v.SetDefault("storage.redis.address", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load lê o config.yaml de ./config ou do diretório atual, ou de path quando
// informado. Arquivo padrão ausente tudo bem; arquivo explícito ausente é erro.
// Variáveis de ambiente sobrescrevem os dois.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverSqlite, DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("invalid storage.driver %q", c.Storage.Driver)
	}
	if c.Catalog.Source == "" {
		return fmt.Errorf("catalog.source is required")
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q", c.Log.Format)
	}
	return nil
}

func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log.level %q", s)
	}
}

// Logger monta o logger do processo a partir da seção log
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := ParseLogLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
