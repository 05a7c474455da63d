// Package config содержит конфигурацию сервиса заметок.
package config

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	pkgconfig "elevennote/pkg/config"
	"elevennote/pkg/logger"
)

// Имя сервиса и переменная с путем к файлу конфигурации.
const (
	ServiceName = "notes"
	PathEnv     = "NOTES_CONFIG_PATH"
)

// Поддерживаемые хранилища заметок.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Константы ошибок и сообщений для конфигурации.
const (
	LogConfigLoaded     = "notes configuration loaded"
	ErrFailedLoadConfig = "failed to load notes configuration"
	ErrUnknownStorage   = "unknown storage backend"
)

// Config представляет полную конфигурацию сервиса заметок.
type Config struct {
	Storage  string         `yaml:"storage" env:"NOTES_STORAGE" env-default:"postgres"`
	Postgres PostgresConfig `yaml:"postgres"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	HTTP     HTTPConfig     `yaml:"http"`
	JWT      JWTConfig      `yaml:"jwt"`
	Redis    RedisConfig    `yaml:"redis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из переменных окружения и, если задан NOTES_CONFIG_PATH, из файла.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, os.Getenv(PathEnv))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if cfg.Storage != StoragePostgres && cfg.Storage != StorageMemory {
		return nil, fmt.Errorf("%s: %q", ErrUnknownStorage, cfg.Storage)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("storage", cfg.Storage),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("grpc_address", cfg.GRPC.GetAddress()),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.Bool("identity_cache", cfg.Redis.Enabled),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}
