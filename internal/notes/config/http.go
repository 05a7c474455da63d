package config

import (
	"fmt"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP API.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"NOTES_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"NOTES_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"NOTES_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"NOTES_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	RateLimit    float64       `yaml:"rate_limit" env:"NOTES_HTTP_RATE_LIMIT" env-default:"20"`
	RateBurst    int           `yaml:"rate_burst" env:"NOTES_HTTP_RATE_BURST" env-default:"40"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
