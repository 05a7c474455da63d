package config

import "time"

// JWTConfig содержит настройки проверки токенов доступа.
type JWTConfig struct {
	SecretKey string `yaml:"secret_key" env:"JWT_SECRET_KEY" env-default:"2hlsdwbzmv7yGxbQ4sIah/MuvvNoe889pbEzZql0SU8n3U1gYi29gZnFQKxiUdGH"`
	// IdentityCacheTTL - сколько держать в Redis соответствие токена пользователю.
	IdentityCacheTTL time.Duration `yaml:"identity_cache_ttl" env:"JWT_IDENTITY_CACHE_TTL" env-default:"5m"`
}
