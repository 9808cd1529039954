package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is populated from the environment (with .env loaded first by the
// binaries).
type Config struct {
	Addr        string        `envconfig:"ADDR" default:":8080"`
	DatabaseDSN string        `envconfig:"DATABASE_DSN" default:"host=localhost user=user password=password dbname=quickchatdb port=5432 sslmode=disable"`
	RedisAddr   string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB     int           `envconfig:"REDIS_DB" default:"0"`
	JWTSecret   string        `envconfig:"JWT_SECRET" default:"super-secret-key"`
	TokenTTL    time.Duration `envconfig:"TOKEN_TTL" default:"1h"`
	// StaticDir, when set, is served at / for the built client bundle.
	StaticDir string `envconfig:"STATIC_DIR"`
}

func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
