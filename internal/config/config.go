package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	SessionBackendCookie = "cookie"
	SessionBackendRedis  = "redis"

	// DefaultSessionSecret is only acceptable outside production.
	DefaultSessionSecret = "recipebox-dev-session-secret-change-me"

	minSessionSecretLength = 32
)

type Config struct {
	AppEnv          string        `mapstructure:"APP_ENV"`
	Port            string        `mapstructure:"PORT"`
	DatabaseURL     string        `mapstructure:"DATABASE_URL"`
	MigrationsPath  string        `mapstructure:"MIGRATIONS_PATH"`
	RedisURL        string        `mapstructure:"REDIS_URL"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	SessionBackend  string        `mapstructure:"SESSION_BACKEND"`
	SessionSecret   string        `mapstructure:"SESSION_SECRET"`
	SessionName     string        `mapstructure:"SESSION_NAME"`
	SessionMaxAge   int           `mapstructure:"SESSION_MAX_AGE"`
	CookieSecure    bool          `mapstructure:"COOKIE_SECURE"`
	CookieSameSite  string        `mapstructure:"COOKIE_SAMESITE"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

func LoadConfig() (config Config, err error) {
	v := viper.New()
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("PORT", "5555")
	v.SetDefault("DATABASE_URL", "sqlite://recipebox.db")
	v.SetDefault("MIGRATIONS_PATH", "file://migration")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("SESSION_BACKEND", SessionBackendCookie)
	v.SetDefault("SESSION_SECRET", DefaultSessionSecret)
	v.SetDefault("SESSION_NAME", "recipebox_session")
	v.SetDefault("SESSION_MAX_AGE", 86400)
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("COOKIE_SAMESITE", "lax")
	v.SetDefault("SHUTDOWN_TIMEOUT", "5s")

	v.AutomaticEnv()

	err = v.Unmarshal(&config)
	if err != nil {
		log.Printf("unable to decode into struct, %v", err)
		return
	}

	config.SessionBackend = strings.ToLower(config.SessionBackend)
	err = config.Validate()
	return
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate rejects combinations the server cannot start with.
func (c Config) Validate() error {
	switch c.SessionBackend {
	case SessionBackendCookie:
	case SessionBackendRedis:
		if c.RedisURL == "" {
			return errors.New("SESSION_BACKEND=redis requires REDIS_URL")
		}
	default:
		return fmt.Errorf("unknown session backend: %q", c.SessionBackend)
	}

	if len(c.SessionSecret) < minSessionSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d bytes", minSessionSecretLength)
	}
	if c.IsProduction() && c.SessionSecret == DefaultSessionSecret {
		return errors.New("SESSION_SECRET must be set in production")
	}
	return nil
}
