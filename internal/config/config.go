package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the digestgate runtime configuration.
//
// Sources in order of precedence:
//  1. Environment variables (DIGESTGATE_*)
//  2. Optional configuration file (YAML)
//  3. Defaults
type Config struct {
	// ListenAddr is the address the HTTP server binds to
	ListenAddr string `mapstructure:"listen_addr"`

	// Realm is the protection-space name used in challenges and checked on responses
	Realm string `mapstructure:"realm"`

	// Secret signs every issued nonce; it must stay identical across issuance and verification
	Secret string `mapstructure:"secret"`

	// NonceValidity is how long an issued nonce stays fresh
	NonceValidity time.Duration `mapstructure:"nonce_validity"`

	// SecretsHashed marks stored secrets as already md5(username:realm:password)
	SecretsHashed bool `mapstructure:"secrets_hashed"`

	// RedisURL locates the redis instance backing the credential cache and event stream
	RedisURL string `mapstructure:"redis_url"`

	// CacheTTL bounds the lifetime of cached credentials
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// EventsEnabled toggles publishing of verification outcome events
	EventsEnabled bool `mapstructure:"events_enabled"`

	// Users seeds the in-memory credential store
	Users []UserConfig `mapstructure:"users"`
}

// UserConfig is one seeded credential.
type UserConfig struct {
	Username string `mapstructure:"username"`
	Secret   string `mapstructure:"secret"`
}

// Load reads configuration from the optional file at path, the environment,
// and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("listen_addr", ":9000")
	v.SetDefault("realm", "digestgate")
	v.SetDefault("secret", "")
	v.SetDefault("nonce_validity", 5*time.Minute)
	v.SetDefault("secrets_hashed", false)
	v.SetDefault("redis_url", "redis://localhost:6379/0")
	v.SetDefault("cache_ttl", time.Minute)
	v.SetDefault("events_enabled", true)

	v.SetEnvPrefix("DIGESTGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Secret == "" {
		return nil, fmt.Errorf("secret is required")
	}
	if cfg.NonceValidity <= 0 {
		return nil, fmt.Errorf("nonce_validity must be positive")
	}

	return &cfg, nil
}
