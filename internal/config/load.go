package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "API"

// ConfigFileEnv names the environment variable holding an optional config
// file path.
const ConfigFileEnv = "API_CONFIG_FILE"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.debug", false)
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("pagination.default_limit", 10)
	v.SetDefault("pagination.max_limit", 100)

	v.SetDefault("versioning.default_version", "1.1.0")
	v.SetDefault("versioning.allowed_versions", []string{"1.0.0", "1.1.0"})
	v.SetDefault("versioning.deprecated_versions", []string{})
	v.SetDefault("versioning.pending_deprecation", []map[string]any{})

	v.SetDefault("clients.header", "X-Client-Version")
	v.SetDefault("clients.supported", []map[string]any{
		{"name": "ios", "constraint": ">= 1.0.0"},
		{"name": "chrome-ext", "constraint": ">= 0.1.2"},
	})

	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.users", []map[string]any{})
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without a default are invisible to AutomaticEnv.
	if err := v.BindEnv("auth.jwt_secret"); err != nil {
		return nil, fmt.Errorf("failed to bind auth.jwt_secret: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct constraints of cfg.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
