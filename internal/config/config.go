package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Pagination PaginationConfig `mapstructure:"pagination" validate:"required"`
	Versioning VersioningConfig `mapstructure:"versioning" validate:"required"`
	Clients    ClientsConfig    `mapstructure:"clients"`
	Auth       AuthConfig       `mapstructure:"auth" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// Debug exposes internal error messages in responses.
	Debug                  bool `mapstructure:"debug"`
	ShutdownTimeoutSeconds int  `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// PaginationConfig bounds list requests.
type PaginationConfig struct {
	DefaultLimit int `mapstructure:"default_limit" validate:"gt=0"`
	MaxLimit     int `mapstructure:"max_limit" validate:"gtefield=DefaultLimit"`
}

// VersioningConfig lists the API versions served.
type VersioningConfig struct {
	DefaultVersion     string           `mapstructure:"default_version" validate:"required"`
	AllowedVersions    []string         `mapstructure:"allowed_versions"`
	DeprecatedVersions []string         `mapstructure:"deprecated_versions"`
	PendingDeprecation []PendingVersion `mapstructure:"pending_deprecation" validate:"dive"`
}

// PendingVersion is a version that is still served until a given date.
type PendingVersion struct {
	Version string `mapstructure:"version" validate:"required"`
	Until   string `mapstructure:"until" validate:"required,datetime=2006-01-02"`
}

// ClientsConfig gates requests by client application version.
type ClientsConfig struct {
	Header    string       `mapstructure:"header"`
	Supported []ClientRule `mapstructure:"supported" validate:"dive"`
}

// ClientRule accepts a client name when its version satisfies Constraint.
type ClientRule struct {
	Name       string `mapstructure:"name" validate:"required"`
	Constraint string `mapstructure:"constraint" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string       `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int          `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lte=44640"`
	Users                []UserConfig `mapstructure:"users" validate:"dive"`
}

// UserConfig provisions one account.
type UserConfig struct {
	Username       string `mapstructure:"username" validate:"required"`
	Email          string `mapstructure:"email" validate:"omitempty,email"`
	PasswordHash   string `mapstructure:"password_hash" validate:"required"`
	Active         bool   `mapstructure:"active"`
	EmailConfirmed bool   `mapstructure:"email_confirmed"`
}
