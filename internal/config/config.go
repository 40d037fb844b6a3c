package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
// The JWT secret is the process-wide signing key: loaded once at startup,
// never a literal in source.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// CacheConfig contains the task listing cache settings.
type CacheConfig struct {
	// TTLSeconds is the fixed time-to-live applied to every cache entry.
	TTLSeconds int `mapstructure:"ttl_seconds" validate:"required,gt=0"`

	// SweepIntervalSeconds controls how often the background sweep drops
	// expired entries. Zero disables the sweep; expiry is then purely lazy.
	SweepIntervalSeconds int `mapstructure:"sweep_interval_seconds" validate:"gte=0"`
}
