package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all document-store-related configuration settings.
type DatabaseConfig struct {
	// URI is the MongoDB connection string (mongodb:// or mongodb+srv://).
	URI string `mapstructure:"uri" validate:"required"`

	// Name is the database holding the services and service-application
	// collections.
	Name string `mapstructure:"name" validate:"required"`
}

// AuthConfig contains all authentication and session settings.
type AuthConfig struct {
	// JWTSecret signs session tokens. Anyone holding it can mint valid
	// sessions, so it must never be logged or exposed.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes bounds session validity; expiry is the only
	// revocation mechanism for the stateless session token.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`

	// CookieSecure marks the session cookie Secure. Disabled only for
	// local development over plain HTTP.
	CookieSecure bool `mapstructure:"cookie_secure"`
}
