package config

import "time"

// Config file lookup
const (
	ConfigFileEnv     = "ECO_CONFIG_FILE"
	DefaultConfigFile = "config.yaml"
)

// Server defaults
const (
	DefaultServerPort  = "3000"
	DefaultServiceName = "eco-backend"

	ReadHeaderTimeout = 10 * time.Second
	ShutdownTimeout   = 30 * time.Second
)

// Database defaults
const (
	DefaultDatabaseHost = "localhost"
	DefaultDatabasePort = 5432
	DefaultDatabaseName = "eco_atlas"

	DefaultMaxOpenConns     = 25
	DefaultMaxIdleConns     = 5
	DatabaseConnMaxLifetime = 5 * time.Minute
)

// Field limits shared by handlers and the schema.
const (
	MaxTitleLength      = 255
	MaxAuthorNameLength = 100
)

// Security configuration constants
const (
	// Content Security Policy for the embedded frontend
	DefaultCSP = "default-src 'self'; style-src 'self' 'unsafe-inline'; script-src 'self'; img-src 'self' data: https:; connect-src 'self';"
)
