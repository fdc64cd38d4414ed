package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel          = "info"
	DefaultJSONLog           = false
	DefaultListenAddr        = "127.0.0.1:8080"
	DefaultReadTimeout       = 10 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultShutdownTimeout   = 15 * time.Second
	DefaultRateLimitRPS      = 20.0
	DefaultRateLimitBurst    = 40
	DefaultExportConcurrency = 0 // auto
	MaxExportConcurrency     = 256
	DefaultDiagnosticLimit   = 120
	DefaultCacheEntries      = 10000
	DefaultMaxBodyBytes      = 64 * 1024

	// EnvPrefix prefixes every environment override, e.g. LINKRESOLVE_SERVER_LISTEN
	EnvPrefix = "LINKRESOLVE"
)
