package config

import (
	"fmt"
	"strings"
)

func validate(c *Config) error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address cannot be empty")
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be > 0")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit must be >= 0")
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be > 0")
	}
	if c.ExportConcurrency < 0 || c.ExportConcurrency > MaxExportConcurrency {
		return fmt.Errorf("export concurrency must be between 0 and %d", MaxExportConcurrency)
	}
	if c.DiagnosticLimit <= 0 {
		return fmt.Errorf("diagnostic limit must be > 0")
	}
	if c.CacheEntries < 0 {
		return fmt.Errorf("cache entries must be >= 0")
	}
	return nil
}
