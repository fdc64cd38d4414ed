package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Admin API
	ListenAddr   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	APIToken     string
	// TrustProxy keys rate limits on X-Forwarded-For instead of the peer address
	TrustProxy bool

	// Rate Limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// Export
	ExportConcurrency int

	// Resolver
	DiagnosticLimit int
	// CacheEntries bounds the resolution cache; 0 disables it
	CacheEntries int
}

// Default returns a Config populated with the default values
func Default() *Config {
	return &Config{
		LogLevel:          DefaultLogLevel,
		JSONLog:           DefaultJSONLog,
		ListenAddr:        DefaultListenAddr,
		ReadTimeout:       DefaultReadTimeout,
		WriteTimeout:      DefaultWriteTimeout,
		RateLimitRPS:      DefaultRateLimitRPS,
		RateLimitBurst:    DefaultRateLimitBurst,
		ExportConcurrency: DefaultExportConcurrency,
		DiagnosticLimit:   DefaultDiagnosticLimit,
		CacheEntries:      DefaultCacheEntries,
	}
}

// Load builds a Config by combining defaults, an optional config file, environment variables, and CLI flags.
// Caller should pass the executing *cobra.Command so flags can be read.
//
// File keys are dotted (server.listen); the matching environment variable is
// LINKRESOLVE_SERVER_LISTEN.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	path := v.GetString("config")
	if f := lookupFlag(cmd, "config"); f != nil && f.Value.String() != "" {
		path = f.Value.String()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	// File and environment
	if v.IsSet("log.level") {
		cfg.LogLevel = v.GetString("log.level")
	}
	if v.IsSet("log.json") {
		cfg.JSONLog = v.GetBool("log.json")
	}
	if v.IsSet("server.listen") {
		cfg.ListenAddr = v.GetString("server.listen")
	}
	if v.IsSet("server.read_timeout") {
		cfg.ReadTimeout = v.GetDuration("server.read_timeout")
	}
	if v.IsSet("server.write_timeout") {
		cfg.WriteTimeout = v.GetDuration("server.write_timeout")
	}
	if v.IsSet("server.api_token") {
		cfg.APIToken = v.GetString("server.api_token")
	}
	if v.IsSet("server.trust_proxy") {
		cfg.TrustProxy = v.GetBool("server.trust_proxy")
	}
	if v.IsSet("ratelimit.rps") {
		cfg.RateLimitRPS = v.GetFloat64("ratelimit.rps")
	}
	if v.IsSet("ratelimit.burst") {
		cfg.RateLimitBurst = v.GetInt("ratelimit.burst")
	}
	if v.IsSet("export.concurrency") {
		cfg.ExportConcurrency = v.GetInt("export.concurrency")
	}
	if v.IsSet("resolver.diagnostic_limit") {
		cfg.DiagnosticLimit = v.GetInt("resolver.diagnostic_limit")
	}
	if v.IsSet("resolver.cache_entries") {
		cfg.CacheEntries = v.GetInt("resolver.cache_entries")
	}

	// Explicitly set CLI flags win
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *Config) error {
	if cmd == nil {
		return nil
	}

	var err error
	set := func(name string, apply func(f *pflag.Flag) error) {
		f := lookupFlag(cmd, name)
		if err != nil || f == nil || !f.Changed {
			return
		}
		if e := apply(f); e != nil {
			err = fmt.Errorf("invalid value for --%s: %w", name, e)
		}
	}

	set("verbose", func(f *pflag.Flag) error {
		if f.Value.String() == "true" {
			cfg.LogLevel = "debug"
		}
		return nil
	})
	set("quiet", func(f *pflag.Flag) error {
		if f.Value.String() == "true" {
			cfg.LogLevel = "error"
		}
		return nil
	})
	set("json", func(f *pflag.Flag) error {
		cfg.JSONLog = f.Value.String() == "true"
		return nil
	})
	set("listen", func(f *pflag.Flag) error {
		cfg.ListenAddr = f.Value.String()
		return nil
	})
	set("read-timeout", func(f *pflag.Flag) (e error) {
		cfg.ReadTimeout, e = time.ParseDuration(f.Value.String())
		return e
	})
	set("write-timeout", func(f *pflag.Flag) (e error) {
		cfg.WriteTimeout, e = time.ParseDuration(f.Value.String())
		return e
	})
	set("token", func(f *pflag.Flag) error {
		cfg.APIToken = f.Value.String()
		return nil
	})
	set("trust-proxy", func(f *pflag.Flag) error {
		cfg.TrustProxy = f.Value.String() == "true"
		return nil
	})
	set("rate", func(f *pflag.Flag) (e error) {
		_, e = fmt.Sscan(f.Value.String(), &cfg.RateLimitRPS)
		return e
	})
	set("burst", func(f *pflag.Flag) (e error) {
		_, e = fmt.Sscan(f.Value.String(), &cfg.RateLimitBurst)
		return e
	})
	set("concurrency", func(f *pflag.Flag) (e error) {
		_, e = fmt.Sscan(f.Value.String(), &cfg.ExportConcurrency)
		return e
	})
	set("diagnostic-limit", func(f *pflag.Flag) (e error) {
		_, e = fmt.Sscan(f.Value.String(), &cfg.DiagnosticLimit)
		return e
	})
	set("cache-entries", func(f *pflag.Flag) (e error) {
		_, e = fmt.Sscan(f.Value.String(), &cfg.CacheEntries)
		return e
	})

	return err
}

// lookupFlag finds a flag on cmd, including persistent flags inherited from
// its parents.
func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if cmd == nil {
		return nil
	}
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}
	return cmd.InheritedFlags().Lookup(name)
}
