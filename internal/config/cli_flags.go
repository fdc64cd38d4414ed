package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Write logs as JSON")
	cmd.PersistentFlags().String("config", "", "Path to configuration file (optional)")
	cmd.PersistentFlags().Int("diagnostic-limit", DefaultDiagnosticLimit, "Maximum length of parser diagnostics in logs")
	cmd.PersistentFlags().Int("cache-entries", DefaultCacheEntries, "Destination URLs kept in memory (0 disables the cache)")
}

// RegisterServerFlags registers the flags of the serve command
func RegisterServerFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.Flags().String("listen", DefaultListenAddr, "Address the admin API listens on")
	cmd.Flags().Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	cmd.Flags().Bool("trust-proxy", false, "Rate limit by the first X-Forwarded-For hop; only behind a reverse proxy")
	cmd.Flags().Float64("rate", DefaultRateLimitRPS, "Requests per second allowed per client (0 disables)")
	cmd.Flags().Int("burst", DefaultRateLimitBurst, "Request burst allowed per client")
	cmd.Flags().String("token", "", "Bearer token required on /v1 routes (overrides the stored token)")
}
