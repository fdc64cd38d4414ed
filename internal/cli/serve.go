// internal/cli/serve.go
package cli

import (
	"github.com/spf13/cobra"

	"github.com/law-makers/linkresolve/internal/config"
	"github.com/law-makers/linkresolve/internal/resolver"
	"github.com/law-makers/linkresolve/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the admin HTTP API",
	Long: `Serves the destination URL computation over HTTP until interrupted.

Routes:
  - POST /v1/utils/destinationUrl {"base": "...", "target": "..."}
  - POST /v1/utils/sanitize {"url": "..."}
  - GET /healthz
  - GET /metrics

When an API token is configured (--token, LINKRESOLVE_SERVER_API_TOKEN, or
"linkresolve token set") the /v1 routes require "Authorization: Bearer <token>".`,
	Example: `  # Listen on the default address
  linkresolve serve

  # Public interface with a token and a tighter rate limit
  linkresolve serve --listen :8080 --token s3cret --rate 5 --burst 10

  # Query it
  curl -s -X POST localhost:8080/v1/utils/destinationUrl -d '{"base":"https://www.cnr.it/","target":"amministrazione-trasparente"}'`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	config.RegisterServerFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a := GetApp()

	token, err := a.APIToken()
	if err != nil {
		return err
	}

	srv := server.New(server.Options{
		Addr:         a.Config.ListenAddr,
		ReadTimeout:  a.Config.ReadTimeout,
		WriteTimeout: a.Config.WriteTimeout,
		Token:        token,
		TrustProxy:   a.Config.TrustProxy,
		Resolve:      a.Resolve,
		Sanitize:     resolver.Sanitize,
		Limiter:      a.RateLimiter,
		Metrics:      a.Metrics,
		Logger:       *a.Logger,
		Uptime:       a.Uptime,
	})
	return srv.Run(cmd.Context())
}
