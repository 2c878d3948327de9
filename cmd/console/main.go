// Taxonomy - terminal console for the category management API
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aethra/taxonomy/internal/client"
	"github.com/aethra/taxonomy/internal/config"
	"github.com/aethra/taxonomy/internal/console"
	"github.com/spf13/pflag"
)

func main() {
	cfg := config.Load()

	backendURL := pflag.String("backend-url", cfg.Console.BackendURL, "base URL of the taxonomy API (env BACKEND_URL)")
	token := pflag.String("token", cfg.Console.Token, "operator bearer token for write requests (env API_TOKEN)")
	timeout := pflag.Duration("timeout", 30*time.Second, "timeout of each API request")
	logLevel := pflag.String("log-level", "error", "level of the console's own log output on stderr")
	pflag.Parse()

	logCfg := cfg.Log
	logCfg.Level = *logLevel
	log := logCfg.NewLogger()

	opts := []client.Option{client.WithHTTPClient(&http.Client{Timeout: *timeout})}
	if *token != "" {
		opts = append(opts, client.WithToken(*token))
	}
	api, err := client.NewAPI(*backendURL, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid backend URL: %v\n", err)
		os.Exit(2)
	}
	log.Debug("console starting", "backend", api.Client.BaseURL())

	if err := console.New(api, os.Stdin, os.Stdout, log).Run(context.Background()); err != nil {
		log.Error("console failed", "error", err)
		os.Exit(1)
	}
}
