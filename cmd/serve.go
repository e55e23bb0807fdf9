package cmd

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/SafeGiantJacket/renewaldesk/config"
	"github.com/SafeGiantJacket/renewaldesk/pkg/ingest"
	"github.com/SafeGiantJacket/renewaldesk/pkg/logging"
	"github.com/SafeGiantJacket/renewaldesk/pkg/store"
	"github.com/SafeGiantJacket/renewaldesk/server"
)

// Serve command flags.
var serveListenAddr string

// ServeCommandDeps holds the dependencies for the serve command.
type ServeCommandDeps struct {
	LoadConfig func() (*config.CLIConfig, error)
	OpenStore  func(ctx context.Context, cfg *config.CLIConfig) (store.Store, error)
	Listen     func(srv *server.Server, addr string) error
}

// DefaultServeDeps returns the default dependencies for production use.
func DefaultServeDeps() *ServeCommandDeps {
	return &ServeCommandDeps{
		LoadConfig: config.LoadConfig,
		OpenStore:  openStore,
		Listen: func(srv *server.Server, addr string) error {
			return srv.ListenAndServe(addr)
		},
	}
}

// NewServeCommand creates the serve command.
func NewServeCommand(deps *ServeCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultServeDeps()
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the renewal pipeline as an HTTP JSON API",
		Long: `Run the renewal pipeline as an HTTP JSON API.

Endpoints:
  POST /api/ingest/placements   CSV body, returns scored records
  POST /api/ingest/emails       CSV body, returns email records
  POST /api/ingest/calendar     CSV body, returns calendar records
  POST /api/insights            JSON body, returns engagement insights
  GET  /api/sample/placements   Sample CSV template
  GET/POST/DELETE /api/notes    Broker notes in the configured store
  GET/POST        /api/events   Scheduled events in the configured store
  GET  /metrics                 Prometheus metrics
  GET  /healthz                 Build info

Examples:
  renew serve
  renew serve --listen 0.0.0.0:9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), deps)
		},
	}

	cmd.Flags().StringVar(&serveListenAddr, "listen", "", "Listen address (overrides config)")

	return cmd
}

func runServe(ctx context.Context, deps *ServeCommandDeps) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return err
	}

	addr := cfg.ListenAddr
	if serveListenAddr != "" {
		addr = serveListenAddr
	}

	log := newLogger(cfg)

	st, err := deps.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening %s store: %w", cfg.StoreBackend, err)
	}
	defer st.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	if pg, ok := st.(*store.PostgresStore); ok {
		registry.MustRegister(store.NewPoolStatsCollector(pg.Pool()))
	}

	parser := ingest.NewParser(
		log.With(logging.F("component", "ingest")),
		ingest.WithMetrics(ingest.NewMetrics(registry)),
	)

	srv := server.New(log, parser, st, registry)
	log.Info("starting server",
		logging.F("addr", addr),
		logging.F("store", string(cfg.StoreBackend)))
	return deps.Listen(srv, addr)
}
