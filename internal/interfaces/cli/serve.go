package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/estatehub/propevd/internal/infrastructure/database/sqldb"
	"github.com/estatehub/propevd/internal/infrastructure/monitoring/logging"
	"github.com/estatehub/propevd/internal/infrastructure/monitoring/prometheus"
	apihttp "github.com/estatehub/propevd/internal/interfaces/http"
)

func newServeCommand(opts *RootOptions) *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := newAppContext(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if !skipMigrations {
				migrator := sqldb.NewMigrator(app.conn, app.log)
				if err := migrator.Up(app.cfg.Database.MigrationsDir); err != nil {
					return err
				}
			}

			deps := apihttp.Deps{
				Clients:    app.clients,
				Properties: app.properties,
				Contracts:  app.contracts,
				Store:      app.conn,
				Logger:     app.log,
				Version:    Version,
			}

			if app.cfg.Metrics.Enabled {
				collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
					Namespace:            app.cfg.Metrics.Namespace,
					EnableProcessMetrics: true,
					EnableGoMetrics:      true,
				}, app.log)
				if err != nil {
					return err
				}
				deps.Metrics = prometheus.NewAppMetrics(collector)
				deps.MetricsHandler = collector.Handler()
				deps.MetricsPath = app.cfg.Metrics.Path
			}

			router := apihttp.NewRouter(app.cfg.Server.Mode, deps)
			server := apihttp.NewServer(app.cfg.Server, router, app.log)

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				app.log.Info("received signal", logging.String("signal", sig.String()))
			}

			ctx, cancel := context.WithTimeout(context.Background(), app.cfg.Server.ShutdownTimeout)
			defer cancel()
			return server.Stop(ctx)
		},
	}

	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply schema migrations on startup")
	return cmd
}
