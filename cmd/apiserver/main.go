// apiserver runs the REST API directly, without the CLI wrapper.  Intended
// for containerized deployments configured through PROPEVD_* environment
// variables.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/estatehub/propevd/internal/config"
	"github.com/estatehub/propevd/internal/infrastructure/database/sqldb"
	"github.com/estatehub/propevd/internal/infrastructure/database/sqldb/repositories"
	"github.com/estatehub/propevd/internal/infrastructure/monitoring/logging"
	"github.com/estatehub/propevd/internal/infrastructure/monitoring/prometheus"
	apihttp "github.com/estatehub/propevd/internal/interfaces/http"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	log, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}

	log.Info("starting propevd api server", logging.String("version", version))

	conn, err := sqldb.NewConnection(cfg.Database, log)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := sqldb.NewMigrator(conn, log).Up(cfg.Database.MigrationsDir); err != nil {
		return err
	}

	clients := repositories.NewClientRepo(conn, log)
	properties := repositories.NewPropertyRepo(conn, log)
	contracts := repositories.NewContractRepo(conn, clients, properties, log)

	deps := apihttp.Deps{
		Clients:    clients,
		Properties: properties,
		Contracts:  contracts,
		Store:      conn,
		Logger:     log,
		Version:    version,
	}

	if cfg.Metrics.Enabled {
		collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, log)
		if err != nil {
			return err
		}
		deps.Metrics = prometheus.NewAppMetrics(collector)
		deps.MetricsHandler = collector.Handler()
		deps.MetricsPath = cfg.Metrics.Path
	}

	router := apihttp.NewRouter(cfg.Server.Mode, deps)
	server := apihttp.NewServer(cfg.Server, router, log)

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
		log.Info("received signal", logging.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Stop(ctx)
}
