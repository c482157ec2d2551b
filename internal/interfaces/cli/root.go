// Package cli implements the propevd command-line interface: serving the
// API, running migrations, and working with records from the terminal.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/estatehub/propevd/internal/config"
	"github.com/estatehub/propevd/internal/domain/client"
	"github.com/estatehub/propevd/internal/domain/contract"
	"github.com/estatehub/propevd/internal/domain/property"
	"github.com/estatehub/propevd/internal/infrastructure/database/sqldb"
	"github.com/estatehub/propevd/internal/infrastructure/database/sqldb/repositories"
	"github.com/estatehub/propevd/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds the global CLI flags.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
}

// appContext carries the initialized dependencies through the command tree.
type appContext struct {
	cfg        *config.Config
	log        logging.Logger
	conn       *sqldb.Connection
	clients    client.Repository
	properties property.Repository
	contracts  contract.Repository
}

// newAppContext loads configuration, opens the store, and wires the
// repositories.  The returned cleanup closes the connection.
func newAppContext(opts *RootOptions) (*appContext, func(), error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, nil, err
	}

	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}

	log, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return nil, nil, err
	}

	conn, err := sqldb.NewConnection(cfg.Database, log)
	if err != nil {
		return nil, nil, err
	}

	clients := repositories.NewClientRepo(conn, log)
	properties := repositories.NewPropertyRepo(conn, log)
	contracts := repositories.NewContractRepo(conn, clients, properties, log)

	app := &appContext{
		cfg:        cfg,
		log:        log,
		conn:       conn,
		clients:    clients,
		properties: properties,
		contracts:  contracts,
	}
	return app, func() { _ = conn.Close() }, nil
}

// NewRootCommand creates the root command with global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "propevd",
		Short:   "Property evidence record keeping",
		Long:    "propevd keeps records of clients, properties, and the contracts\nthat bind them, backed by an embedded or external relational store.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to configuration file")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "override the configured log level")

	cmd.AddCommand(
		newServeCommand(opts),
		newMigrateCommand(opts),
		newClientCommand(opts),
		newPropertyCommand(opts),
		newContractCommand(opts),
	)
	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCommand().Execute()
}

// printJSON renders command output as indented JSON on stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
