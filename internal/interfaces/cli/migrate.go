package cli

import (
	"github.com/spf13/cobra"

	"github.com/estatehub/propevd/internal/infrastructure/database/sqldb"
)

func newMigrateCommand(opts *RootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the store schema",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "migrations directory (defaults to the engine's directory)")

	migrationsDir := func(app *appContext) string {
		if dir != "" {
			return dir
		}
		return app.cfg.Database.MigrationsDir
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := newAppContext(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			return sqldb.NewMigrator(app.conn, app.log).Up(migrationsDir(app))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := newAppContext(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			return sqldb.NewMigrator(app.conn, app.log).Down(migrationsDir(app))
		},
	})

	return cmd
}
