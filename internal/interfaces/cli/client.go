package cli

import (
	"github.com/spf13/cobra"

	"github.com/estatehub/propevd/internal/domain/client"
	"github.com/estatehub/propevd/pkg/errors"
)

func newClientCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Work with client records",
	}

	cmd.AddCommand(newClientListCommand(opts))
	cmd.AddCommand(newClientAddCommand(opts))
	cmd.AddCommand(newClientUpdateCommand(opts))
	cmd.AddCommand(newClientDeleteCommand(opts))
	cmd.AddCommand(newClientFindCommand(opts))
	return cmd
}

func newClientListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := newAppContext(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			all, err := app.clients.GetAll(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(all)
		},
	}
}

func newClientAddCommand(opts *RootOptions) *cobra.Command {
	var fullName, phone string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Store a new client",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := newAppContext(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			c := &client.Client{FullName: fullName, PhoneNumber: phone}
			if err := app.clients.Create(cmd.Context(), c); err != nil {
				return err
			}
			return printJSON(c)
		},
	}

	cmd.Flags().StringVar(&fullName, "name", "", "full name, a name and a surname")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func newClientUpdateCommand(opts *RootOptions) *cobra.Command {
	var (
		id              int64
		fullName, phone string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Overwrite a stored client",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := newAppContext(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			c := &client.Client{ID: &id, FullName: fullName, PhoneNumber: phone}
			if err := app.clients.Update(cmd.Context(), c); err != nil {
				return err
			}
			return printJSON(c)
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "client identifier")
	cmd.Flags().StringVar(&fullName, "name", "", "full name, a name and a surname")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func newClientDeleteCommand(opts *RootOptions) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove a stored client",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := newAppContext(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			c, err := app.clients.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if c == nil {
				return errors.Newf(errors.KindNotFound, "client with identifier %d does not exist", id)
			}
			return app.clients.Delete(cmd.Context(), c)
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "client identifier")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newClientFindCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "find <name>",
		Short: "Find clients by name fragment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := newAppContext(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			found, err := app.clients.FindByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(found)
		},
	}
}
