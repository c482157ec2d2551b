package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/estatehub/propevd/internal/domain/contract"
	"github.com/estatehub/propevd/pkg/errors"
)

func newContractCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Work with contract records",
	}

	cmd.AddCommand(newContractListCommand(opts))
	cmd.AddCommand(newContractAddCommand(opts))
	cmd.AddCommand(newContractUpdateCommand(opts))
	cmd.AddCommand(newContractDeleteCommand(opts))
	return cmd
}

func newContractListCommand(opts *RootOptions) *cobra.Command {
	var (
		clientID   int64
		propertyID int64
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contracts, optionally for one client or property",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := newAppContext(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if cmd.Flags().Changed("client") {
				cl, err := app.clients.GetByID(cmd.Context(), clientID)
				if err != nil {
					return err
				}
				if cl == nil {
					return errors.Newf(errors.KindNotFound, "client with identifier %d does not exist", clientID)
				}
				found, err := app.contracts.FindByClient(cmd.Context(), cl)
				if err != nil {
					return err
				}
				return printJSON(found)
			}

			if cmd.Flags().Changed("property") {
				pr, err := app.properties.GetByID(cmd.Context(), propertyID)
				if err != nil {
					return err
				}
				if pr == nil {
					return errors.Newf(errors.KindNotFound, "property with identifier %d does not exist", propertyID)
				}
				found, err := app.contracts.FindByProperty(cmd.Context(), pr)
				if err != nil {
					return err
				}
				return printJSON(found)
			}

			all, err := app.contracts.GetAll(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(all)
		},
	}

	cmd.Flags().Int64Var(&clientID, "client", 0, "restrict to contracts of this client")
	cmd.Flags().Int64Var(&propertyID, "property", 0, "restrict to contracts of this property")
	return cmd
}

func newContractAddCommand(opts *RootOptions) *cobra.Command {
	var (
		clientID   int64
		propertyID int64
		signedStr  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Store a new contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := newAppContext(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			signed, err := time.Parse("2006-01-02", signedStr)
			if err != nil {
				return errors.InvalidArgument("signed date must use the 2006-01-02 format")
			}

			cl, err := app.clients.GetByID(cmd.Context(), clientID)
			if err != nil {
				return err
			}
			if cl == nil {
				return errors.Newf(errors.KindNotFound, "client with identifier %d does not exist", clientID)
			}

			pr, err := app.properties.GetByID(cmd.Context(), propertyID)
			if err != nil {
				return err
			}
			if pr == nil {
				return errors.Newf(errors.KindNotFound, "property with identifier %d does not exist", propertyID)
			}

			c := &contract.Contract{Client: cl, Property: pr, DateOfSigning: signed}
			if err := app.contracts.Create(cmd.Context(), c); err != nil {
				return err
			}
			return printJSON(c)
		},
	}

	cmd.Flags().Int64Var(&clientID, "client", 0, "client identifier")
	cmd.Flags().Int64Var(&propertyID, "property", 0, "property identifier")
	cmd.Flags().StringVar(&signedStr, "signed", "", "date of signing, 2006-01-02")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("property")
	_ = cmd.MarkFlagRequired("signed")
	return cmd
}

func newContractUpdateCommand(opts *RootOptions) *cobra.Command {
	var (
		id        int64
		signedStr string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change the signing date of a stored contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := newAppContext(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			signed, err := time.Parse("2006-01-02", signedStr)
			if err != nil {
				return errors.InvalidArgument("signed date must use the 2006-01-02 format")
			}

			c, err := app.contracts.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if c == nil {
				return errors.Newf(errors.KindNotFound, "contract with identifier %d does not exist", id)
			}

			c.DateOfSigning = signed
			if err := app.contracts.Update(cmd.Context(), c); err != nil {
				return err
			}
			return printJSON(c)
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "contract identifier")
	cmd.Flags().StringVar(&signedStr, "signed", "", "date of signing, 2006-01-02")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("signed")
	return cmd
}

func newContractDeleteCommand(opts *RootOptions) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove a stored contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := newAppContext(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			c, err := app.contracts.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if c == nil {
				return errors.Newf(errors.KindNotFound, "contract with identifier %d does not exist", id)
			}
			return app.contracts.Delete(cmd.Context(), c)
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "contract identifier")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
