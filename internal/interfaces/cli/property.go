package cli

import (
	"github.com/spf13/cobra"

	"github.com/estatehub/propevd/internal/domain/property"
	"github.com/estatehub/propevd/pkg/errors"
)

func newPropertyCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "property",
		Short: "Work with property records",
	}

	cmd.AddCommand(newPropertyListCommand(opts))
	cmd.AddCommand(newPropertyAddCommand(opts))
	cmd.AddCommand(newPropertyUpdateCommand(opts))
	cmd.AddCommand(newPropertyDeleteCommand(opts))
	cmd.AddCommand(newPropertyFindCommand(opts))
	return cmd
}

func newPropertyListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := newAppContext(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			all, err := app.properties.GetAll(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(all)
		},
	}
}

func newPropertyAddCommand(opts *RootOptions) *cobra.Command {
	var (
		area, price float64
		address     string
		typeName    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Store a new property",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := newAppContext(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			typ, err := property.ParseType(typeName)
			if err != nil {
				return err
			}

			p := &property.Property{Area: area, Price: price, Address: address, Type: typ}
			if err := app.properties.Create(cmd.Context(), p); err != nil {
				return err
			}
			return printJSON(p)
		},
	}

	cmd.Flags().Float64Var(&area, "area", 0, "area in square meters")
	cmd.Flags().Float64Var(&price, "price", 0, "asking price")
	cmd.Flags().StringVar(&address, "address", "", "property address")
	cmd.Flags().StringVar(&typeName, "type", "", "property type, e.g. HUT or FAMILY_HOUSE")
	_ = cmd.MarkFlagRequired("area")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("address")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newPropertyUpdateCommand(opts *RootOptions) *cobra.Command {
	var (
		id          int64
		area, price float64
		address     string
		typeName    string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Overwrite a stored property",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := newAppContext(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			typ, err := property.ParseType(typeName)
			if err != nil {
				return err
			}

			p := &property.Property{ID: &id, Area: area, Price: price, Address: address, Type: typ}
			if err := app.properties.Update(cmd.Context(), p); err != nil {
				return err
			}
			return printJSON(p)
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "property identifier")
	cmd.Flags().Float64Var(&area, "area", 0, "area in square meters")
	cmd.Flags().Float64Var(&price, "price", 0, "asking price")
	cmd.Flags().StringVar(&address, "address", "", "property address")
	cmd.Flags().StringVar(&typeName, "type", "", "property type, e.g. HUT or FAMILY_HOUSE")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("area")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("address")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newPropertyDeleteCommand(opts *RootOptions) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove a stored property",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := newAppContext(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := app.properties.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if p == nil {
				return errors.Newf(errors.KindNotFound, "property with identifier %d does not exist", id)
			}
			return app.properties.Delete(cmd.Context(), p)
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "property identifier")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newPropertyFindCommand(opts *RootOptions) *cobra.Command {
	var (
		address string
		price   float64
	)

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find properties by address fragment or price",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := newAppContext(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if cmd.Flags().Changed("price") {
				found, err := app.properties.FindByPrice(cmd.Context(), price)
				if err != nil {
					return err
				}
				return printJSON(found)
			}

			found, err := app.properties.FindByAddress(cmd.Context(), address)
			if err != nil {
				return err
			}
			return printJSON(found)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "address fragment to match")
	cmd.Flags().Float64Var(&price, "price", 0, "price to match within the band")
	return cmd
}
