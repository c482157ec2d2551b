package property

import "context"

// PriceBand is the radius, in currency units, of the inclusive price window
// searched by FindByPrice.
const PriceBand = 2000.0

// Repository is the persistence contract for properties.  See the client
// package for the shared connection and transaction discipline.
type Repository interface {
	// Create validates p, rejects it when its identifier is already set,
	// inserts a row, and assigns the generated identifier back to p.
	Create(ctx context.Context, p *Property) error

	// Update validates p, requires a set identifier, and overwrites the
	// matching row.  A missing row is reported as a not-found entity error.
	Update(ctx context.Context, p *Property) error

	// Delete validates p, requires a set identifier, and removes the
	// matching row.  A missing row is reported as a not-found entity error.
	Delete(ctx context.Context, p *Property) error

	// GetAll returns every stored property in storage order.
	GetAll(ctx context.Context) ([]*Property, error)

	// FindByAddress returns properties whose address contains the given
	// substring, case-insensitively.
	FindByAddress(ctx context.Context, address string) ([]*Property, error)

	// FindByPrice returns properties whose price lies within the inclusive
	// band [price-PriceBand, price+PriceBand].  A non-positive price is an
	// argument error raised before any store interaction.
	FindByPrice(ctx context.Context, price float64) ([]*Property, error)

	// GetByID returns the property with the given identifier, or nil when
	// no such property exists.
	GetByID(ctx context.Context, id int64) (*Property, error)
}
