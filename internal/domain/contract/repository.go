package contract

import (
	"context"

	"github.com/estatehub/propevd/internal/domain/client"
	"github.com/estatehub/propevd/internal/domain/property"
)

// Repository is the persistence contract for contracts.  Reads resolve the
// stored client and property identifiers back into full entities through
// the respective repositories, so a returned Contract always carries
// complete references.
type Repository interface {
	// Create validates c, rejects it when its identifier is already set,
	// inserts a row, and assigns the generated identifier back to c.
	Create(ctx context.Context, c *Contract) error

	// Update validates c, requires a set identifier, and overwrites the
	// signing date of the matching row.  The client and property references
	// are immutable after creation and are not written, though the whole
	// entity is still re-validated.
	Update(ctx context.Context, c *Contract) error

	// Delete validates c, requires a set identifier, and removes the
	// matching row.
	Delete(ctx context.Context, c *Contract) error

	// GetAll returns every stored contract in storage order.
	GetAll(ctx context.Context) ([]*Contract, error)

	// FindByClient returns contracts referencing the given client.  A nil
	// client is an argument error raised before any store interaction.
	FindByClient(ctx context.Context, c *client.Client) ([]*Contract, error)

	// FindByProperty returns contracts referencing the given property.  A
	// nil property is an argument error.
	FindByProperty(ctx context.Context, p *property.Property) ([]*Contract, error)

	// GetByID returns the contract with the given identifier, or nil when
	// no such contract exists.
	GetByID(ctx context.Context, id int64) (*Contract, error)

	// ExistsForClient reports whether any contract references the client
	// with the given identifier.  Presentation layers call this before
	// allowing a client deletion.
	ExistsForClient(ctx context.Context, clientID int64) (bool, error)

	// ExistsForProperty reports whether any contract references the
	// property with the given identifier.
	ExistsForProperty(ctx context.Context, propertyID int64) (bool, error)
}
