package client

import "context"

// Repository is the persistence contract for clients.  Every call acquires
// one pooled connection for its duration and releases it on all exit paths;
// mutating calls run inside a transaction that commits on success and rolls
// back on any failure.  Implementations are safe for concurrent use to the
// extent the underlying connection pool is.
type Repository interface {
	// Create validates c, rejects it when its identifier is already set,
	// inserts a row, and assigns the generated identifier back to c.
	Create(ctx context.Context, c *Client) error

	// Update validates c, requires a set identifier, and overwrites the
	// matching row.  A missing row is reported as a not-found entity error.
	Update(ctx context.Context, c *Client) error

	// Delete validates c, requires a set identifier, and removes the
	// matching row.  A missing row is reported as a not-found entity error.
	Delete(ctx context.Context, c *Client) error

	// GetAll returns every stored client in storage order.
	GetAll(ctx context.Context) ([]*Client, error)

	// FindByName returns clients whose full name contains the given
	// substring, case-insensitively.  No match yields an empty slice.
	FindByName(ctx context.Context, name string) ([]*Client, error)

	// GetByID returns the client with the given identifier, or nil when no
	// such client exists.  Absence is a normal result, not an error.
	GetByID(ctx context.Context, id int64) (*Client, error)
}
