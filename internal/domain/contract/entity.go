// Package contract defines the contract entity binding a client to a
// property, its validation rules, and the repository contract.
package contract

import (
	"fmt"
	"time"

	"github.com/estatehub/propevd/internal/domain/client"
	"github.com/estatehub/propevd/internal/domain/property"
	"github.com/estatehub/propevd/pkg/errors"
)

// Contract records that a client signed for a property on a given date.
// Client and Property are held by value reference: both must already be
// persisted with assigned identifiers before a contract referencing them is
// created, and neither reference changes after creation.
type Contract struct {
	ID            *int64             `json:"id"`
	Client        *client.Client     `json:"client"`
	Property      *property.Property `json:"property"`
	DateOfSigning time.Time          `json:"date_of_signing"`
}

// Equal reports whether two contracts are the same entity.  Contract
// identity is carried by all four fields.
func (c *Contract) Equal(other *Contract) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.ID == nil || other.ID == nil || *c.ID != *other.ID {
		return false
	}
	return c.Client.Equal(other.Client) &&
		c.Property.Equal(other.Property) &&
		sameDate(c.DateOfSigning, other.DateOfSigning)
}

func (c *Contract) String() string {
	return fmt.Sprintf("contract between %v and %v signed %s",
		c.Client, c.Property, c.DateOfSigning.Format("2006-01-02"))
}

// sameDate compares two instants by calendar date, ignoring the time of day.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Validate checks the contract's field invariants and returns the first
// violated rule, in fixed order: nil check, client set, property set,
// signing date set, signing date not in the future.
func Validate(c *Contract) error {
	if c == nil {
		return errors.InvalidArgument("contract is nil")
	}
	if c.Client == nil {
		return errors.InvalidEntity("contract has no client")
	}
	if c.Property == nil {
		return errors.InvalidEntity("contract has no property")
	}
	if c.DateOfSigning.IsZero() {
		return errors.InvalidEntity("contract date of signing is not set")
	}
	if afterToday(c.DateOfSigning) {
		return errors.InvalidEntity("contract date of signing is in the future")
	}
	return nil
}

// afterToday reports whether t falls on a calendar date after today.
// Signing earlier today is valid; tomorrow is not.
func afterToday(t time.Time) bool {
	ty, tm, td := t.Date()
	ny, nm, nd := time.Now().Date()
	signed := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return signed.After(today)
}
