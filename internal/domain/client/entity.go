// Package client defines the client entity, its validation rules, and the
// repository contract for persisting it.
package client

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/estatehub/propevd/pkg/errors"
)

var (
	nameCharsRe  = regexp.MustCompile(`^[a-zA-Z ]+$`)
	phoneCharsRe = regexp.MustCompile(`^[0-9+ ]+$`)
)

// Client is a person that signs contracts for properties.  ID is nil until
// the entity has been persisted; the repository assigns it on Create and it
// is immutable afterwards.
type Client struct {
	ID          *int64 `json:"id"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

// Equal reports whether two clients are the same entity.  Client identity is
// carried by the assigned identifier alone.
func (c *Client) Equal(other *Client) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.ID != nil && other.ID != nil && *c.ID == *other.ID
}

func (c *Client) String() string {
	return fmt.Sprintf("%s, phone number: %s", c.FullName, c.PhoneNumber)
}

// Validate checks the client's field invariants and returns the first
// violated rule.  The order is fixed: nil check, name token count, name
// characters, phone length, phone characters.  A nil client is a caller
// mistake (argument error); everything else is an entity-validity error.
// Validate has no side effects and never touches the store.
func Validate(c *Client) error {
	if c == nil {
		return errors.InvalidArgument("client is nil")
	}
	if len(strings.Fields(c.FullName)) != 2 {
		return errors.InvalidEntity("client full name must consist of a name and a surname")
	}
	if !nameCharsRe.MatchString(c.FullName) {
		return errors.InvalidEntity("client full name may contain only letters and spaces")
	}
	if len(c.PhoneNumber) < 10 || len(c.PhoneNumber) > 13 {
		return errors.InvalidEntity("client phone number must be 10 to 13 characters long")
	}
	if !phoneCharsRe.MatchString(c.PhoneNumber) {
		return errors.InvalidEntity("client phone number may contain only digits, plus and spaces")
	}
	return nil
}
