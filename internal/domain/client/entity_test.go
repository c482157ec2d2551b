package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatehub/propevd/pkg/errors"
)

func validClient() *Client {
	return &Client{FullName: "Name Surname", PhoneNumber: "+420915111999"}
}

func TestValidateValid(t *testing.T) {
	assert.NoError(t, Validate(validClient()))
}

func TestValidateNil(t *testing.T) {
	err := Validate(nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestValidateOrderAndRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Client)
		message string
	}{
		{
			name:    "single name token",
			mutate:  func(c *Client) { c.FullName = "Name" },
			message: "client full name must consist of a name and a surname",
		},
		{
			name:    "empty name",
			mutate:  func(c *Client) { c.FullName = "" },
			message: "client full name must consist of a name and a surname",
		},
		{
			name:    "three name tokens",
			mutate:  func(c *Client) { c.FullName = "Name Middle Surname" },
			message: "client full name must consist of a name and a surname",
		},
		{
			name:    "digit in name",
			mutate:  func(c *Client) { c.FullName = "Name Surn4me" },
			message: "client full name may contain only letters and spaces",
		},
		{
			name:    "diacritics in name",
			mutate:  func(c *Client) { c.FullName = "Martin Balúcha" },
			message: "client full name may contain only letters and spaces",
		},
		{
			name:    "phone too short",
			mutate:  func(c *Client) { c.PhoneNumber = "123456789" },
			message: "client phone number must be 10 to 13 characters long",
		},
		{
			name:    "phone too long",
			mutate:  func(c *Client) { c.PhoneNumber = "12345678901234" },
			message: "client phone number must be 10 to 13 characters long",
		},
		{
			name:    "empty phone",
			mutate:  func(c *Client) { c.PhoneNumber = "" },
			message: "client phone number must be 10 to 13 characters long",
		},
		{
			name:    "letter in phone",
			mutate:  func(c *Client) { c.PhoneNumber = "+421905k2598" },
			message: "client phone number may contain only digits, plus and spaces",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validClient()
			tt.mutate(c)

			err := Validate(c)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidEntity(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

// The name check must fire before the phone check so callers always see the
// first violated rule.
func TestValidateReportsFirstViolation(t *testing.T) {
	c := &Client{FullName: "Name", PhoneNumber: "bad"}
	err := Validate(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name and a surname")
}

func TestEqualByIdentifierOnly(t *testing.T) {
	id := int64(5)
	other := int64(6)

	a := &Client{ID: &id, FullName: "Name Surname", PhoneNumber: "0123456789"}
	b := &Client{ID: &id, FullName: "Other Person", PhoneNumber: "9876543210"}
	c := &Client{ID: &other, FullName: "Name Surname", PhoneNumber: "0123456789"}
	unsaved := &Client{FullName: "Name Surname", PhoneNumber: "0123456789"}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(unsaved))
	assert.False(t, unsaved.Equal(unsaved2()))
}

func unsaved2() *Client {
	return &Client{FullName: "Name Surname", PhoneNumber: "0123456789"}
}
