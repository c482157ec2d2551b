// Package property defines the property entity, its closed type enumeration,
// validation rules, and the repository contract for persisting it.
package property

import (
	"fmt"

	"github.com/estatehub/propevd/pkg/errors"
)

// Property is a real-estate unit offered under contracts.  ID is nil until
// the entity has been persisted.
type Property struct {
	ID      *int64  `json:"id"`
	Area    float64 `json:"area"`
	Price   float64 `json:"price"`
	Address string  `json:"address"`
	Type    Type    `json:"type"`
}

// Equal reports whether two properties are the same entity.  Property
// identity is carried by identifier, address, type, and area.
func (p *Property) Equal(other *Property) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.ID == nil || other.ID == nil || *p.ID != *other.ID {
		return false
	}
	return p.Address == other.Address && p.Type == other.Type && p.Area == other.Area
}

func (p *Property) String() string {
	return fmt.Sprintf("%s, area: %.2f m^2, price: %.2f, type: %s", p.Address, p.Area, p.Price, p.Type)
}

// Validate checks the property's field invariants and returns the first
// violated rule, in fixed order: nil check, positive area, positive price,
// type set, address non-empty.
func Validate(p *Property) error {
	if p == nil {
		return errors.InvalidArgument("property is nil")
	}
	if p.Area <= 0 {
		return errors.InvalidEntity("property area must be positive")
	}
	if p.Price <= 0 {
		return errors.InvalidEntity("property price must be positive")
	}
	if p.Type == "" {
		return errors.InvalidEntity("property type is not set")
	}
	if !p.Type.Valid() {
		return errors.Newf(errors.KindInvalidEntity, "property type %q is not recognized", string(p.Type))
	}
	if p.Address == "" {
		return errors.InvalidEntity("property address must not be empty")
	}
	return nil
}
