package property

import (
	"strings"

	"github.com/estatehub/propevd/pkg/errors"
)

// Type is the closed enumeration of property kinds.  Values are stored in
// the database verbatim; ParseType is the only sanctioned way to produce a
// Type from external input.
type Type string

const (
	FamilyHouse   Type = "FAMILY_HOUSE"
	OneRoomFlat   Type = "ONE_ROOM_FLAT"
	TwoRoomFlat   Type = "TWO_ROOM_FLAT"
	ThreeRoomFlat Type = "THREE_ROOM_FLAT"
	Hut           Type = "HUT"
)

// Types lists every valid Type, in declaration order.
var Types = []Type{FamilyHouse, OneRoomFlat, TwoRoomFlat, ThreeRoomFlat, Hut}

// Valid reports whether t is one of the declared enumeration values.
func (t Type) Valid() bool {
	switch t {
	case FamilyHouse, OneRoomFlat, TwoRoomFlat, ThreeRoomFlat, Hut:
		return true
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// ParseType converts free-form input into a Type.  Input is upper-cased
// before matching; unrecognized input fails with an argument error rather
// than producing an open-ended value.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", errors.Newf(errors.KindInvalidArgument, "unknown property type %q", s)
	}
	return t, nil
}
