package protocol

import "fmt"

// ratioIDLen is the fixed width of a ratio preset identifier on the wire.
const ratioIDLen = 3

// Ratio identifies one aspect-ratio preset slot by its three-digit code,
// e.g. "235" for 2.35:1. The zero value is not a valid Ratio; construct
// one with NewRatio.
type Ratio struct {
	id string
}

// NewRatio validates id and returns it as a Ratio value. The identifier
// must be exactly three ASCII digits.
func NewRatio(id string) (Ratio, error) {
	if len(id) != ratioIDLen {
		return Ratio{}, fmt.Errorf("%w: %q must be three digits long", ErrInvalidRatio, id)
	}

	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return Ratio{}, fmt.Errorf("%w: %q must be numeric", ErrInvalidRatio, id)
		}
	}

	return Ratio{id: id}, nil
}

// ID returns the three-digit identifier.
func (r Ratio) ID() string { return r.id }

// String returns the three-digit identifier.
func (r Ratio) String() string { return r.id }
