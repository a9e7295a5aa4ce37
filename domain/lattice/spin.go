package lattice

import (
	"fmt"

	"isingmc/domain/core"
)

// Spin is the two-valued state of one lattice site.
type Spin int8

const (
	Up   Spin = 1
	Down Spin = -1
)

// Valid reports whether s is exactly +1 or -1
func (s Spin) Valid() bool {
	return s == Up || s == Down
}

// Flipped returns the opposite spin
func (s Spin) Flipped() Spin {
	return -s
}

func (s Spin) String() string {
	if s == Up {
		return "1"
	}
	if s == Down {
		return "-1"
	}
	return fmt.Sprintf("Spin(%d)", int8(s))
}

// ParseSpin converts +1/-1 into a Spin.
func ParseSpin(v int) (Spin, error) {
	if v != int(Up) && v != int(Down) {
		return 0, fmt.Errorf("%w: got %d", core.ErrInvalidSpin, v)
	}
	return Spin(v), nil
}
