package lattice

import (
	"errors"
	"testing"

	"isingmc/domain/core"
)

func TestSpin(t *testing.T) {
	if !Up.Valid() || !Down.Valid() {
		t.Error("Up and Down must be valid")
	}
	if Spin(0).Valid() || Spin(2).Valid() {
		t.Error("only ±1 are valid spins")
	}
	if Up.Flipped() != Down || Down.Flipped() != Up {
		t.Error("Flipped must invert the spin")
	}
	if Up.String() != "1" || Down.String() != "-1" {
		t.Errorf("unexpected string forms %q %q", Up, Down)
	}
}

func TestParseSpin(t *testing.T) {
	for _, v := range []int{1, -1} {
		s, err := ParseSpin(v)
		if err != nil || int(s) != v {
			t.Errorf("ParseSpin(%d) = %v, %v", v, s, err)
		}
	}
	for _, v := range []int{0, 2, -2, 255} {
		if _, err := ParseSpin(v); !errors.Is(err, core.ErrInvalidSpin) {
			t.Errorf("ParseSpin(%d) should fail with ErrInvalidSpin, got %v", v, err)
		}
	}
}
