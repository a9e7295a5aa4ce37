// Package lattice implements a one-dimensional Ising spin chain with
// periodic boundary conditions and the Metropolis single-site update.
package lattice

import (
	"fmt"

	"isingmc/domain/core"
)

// Source is the slice of the random source the engine draws from.
// ports.RandomSource satisfies it.
type Source interface {
	UniformReal(low, high float64) float64
}

// Chain owns a fixed-length ring of spins. The last site neighbors the
// first. Its length never changes and every site is always Up or Down.
//
// A Chain is not safe for concurrent use.
type Chain struct {
	spins []Spin
	rng   Source
}

// NewChain creates a chain of size sites, all Up.
func NewChain(size int, rng Source) (*Chain, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", core.ErrInvalidLatticeSize, size)
	}
	if rng == nil {
		return nil, core.ErrNilRandomSource
	}

	c := &Chain{
		spins: make([]Spin, size),
		rng:   rng,
	}
	c.fill(Up)
	return c, nil
}

// FromSpins creates a chain holding a copy of spins.
func FromSpins(spins []Spin, rng Source) (*Chain, error) {
	c, err := NewChain(len(spins), rng)
	if err != nil {
		return nil, err
	}
	for i, s := range spins {
		if !s.Valid() {
			return nil, fmt.Errorf("%w: site %d holds %d", core.ErrInvalidSpin, i, s)
		}
		c.spins[i] = s
	}
	return c, nil
}

// Size returns the number of sites N
func (c *Chain) Size() int {
	return len(c.spins)
}

// InitializeOrdered sets every site to value (the ferromagnetic ground
// state for either orientation).
func (c *Chain) InitializeOrdered(value Spin) error {
	if !value.Valid() {
		return fmt.Errorf("%w: got %d", core.ErrInvalidSpin, value)
	}
	c.fill(value)
	return nil
}

// InitializeRandom assigns each site independently to Up or Down with
// probability 1/2.
func (c *Chain) InitializeRandom() {
	for i := range c.spins {
		if c.rng.UniformReal(0, 1) > 0.5 {
			c.spins[i] = Up
		} else {
			c.spins[i] = Down
		}
	}
}

// Spin returns the value at index.
func (c *Chain) Spin(index int) (Spin, error) {
	if err := c.checkIndex(index); err != nil {
		return 0, err
	}
	return c.spins[index], nil
}

// NeighborsOf returns the left and right neighbor values of index under
// periodic boundaries.
func (c *Chain) NeighborsOf(index int) (left, right Spin, err error) {
	if err := c.checkIndex(index); err != nil {
		return 0, 0, err
	}
	n := len(c.spins)
	return c.spins[(index-1+n)%n], c.spins[(index+1)%n], nil
}

// Magnetization returns the mean spin value, in [-1, +1].
func (c *Chain) Magnetization() float64 {
	sum := 0
	for _, s := range c.spins {
		sum += int(s)
	}
	return float64(sum) / float64(len(c.spins))
}

// AppendSpins appends the current spin values to dst and returns the
// extended slice. The chain's own storage is never handed out.
func (c *Chain) AppendSpins(dst []Spin) []Spin {
	return append(dst, c.spins...)
}

func (c *Chain) fill(value Spin) {
	for i := range c.spins {
		c.spins[i] = value
	}
}

func (c *Chain) checkIndex(index int) error {
	if index < 0 || index >= len(c.spins) {
		return core.NewIndexError(index, len(c.spins))
	}
	return nil
}
