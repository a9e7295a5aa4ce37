package lattice

import (
	"math"
)

// degenerateAcceptance is the flip probability for a zero-cost move.
const degenerateAcceptance = 0.5

// Delta returns 2*s*(left+right) for the site at index, proportional to
// the energy change of flipping it under ferromagnetic nearest-neighbor
// coupling.
func (c *Chain) Delta(index int) (int, error) {
	left, right, err := c.NeighborsOf(index)
	if err != nil {
		return 0, err
	}
	s := c.spins[index]
	return 2 * int(s) * (int(left) + int(right)), nil
}

// AttemptFlip applies the Metropolis rule to the site at index and reports
// whether the spin was flipped.
//
//	delta <  0: always flip
//	delta == 0: flip with probability 1/2
//	delta >  0: flip with probability exp(-betaJ*delta)
//
// The zero case is its own branch; exp(0) = 1 would accept every
// degenerate move.
func (c *Chain) AttemptFlip(index int, betaJ float64) (bool, error) {
	delta, err := c.Delta(index)
	if err != nil {
		return false, err
	}

	var accept bool
	switch {
	case delta < 0:
		accept = true
	case delta == 0:
		accept = c.rng.UniformReal(0, 1) < degenerateAcceptance
	default:
		accept = c.rng.UniformReal(0, 1) < math.Exp(-betaJ*float64(delta))
	}

	if accept {
		c.spins[index] = c.spins[index].Flipped()
	}
	return accept, nil
}
