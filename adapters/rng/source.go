// Package rng provides the random sources behind ports.RandomSource.
//
// Three flavors exist: a lifetime-scoped PCG stream seeded once from OS
// entropy (the default), a per-call source that seeds a brand new
// generator from OS entropy on every draw, and a seeded stream for
// reproducible runs. None of them is safe for concurrent use; give each
// run its own source.
package rng

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strings"

	"isingmc/ports"

	"gonum.org/v1/gonum/stat/distuv"
)

// Mode selects how generators are scoped
type Mode string

const (
	ModeLifetime Mode = "lifetime"
	ModePerCall  Mode = "per-call"
)

// ParseMode parses a CLI/env value into a Mode
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeLifetime, ModePerCall:
		return m, nil
	}
	return "", fmt.Errorf("unknown rng mode %q (want %s or %s)", s, ModeLifetime, ModePerCall)
}

// New returns the source for mode. A non-zero seed selects a deterministic
// lifetime stream; per-call sources cannot be seeded.
func New(mode Mode, seed uint64) (ports.RandomSource, error) {
	switch mode {
	case ModeLifetime:
		if seed != 0 {
			return NewSeededSource(seed), nil
		}
		return NewLifetimeSource(), nil
	case ModePerCall:
		if seed != 0 {
			return nil, fmt.Errorf("rng mode %s draws fresh entropy on every call and cannot be seeded", ModePerCall)
		}
		return NewPerCallSource(), nil
	}
	return nil, fmt.Errorf("unknown rng mode %q", mode)
}

// LifetimeSource draws from one PCG generator for its whole lifetime
type LifetimeSource struct {
	src *rand.PCG
	rnd *rand.Rand
}

// NewLifetimeSource seeds a PCG generator from OS entropy
func NewLifetimeSource() *LifetimeSource {
	hi, lo := entropySeed()
	return newPCGSource(hi, lo)
}

// NewSeededSource returns a deterministic stream; equal seeds give equal draws
func NewSeededSource(seed uint64) *LifetimeSource {
	return newPCGSource(seed, splitmix(seed))
}

func newPCGSource(hi, lo uint64) *LifetimeSource {
	src := rand.NewPCG(hi, lo)
	return &LifetimeSource{src: src, rnd: rand.New(src)}
}

// UniformReal returns a value drawn uniformly from [low, high)
func (s *LifetimeSource) UniformReal(low, high float64) float64 {
	return uniformReal(s.src, low, high)
}

// UniformInt returns an integer drawn uniformly from [low, high]
func (s *LifetimeSource) UniformInt(low, high int) int {
	return uniformInt(s.rnd, low, high)
}

// PerCallSource constructs a fresh entropy-seeded generator for every draw,
// so no two draws come from a shared stream. Correct but slower than
// LifetimeSource.
type PerCallSource struct{}

// NewPerCallSource returns a PerCallSource
func NewPerCallSource() *PerCallSource {
	return &PerCallSource{}
}

func (PerCallSource) UniformReal(low, high float64) float64 {
	return uniformReal(freshPCG(), low, high)
}

func (PerCallSource) UniformInt(low, high int) int {
	return uniformInt(rand.New(freshPCG()), low, high)
}

func freshPCG() *rand.PCG {
	hi, lo := entropySeed()
	return rand.NewPCG(hi, lo)
}

func uniformReal(src rand.Source, low, high float64) float64 {
	if high <= low {
		return low
	}
	v := distuv.Uniform{Min: low, Max: high, Src: src}.Rand()
	// (high-low)*u + low can round up to high for u close to 1
	if v >= high {
		return low
	}
	return v
}

func uniformInt(rnd *rand.Rand, low, high int) int {
	if high <= low {
		return low
	}
	return low + rnd.IntN(high-low+1)
}

// entropySeed reads 128 bits from the OS entropy source.
func entropySeed() (uint64, uint64) {
	var b [16]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		// crypto/rand.Read only fails when the platform has no entropy source
		panic(fmt.Sprintf("rng: reading OS entropy: %v", err))
	}
	return binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:])
}

// splitmix derives the second PCG seed word from the first.
func splitmix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
