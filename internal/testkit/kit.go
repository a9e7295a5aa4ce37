package testkit

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"isingmc/domain/lattice"

	"github.com/stretchr/testify/mock"
)

// MockRandomSource is a testify mock satisfying ports.RandomSource
type MockRandomSource struct {
	mock.Mock
}

func (m *MockRandomSource) UniformReal(low, high float64) float64 {
	args := m.Called(low, high)
	return args.Get(0).(float64)
}

func (m *MockRandomSource) UniformInt(low, high int) int {
	args := m.Called(low, high)
	return args.Int(0)
}

// ScriptedSource replays fixed draws, cycling when a script runs out.
// An empty script yields low.
type ScriptedSource struct {
	Reals []float64
	Ints  []int

	realCalls int
	intCalls  int

	// IntBounds records the [low, high] of every UniformInt call
	IntBounds [][2]int
}

func (s *ScriptedSource) UniformReal(low, high float64) float64 {
	n := s.realCalls
	s.realCalls++
	if len(s.Reals) == 0 {
		return low
	}
	return low + s.Reals[n%len(s.Reals)]*(high-low)
}

func (s *ScriptedSource) UniformInt(low, high int) int {
	s.IntBounds = append(s.IntBounds, [2]int{low, high})
	n := s.intCalls
	s.intCalls++
	if len(s.Ints) == 0 {
		return low
	}
	return s.Ints[n%len(s.Ints)]
}

// RealCalls returns how many real draws were made
func (s *ScriptedSource) RealCalls() int { return s.realCalls }

// IntCalls returns how many integer draws were made
func (s *ScriptedSource) IntCalls() int { return s.intCalls }

// Spins converts ±1 ints into lattice spins
func Spins(values ...int) []lattice.Spin {
	out := make([]lattice.Spin, len(values))
	for i, v := range values {
		out[i] = lattice.Spin(v)
	}
	return out
}

// NewChain builds a chain in the given configuration or fails the test
func NewChain(t testing.TB, rng lattice.Source, values ...int) *lattice.Chain {
	t.Helper()
	c, err := lattice.FromSpins(Spins(values...), rng)
	if err != nil {
		t.Fatalf("failed to build chain: %v", err)
	}
	return c
}

// OutputPath returns a path for a sample file inside a per-test temp dir
func OutputPath(t testing.TB, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

// ReadLines returns the lines of a written sample file
func ReadLines(t testing.TB, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return lines
}

// ReadMagnetizations parses a magnetization-mode sample file
func ReadMagnetizations(t testing.TB, path string) []float64 {
	t.Helper()
	lines := ReadLines(t, path)
	out := make([]float64, len(lines))
	for i, line := range lines {
		v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			t.Fatalf("line %d of %s is not a number: %q", i+1, path, line)
		}
		out[i] = v
	}
	return out
}
