package ports

// RandomSource provides the uniform draws the Metropolis engine and the
// driver consume. Implementations are not required to be goroutine-safe;
// each run owns its own source.
type RandomSource interface {
	// UniformReal returns a value drawn uniformly from [low, high)
	UniformReal(low, high float64) float64

	// UniformInt returns an integer drawn uniformly from the closed range [low, high]
	UniformInt(low, high int) int
}
