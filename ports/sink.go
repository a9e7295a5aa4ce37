package ports

import (
	"isingmc/domain/run"
)

// SampleSink consumes the per-step samples of a simulation run.
// A sink has a single writer and is append-only.
type SampleSink interface {
	// WriteSample externalizes one sample; the sample's Spins slice is only
	// valid for the duration of the call
	WriteSample(sample run.Sample) error

	// Close flushes buffered samples and releases the destination
	Close() error
}
