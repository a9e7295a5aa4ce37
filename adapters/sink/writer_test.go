package sink

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"isingmc/domain/run"
	"isingmc/internal/errors"
	"isingmc/internal/testkit"
	"isingmc/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.SampleSink = (*FileSink)(nil)

func TestWriter_Formats(t *testing.T) {
	samples := []run.Sample{
		{Step: 0, Magnetization: 1, Spins: testkit.Spins(1, 1, 1, 1)},
		{Step: 1, Magnetization: 0.5, Spins: testkit.Spins(1, -1, 1, 1)},
		{Step: 2, Magnetization: -0.04, Spins: testkit.Spins(-1, -1, 1, -1)},
	}

	tests := []struct {
		mode run.OutputMode
		want string
	}{
		{run.OutputMagnetization, "1\n0.5\n-0.04\n"},
		{run.OutputSpins, "1 1 1 1\n1 -1 1 1\n-1 -1 1 -1\n"},
		{run.OutputBoth, "1 1 1 1 1\n0.5 1 -1 1 1\n-0.04 -1 -1 1 -1\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf, tt.mode)
			for _, s := range samples {
				require.NoError(t, w.WriteSample(s))
			}
			require.NoError(t, w.Flush())
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriter_MagnetizationIgnoresSpins(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, run.OutputMagnetization)
	require.NoError(t, w.WriteSample(run.Sample{Magnetization: 0.96}))
	require.NoError(t, w.Flush())
	assert.Equal(t, "0.96\n", buf.String())
}

func TestFileSink_WritesFile(t *testing.T) {
	path := testkit.OutputPath(t, "m.dat")

	s, err := Create(path, run.OutputMagnetization)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())

	for _, m := range []float64{1, 0.96, 0.92} {
		require.NoError(t, s.WriteSample(run.Sample{Magnetization: m}))
	}
	require.NoError(t, s.Close())

	assert.Equal(t, []string{"1", "0.96", "0.92"}, testkit.ReadLines(t, path))
}

func TestCreate_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "m.dat")

	_, err := Create(path, run.OutputMagnetization)
	require.Error(t, err)
	assert.Equal(t, errors.CodeIO, errors.GetCode(err))
}

func TestCreate_UnknownMode(t *testing.T) {
	_, err := Create(testkit.OutputPath(t, "m.dat"), "csv")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestRead(t *testing.T) {
	tests := []struct {
		name  string
		mode  run.OutputMode
		input string
		want  []float64
	}{
		{"magnetization", run.OutputMagnetization, "1\n0.5\n\n-0.25\n", []float64{1, 0.5, -0.25}},
		{"both", run.OutputBoth, "1 1 1\n0 1 -1\n", []float64{1, 0}},
		{"spins recomputes magnetization", run.OutputSpins, "1 1 1 1\n1 -1 -1 -1\n", []float64{1, -0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input), tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(strings.NewReader("1\nabc\n"), run.OutputMagnetization)
	require.Error(t, err)
	assert.Equal(t, errors.CodeParse, errors.GetCode(err))
	assert.Contains(t, err.Error(), "line 2")

	_, err = Read(strings.NewReader("1 0 1\n"), run.OutputSpins)
	assert.Equal(t, errors.CodeParse, errors.GetCode(err))

	_, err = ReadFile(filepath.Join(t.TempDir(), "absent.dat"), run.OutputMagnetization)
	assert.Equal(t, errors.CodeIO, errors.GetCode(err))
}

func TestRead_ModeMismatch(t *testing.T) {
	tests := []struct {
		name  string
		mode  run.OutputMode
		input string
	}{
		{"spins read as magnetization", run.OutputMagnetization, "1 1 1 1\n1 -1 1 1\n"},
		{"both read as magnetization", run.OutputMagnetization, "1 1 1 1 1\n"},
		{"magnetization read as both", run.OutputBoth, "0.5\n"},
		{"both with bad spin", run.OutputBoth, "0.5 1 0 1\n"},
		{"both with fractional spin", run.OutputBoth, "0.5 1 0.5 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.mode)
			require.Error(t, err)
			assert.Equal(t, errors.CodeParse, errors.GetCode(err))
			assert.Contains(t, err.Error(), "line 1")
		})
	}
}

func TestRead_SpinsModeAcceptsSpinsFile(t *testing.T) {
	got, err := Read(strings.NewReader("1 -1 1 1\n"), run.OutputSpins)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5}, got)
}

func TestReadFile_MissingIsIOError(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.dat"), run.OutputMagnetization)
	assert.Equal(t, errors.CodeIO, errors.GetCode(err))
}

func TestReadFile_AfterWrite(t *testing.T) {
	path := testkit.OutputPath(t, "both.dat")
	s, err := Create(path, run.OutputBoth)
	require.NoError(t, err)
	require.NoError(t, s.WriteSample(run.Sample{Magnetization: 0.5, Spins: testkit.Spins(1, 1, 1, -1)}))
	require.NoError(t, s.WriteSample(run.Sample{Magnetization: 0, Spins: testkit.Spins(1, -1, 1, -1)}))
	require.NoError(t, s.Close())

	series, err := ReadFile(path, run.OutputBoth)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0}, series)
}
