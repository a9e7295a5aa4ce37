// Package sink writes and reads the line-oriented sample files produced by
// simulation runs. Each line describes the chain before one update
// attempt; there is no header and no trailer.
package sink

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"isingmc/domain/run"
	"isingmc/internal/errors"
)

// FileSink writes one line per sample to a file
type FileSink struct {
	path string
	file *os.File
	w    *Writer
}

// Create opens path for writing, truncating it. Failure to open is
// reported here, before any simulation work.
func Create(path string, mode run.OutputMode) (*FileSink, error) {
	if _, err := run.ParseOutputMode(string(mode)); err != nil {
		return nil, errors.Wrap(errors.InvalidInput(err.Error()), "cannot create sample sink")
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.IOError("cannot open output file "+path, err)
	}
	return &FileSink{
		path: path,
		file: f,
		w:    NewWriter(f, mode),
	}, nil
}

// Path returns the destination path
func (s *FileSink) Path() string {
	return s.path
}

// WriteSample appends one line
func (s *FileSink) WriteSample(sample run.Sample) error {
	if err := s.w.WriteSample(sample); err != nil {
		return errors.IOError("cannot write to "+s.path, err)
	}
	return nil
}

// Close flushes buffered lines and closes the file
func (s *FileSink) Close() error {
	flushErr := s.w.Flush()
	closeErr := s.file.Close()
	if flushErr != nil {
		return errors.IOError("cannot flush "+s.path, flushErr)
	}
	if closeErr != nil {
		return errors.IOError("cannot close "+s.path, closeErr)
	}
	return nil
}

// Writer formats samples onto any io.Writer
type Writer struct {
	bw   *bufio.Writer
	mode run.OutputMode
	buf  []byte
}

// NewWriter returns a buffered sample writer; call Flush when done
func NewWriter(w io.Writer, mode run.OutputMode) *Writer {
	return &Writer{
		bw:   bufio.NewWriterSize(w, 64*1024),
		mode: mode,
		buf:  make([]byte, 0, 64),
	}
}

// WriteSample formats one line. In magnetization mode the line is the
// shortest decimal form of the magnetization (1, 0.96, -0.04). In spins
// mode it is the space-separated spin values. In both mode the
// magnetization comes first, then the spins.
func (w *Writer) WriteSample(sample run.Sample) error {
	line := w.buf[:0]
	if w.mode.NeedsMagnetization() {
		line = strconv.AppendFloat(line, sample.Magnetization, 'g', -1, 64)
	}
	if w.mode.NeedsSpins() {
		for i, s := range sample.Spins {
			if i > 0 || w.mode.NeedsMagnetization() {
				line = append(line, ' ')
			}
			line = strconv.AppendInt(line, int64(s), 10)
		}
	}
	line = append(line, '\n')
	w.buf = line

	_, err := w.bw.Write(line)
	return err
}

// Flush writes any buffered lines
func (w *Writer) Flush() error {
	return w.bw.Flush()
}
