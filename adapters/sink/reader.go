package sink

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"isingmc/domain/run"
	"isingmc/internal/errors"
)

// ReadFile returns the magnetization series stored in a sample file
func ReadFile(path string, mode run.OutputMode) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IOError("cannot open sample file "+path, err)
	}
	defer f.Close()

	series, err := Read(f, mode)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", path)
	}
	return series, nil
}

// Read parses a sample stream written in mode. For spins-only files the
// magnetization is recomputed from each spin vector.
func Read(r io.Reader, mode run.OutputMode) ([]float64, error) {
	if _, err := run.ParseOutputMode(string(mode)); err != nil {
		return nil, errors.InvalidInput(err.Error())
	}

	var series []float64
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		m, err := parseLine(line, mode)
		if err != nil {
			return nil, errors.ParseError(fmt.Sprintf("line %d", lineNo), err)
		}
		series = append(series, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.IOError("read failed", err)
	}
	return series, nil
}

func parseLine(line string, mode run.OutputMode) (float64, error) {
	fields := strings.Fields(line)
	switch mode {
	case run.OutputMagnetization:
		if len(fields) != 1 {
			return 0, fmt.Errorf("expected 1 field, got %d", len(fields))
		}
		return strconv.ParseFloat(fields[0], 64)
	case run.OutputBoth:
		if len(fields) < 2 {
			return 0, fmt.Errorf("expected magnetization and spins, got %d fields", len(fields))
		}
		if _, err := spinMean(fields[1:]); err != nil {
			return 0, err
		}
		return strconv.ParseFloat(fields[0], 64)
	}
	return spinMean(fields)
}

func spinMean(fields []string) (float64, error) {
	sum := 0
	for _, field := range fields {
		v, err := strconv.Atoi(field)
		if err != nil {
			return 0, err
		}
		if v != 1 && v != -1 {
			return 0, fmt.Errorf("spin value %d is not ±1", v)
		}
		sum += v
	}
	return float64(sum) / float64(len(fields)), nil
}
