package benchdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"allocator-bench/internal/logging"

	"github.com/sirupsen/logrus"
)

const utf8BOM = "\ufeff"

// Load reads the benchmark CSV at path.
func Load(path string) (*Table, error) {
	logger := logging.GetLogger()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputMissing, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	table, err := Read(f, path)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"input":      path,
		"rows":       table.Len(),
		"tests":      len(table.TestOrder()),
		"allocators": len(table.AllocatorOrder()),
	}).Info("Loaded benchmark table")

	return table, nil
}

// Read parses a benchmark table from r. source only appears in error messages.
func Read(r io.Reader, source string) (*Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", source, ErrEmptyTable)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInputMalformed, source, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	idx, err := requiredIndices(header)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputMalformed, source, err)
	}

	table := &Table{
		Source:  source,
		Columns: header,
	}

	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInputMalformed, source, err)
		}

		rec, err := parseRecord(row, idx)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrInputMalformed, source, line, err)
		}
		table.Records = append(table.Records, rec)
	}

	if len(table.Records) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyTable)
	}

	table.fixOrder()
	return table, nil
}

type columnIndices struct {
	test, allocator, timeMs, kops, peakMem int
}

func requiredIndices(header []string) (columnIndices, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := positions[name]; dup {
			return columnIndices{}, fmt.Errorf("duplicate column %q", name)
		}
		positions[name] = i
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := positions[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return columnIndices{}, fmt.Errorf("missing required columns %v", missing)
	}

	return columnIndices{
		test:      positions[ColumnTest],
		allocator: positions[ColumnAllocator],
		timeMs:    positions[ColumnTimeMs],
		kops:      positions[ColumnKOpsPerSec],
		peakMem:   positions[ColumnPeakMemoryMB],
	}, nil
}

func parseRecord(row []string, idx columnIndices) (Record, error) {
	timeMs, err := parseMeasurement(row[idx.timeMs], ColumnTimeMs)
	if err != nil {
		return Record{}, err
	}
	kops, err := parseMeasurement(row[idx.kops], ColumnKOpsPerSec)
	if err != nil {
		return Record{}, err
	}
	peakMem, err := parseMeasurement(row[idx.peakMem], ColumnPeakMemoryMB)
	if err != nil {
		return Record{}, err
	}

	return Record{
		Test:         row[idx.test],
		Allocator:    row[idx.allocator],
		TimeMs:       timeMs,
		KOpsPerSec:   kops,
		PeakMemoryMB: peakMem,
		raw:          row,
	}, nil
}

// empty cells are missing measurements; every other cell must be a finite number
func parseMeasurement(cell, column string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %q is not a number", column, cell)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("column %s: %q is not a finite number", column, cell)
	}
	return v, nil
}
