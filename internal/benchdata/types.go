package benchdata

import "math"

// Required column names of the benchmark table.
const (
	ColumnTest         = "Test"
	ColumnAllocator    = "Allocator"
	ColumnTimeMs       = "Time_ms"
	ColumnKOpsPerSec   = "KOps_per_sec"
	ColumnPeakMemoryMB = "Peak_Memory_MB"
)

var RequiredColumns = []string{
	ColumnTest,
	ColumnAllocator,
	ColumnTimeMs,
	ColumnKOpsPerSec,
	ColumnPeakMemoryMB,
}

// Metric selects one of the measured columns.
type Metric string

const (
	MetricTime       Metric = ColumnTimeMs
	MetricThroughput Metric = ColumnKOpsPerSec
	MetricPeakMemory Metric = ColumnPeakMemoryMB
)

// Record is one row of the benchmark table. A missing measurement is NaN.
type Record struct {
	Test         string
	Allocator    string
	TimeMs       float64
	KOpsPerSec   float64
	PeakMemoryMB float64

	// raw cells in Table.Columns order
	raw []string
}

func (r Record) Value(metric Metric) float64 {
	switch metric {
	case MetricTime:
		return r.TimeMs
	case MetricThroughput:
		return r.KOpsPerSec
	case MetricPeakMemory:
		return r.PeakMemoryMB
	}
	return math.NaN()
}

// Cell returns the verbatim cell for column index i.
func (r Record) Cell(i int) string {
	if i < 0 || i >= len(r.raw) {
		return ""
	}
	return r.raw[i]
}

// Table holds the records in source order together with the header.
type Table struct {
	Source  string
	Columns []string
	Records []Record

	testOrder      []string
	allocatorOrder []string
}

func (t *Table) Len() int {
	return len(t.Records)
}

// ColumnIndex returns the position of name in the header or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// ExtraColumns lists the header columns that are not required ones, in header order.
func (t *Table) ExtraColumns() []string {
	required := make(map[string]bool, len(RequiredColumns))
	for _, c := range RequiredColumns {
		required[c] = true
	}
	var extra []string
	for _, c := range t.Columns {
		if !required[c] {
			extra = append(extra, c)
		}
	}
	return extra
}
