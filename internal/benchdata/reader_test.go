package benchdata

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const exampleCSV = `Test,Allocator,Time_ms,KOps_per_sec,Peak_Memory_MB
Insert,Arena,12.5,800.0,64.0
Insert,Pool,9.1,1100.0,58.0
Lookup,Arena,3.2,3125.0,64.0
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Example(t *testing.T) {
	table, err := Load(writeFile(t, "combined.csv", exampleCSV))
	require.NoError(t, err)

	require.Equal(t, 3, table.Len())
	require.Equal(t, []string{"Insert", "Lookup"}, table.TestOrder())
	require.Equal(t, []string{"Arena", "Pool"}, table.AllocatorOrder())

	r := table.Records[1]
	require.Equal(t, "Insert", r.Test)
	require.Equal(t, "Pool", r.Allocator)
	require.InDelta(t, 9.1, r.TimeMs, 1e-9)
	require.InDelta(t, 1100.0, r.KOpsPerSec, 1e-9)
	require.InDelta(t, 58.0, r.PeakMemoryMB, 1e-9)
}

func TestRead_OrderIsFirstAppearanceNotSorted(t *testing.T) {
	csv := `Test,Allocator,Time_ms,KOps_per_sec,Peak_Memory_MB
Zeta,B,1,1,1
Alpha,A,1,1,1
10,B,1,1,1
2,A,1,1,1
Alpha,B,1,1,1
`
	table, err := Read(strings.NewReader(csv), "inline")
	require.NoError(t, err)
	require.Equal(t, []string{"Zeta", "Alpha", "10", "2"}, table.TestOrder())
	require.Equal(t, []string{"B", "A"}, table.AllocatorOrder())
}

func TestRead_ColumnOrderIrrelevantAndExtrasKept(t *testing.T) {
	csv := `Allocator,Total_Operations,Peak_Memory_MB,Test,KOps_per_sec,Time_ms
Pool,1000,58,Insert,1100,9.1
`
	table, err := Read(strings.NewReader(csv), "inline")
	require.NoError(t, err)

	r := table.Records[0]
	require.Equal(t, "Insert", r.Test)
	require.Equal(t, "Pool", r.Allocator)
	require.InDelta(t, 9.1, r.TimeMs, 1e-9)
	require.Equal(t, []string{"Total_Operations"}, table.ExtraColumns())
	require.Equal(t, "1000", r.Cell(table.ColumnIndex("Total_Operations")))
}

func TestRead_StripsByteOrderMark(t *testing.T) {
	table, err := Read(strings.NewReader("\ufeff"+exampleCSV), "inline")
	require.NoError(t, err)
	require.Equal(t, 0, table.ColumnIndex(ColumnTest))
}

func TestRead_EmptyCellIsMissing(t *testing.T) {
	csv := `Test,Allocator,Time_ms,KOps_per_sec,Peak_Memory_MB
Insert,Arena,,800,64
`
	table, err := Read(strings.NewReader(csv), "inline")
	require.NoError(t, err)
	require.True(t, math.IsNaN(table.Records[0].TimeMs))
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.csv")
	_, err := Load(path)
	require.ErrorIs(t, err, ErrInputMissing)
	require.Contains(t, err.Error(), path)
}

func TestRead_MissingColumn(t *testing.T) {
	csv := `Test,Allocator,Time_ms,KOps_per_sec
Insert,Arena,12.5,800
`
	_, err := Read(strings.NewReader(csv), "inline")
	require.ErrorIs(t, err, ErrInputMalformed)
	require.Contains(t, err.Error(), ColumnPeakMemoryMB)
}

func TestRead_ColumnNamesAreExact(t *testing.T) {
	csv := `test,Allocator,Time_ms,KOps_per_sec,Peak_Memory_MB
Insert,Arena,12.5,800,64
`
	_, err := Read(strings.NewReader(csv), "inline")
	require.ErrorIs(t, err, ErrInputMalformed)
}

func TestRead_DuplicateColumn(t *testing.T) {
	csv := `Test,Allocator,Time_ms,Time_ms,KOps_per_sec,Peak_Memory_MB
Insert,Arena,12.5,12.5,800,64
`
	_, err := Read(strings.NewReader(csv), "inline")
	require.ErrorIs(t, err, ErrInputMalformed)
}

func TestRead_NonNumeric(t *testing.T) {
	csv := `Test,Allocator,Time_ms,KOps_per_sec,Peak_Memory_MB
Insert,Arena,fast,800,64
`
	_, err := Read(strings.NewReader(csv), "inline")
	require.ErrorIs(t, err, ErrInputMalformed)
	require.Contains(t, err.Error(), "line 2")
}

func TestRead_NonFiniteValues(t *testing.T) {
	for _, cell := range []string{"Inf", "-Inf", "+inf", "NaN"} {
		csv := "Test,Allocator,Time_ms,KOps_per_sec,Peak_Memory_MB\nInsert,Arena,12.5," + cell + ",64\n"
		_, err := Read(strings.NewReader(csv), "inline")
		require.ErrorIs(t, err, ErrInputMalformed, cell)
		require.Contains(t, err.Error(), "line 2", cell)
		require.Contains(t, err.Error(), ColumnKOpsPerSec, cell)
	}
}

func TestRead_RaggedRow(t *testing.T) {
	csv := `Test,Allocator,Time_ms,KOps_per_sec,Peak_Memory_MB
Insert,Arena,12.5,800
`
	_, err := Read(strings.NewReader(csv), "inline")
	require.ErrorIs(t, err, ErrInputMalformed)
}

func TestRead_EmptyTable(t *testing.T) {
	_, err := Read(strings.NewReader("Test,Allocator,Time_ms,KOps_per_sec,Peak_Memory_MB\n"), "inline")
	require.ErrorIs(t, err, ErrEmptyTable)
	require.ErrorIs(t, err, ErrInputMalformed)

	_, err = Read(strings.NewReader(""), "inline")
	require.True(t, errors.Is(err, ErrEmptyTable))
}
