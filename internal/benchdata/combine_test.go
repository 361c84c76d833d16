package benchdata

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCombine_ReordersColumnsByName(t *testing.T) {
	arena, err := Read(strings.NewReader(`Test,Allocator,Time_ms,Total_Operations,KOps_per_sec,Peak_Memory_MB
Insert,Arena,12.50,10000,800.00,64.00
Lookup,Arena,3.20,10000,3125.00,64.00
`), "benchmark_results_Arena.csv")
	require.NoError(t, err)

	pool, err := Read(strings.NewReader(`Allocator,Test,Time_ms,KOps_per_sec,Peak_Memory_MB,Total_Operations
Pool,Insert,9.10,1100.00,58.00,10000
`), "benchmark_results_Pool.csv")
	require.NoError(t, err)

	combined, err := Combine(arena, pool)
	require.NoError(t, err)
	require.Equal(t, 3, combined.Len())
	require.Equal(t, []string{"Insert", "Lookup"}, combined.TestOrder())
	require.Equal(t, []string{"Arena", "Pool"}, combined.AllocatorOrder())

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, combined))
	require.Equal(t, `Test,Allocator,Time_ms,Total_Operations,KOps_per_sec,Peak_Memory_MB
Insert,Arena,12.50,10000,800.00,64.00
Lookup,Arena,3.20,10000,3125.00,64.00
Insert,Pool,9.10,10000,1100.00,58.00
`, buf.String())

	reread, err := Read(&buf, "combined")
	require.NoError(t, err)
	require.InDelta(t, 9.1, reread.Records[2].TimeMs, 1e-9)
}

func TestCombine_ColumnMismatch(t *testing.T) {
	a, err := Read(strings.NewReader(exampleCSV), "a.csv")
	require.NoError(t, err)
	b, err := Read(strings.NewReader(`Test,Allocator,Time_ms,KOps_per_sec,Peak_Memory_MB,Total_Freed_MB
Insert,Pool,9.1,1100,58,1
`), "b.csv")
	require.NoError(t, err)

	_, err = Combine(a, b)
	require.ErrorIs(t, err, ErrInputMalformed)
	require.Contains(t, err.Error(), "b.csv")
}

func TestCombine_Nothing(t *testing.T) {
	_, err := Combine()
	require.ErrorIs(t, err, ErrEmptyTable)
}
