package layout

import (
	"strings"
	"testing"

	"allocator-bench/internal/benchdata"
	"allocator-bench/internal/plot/mappings"

	"github.com/stretchr/testify/require"
)

func readTable(t *testing.T, csv string) *benchdata.Table {
	t.Helper()
	table, err := benchdata.Read(strings.NewReader(csv), "inline")
	require.NoError(t, err)
	return table
}

func TestBuild_Example(t *testing.T) {
	table := readTable(t, `Test,Allocator,Time_ms,KOps_per_sec,Peak_Memory_MB
Insert,Arena,12.5,800.0,64.0
Insert,Pool,9.1,1100.0,58.0
Lookup,Arena,3.2,3125.0,64.0
`)

	for _, metric := range mappings.ReportMetrics {
		l, err := Build(table, metric, benchdata.PolicyMean)
		require.NoError(t, err)

		require.Equal(t, []string{"Insert", "Lookup"}, l.Categories)
		require.Len(t, l.Groups, 2)
		require.Equal(t, "Insert", l.Groups[0].Category)
		require.Len(t, l.Groups[0].Bars, 2)
		require.Equal(t, "Arena", l.Groups[0].Bars[0].Allocator)
		require.Equal(t, "Pool", l.Groups[0].Bars[1].Allocator)
		require.Equal(t, "Lookup", l.Groups[1].Category)
		require.Len(t, l.Groups[1].Bars, 1)
		require.Equal(t, 0, l.Groups[1].Bars[0].AllocatorIndex)
		require.Equal(t, 3, l.BarCount())
	}
}

func TestBuild_TitlesAndLabels(t *testing.T) {
	table := readTable(t, `Test,Allocator,Time_ms,KOps_per_sec,Peak_Memory_MB
Insert,Arena,12.5,800.0,64.0
`)

	want := map[benchdata.Metric][3]string{
		benchdata.MetricTime:       {"Time Taken per Test", "Time (ms)", "graph_time_taken.png"},
		benchdata.MetricThroughput: {"Throughput per Test", "Throughput (KOps/sec)", "graph_throughput.png"},
		benchdata.MetricPeakMemory: {"Peak Memory Usage per Test", "Memory (MB)", "graph_peak_memory.png"},
	}
	for metric, w := range want {
		l, err := Build(table, metric, benchdata.PolicyMean)
		require.NoError(t, err)
		require.Equal(t, w[0], l.Title)
		require.Equal(t, w[1], l.YLabel)
		require.Equal(t, w[2], l.FileName)
		require.Equal(t, "Test", l.XLabel)
	}
}

func TestBuild_SingleTestTwoAllocators(t *testing.T) {
	table := readTable(t, `Test,Allocator,Time_ms,KOps_per_sec,Peak_Memory_MB
Insert,Arena,12.5,800.0,64.0
Insert,Pool,9.1,1100.0,58.0
`)

	for _, metric := range mappings.ReportMetrics {
		l, err := Build(table, metric, benchdata.PolicyMean)
		require.NoError(t, err)
		require.Len(t, l.Groups, 1)
		require.Len(t, l.Groups[0].Bars, 2)
	}
}

func TestBuild_BarHeightsFollowMetric(t *testing.T) {
	table := readTable(t, `Test,Allocator,Time_ms,KOps_per_sec,Peak_Memory_MB
Insert,Pool,9.1,1100.0,58.0
`)

	heights := map[benchdata.Metric]float64{
		benchdata.MetricTime:       9.1,
		benchdata.MetricThroughput: 1100,
		benchdata.MetricPeakMemory: 58,
	}
	for metric, want := range heights {
		l, err := Build(table, metric, benchdata.PolicyMean)
		require.NoError(t, err)
		v, ok := l.Value("Insert", "Pool")
		require.True(t, ok)
		require.InDelta(t, want, v, 1e-9)
	}
}

func TestBuild_DuplicatesAggregated(t *testing.T) {
	table := readTable(t, `Test,Allocator,Time_ms,KOps_per_sec,Peak_Memory_MB
Insert,Arena,10,800.0,64.0
Insert,Arena,20,800.0,64.0
`)

	l, err := Build(table, benchdata.MetricTime, benchdata.PolicyMean)
	require.NoError(t, err)
	require.Len(t, l.Groups[0].Bars, 1)
	require.InDelta(t, 15, l.Groups[0].Bars[0].Value, 1e-9)

	l, err = Build(table, benchdata.MetricTime, benchdata.PolicyMax)
	require.NoError(t, err)
	require.InDelta(t, 20, l.Groups[0].Bars[0].Value, 1e-9)
}

func TestBuild_UnknownMetric(t *testing.T) {
	table := readTable(t, `Test,Allocator,Time_ms,KOps_per_sec,Peak_Memory_MB
Insert,Arena,10,800.0,64.0
`)
	_, err := Build(table, benchdata.Metric("Total_Freed_MB"), benchdata.PolicyMean)
	require.Error(t, err)
}
