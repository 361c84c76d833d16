package mappings

import "allocator-bench/internal/benchdata"

type MetricMapping struct {
	Title      string
	Label      string
	ShortLabel string
	FileName   string
	Unit       string
}

var MetricMappings = map[benchdata.Metric]MetricMapping{
	benchdata.MetricTime: {
		Title:      "Time Taken per Test",
		Label:      "Time (ms)",
		ShortLabel: "Time",
		FileName:   "graph_time_taken.png",
		Unit:       "ms",
	},
	benchdata.MetricThroughput: {
		Title:      "Throughput per Test",
		Label:      "Throughput (KOps/sec)",
		ShortLabel: "Throughput",
		FileName:   "graph_throughput.png",
		Unit:       "KOps/sec",
	},
	benchdata.MetricPeakMemory: {
		Title:      "Peak Memory Usage per Test",
		Label:      "Memory (MB)",
		ShortLabel: "Peak Memory",
		FileName:   "graph_peak_memory.png",
		Unit:       "MB",
	},
}

// ReportMetrics is the order charts are rendered in.
var ReportMetrics = []benchdata.Metric{
	benchdata.MetricTime,
	benchdata.MetricThroughput,
	benchdata.MetricPeakMemory,
}

const CategoryLabel = "Test"

func GetMetricMapping(metric benchdata.Metric) (MetricMapping, bool) {
	mapping, exists := MetricMappings[metric]
	return mapping, exists
}
