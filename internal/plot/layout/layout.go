// Package layout turns a benchmark table into the renderer-independent shape of
// a grouped bar chart: ordered categories, ordered allocators and the bars that
// actually exist in each category.
package layout

import (
	"fmt"

	"allocator-bench/internal/benchdata"
	"allocator-bench/internal/plot/mappings"
)

type Layout struct {
	Metric     benchdata.Metric
	Title      string
	XLabel     string
	YLabel     string
	FileName   string
	Categories []string
	Allocators []string
	Groups     []Group
}

// Group holds the bars of one category, in allocator order.
type Group struct {
	Category string
	Bars     []Bar
}

type Bar struct {
	Allocator      string
	AllocatorIndex int
	Value          float64
}

// Build aggregates metric with policy and lays it out for drawing.
func Build(table *benchdata.Table, metric benchdata.Metric, policy benchdata.Policy) (*Layout, error) {
	mapping, ok := mappings.GetMetricMapping(metric)
	if !ok {
		return nil, fmt.Errorf("no chart mapping for metric %q", metric)
	}

	grid, err := table.Aggregate(metric, policy)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %s: %w", metric, err)
	}

	l := &Layout{
		Metric:     metric,
		Title:      mapping.Title,
		XLabel:     mappings.CategoryLabel,
		YLabel:     mapping.Label,
		FileName:   mapping.FileName,
		Categories: grid.Tests,
		Allocators: grid.Allocators,
		Groups:     make([]Group, 0, len(grid.Tests)),
	}

	for _, test := range grid.Tests {
		group := Group{Category: test}
		for ai, allocator := range grid.Allocators {
			v, present := grid.Lookup(test, allocator)
			if !present {
				continue
			}
			group.Bars = append(group.Bars, Bar{
				Allocator:      allocator,
				AllocatorIndex: ai,
				Value:          v,
			})
		}
		l.Groups = append(l.Groups, group)
	}

	return l, nil
}

// Value returns the bar height for a category/allocator pair.
func (l *Layout) Value(category, allocator string) (float64, bool) {
	for _, g := range l.Groups {
		if g.Category != category {
			continue
		}
		for _, b := range g.Bars {
			if b.Allocator == allocator {
				return b.Value, true
			}
		}
	}
	return 0, false
}

func (l *Layout) BarCount() int {
	n := 0
	for _, g := range l.Groups {
		n += len(g.Bars)
	}
	return n
}
