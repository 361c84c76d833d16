package html

import (
	"fmt"
	"io"

	"allocator-bench/internal/plot/layout"
	"allocator-bench/internal/plot/mappings"
	"allocator-bench/internal/storage"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/sirupsen/logrus"
)

// echarts skips "-" values, leaving a gap like a missing pair
const missingValue = "-"

const pixelsPerInch = 100

type HTMLPageGenerator struct {
	theme  mappings.Theme
	logger *logrus.Logger
}

func NewHTMLPageGenerator(theme mappings.Theme, logger *logrus.Logger) *HTMLPageGenerator {
	return &HTMLPageGenerator{
		theme:  theme,
		logger: logger,
	}
}

func (g *HTMLPageGenerator) Chart(l *layout.Layout) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: l.Title,
			Width:     fmt.Sprintf("%dpx", int(g.theme.WidthIn*pixelsPerInch)),
			Height:    fmt.Sprintf("%dpx", int(g.theme.HeightIn*pixelsPerInch)),
		}),
		charts.WithTitleOpts(opts.Title{Title: l.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithLegendOpts(opts.Legend{Show: true, Right: "10%"}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: l.XLabel,
			AxisLabel: &opts.AxisLabel{
				Show:     true,
				Interval: "0",
				Rotate:   g.theme.TickRotateD,
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: l.YLabel,
			SplitLine: &opts.SplitLine{
				Show: true,
				LineStyle: &opts.LineStyle{
					Color: mappings.Hex(g.theme.GridColor),
				},
			},
		}),
	)

	bar.SetXAxis(l.Categories)
	for ai, allocator := range l.Allocators {
		data := make([]opts.BarData, 0, len(l.Categories))
		for _, category := range l.Categories {
			if v, ok := l.Value(category, allocator); ok {
				data = append(data, opts.BarData{Value: v})
			} else {
				data = append(data, opts.BarData{Value: missingValue})
			}
		}
		bar.AddSeries(allocator, data,
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: mappings.Hex(mappings.GetAllocatorColor(ai)),
			}),
		)
	}
	return bar
}

// Render writes one page holding a chart per layout.
func (g *HTMLPageGenerator) Render(w io.Writer, layouts []*layout.Layout) error {
	page := components.NewPage()
	for _, l := range layouts {
		page.AddCharts(g.Chart(l))
	}
	return page.Render(w)
}

func (g *HTMLPageGenerator) Save(path string, layouts []*layout.Layout) error {
	err := storage.WriteFileAtomic(path, func(w io.Writer) error {
		return g.Render(w, layouts)
	})
	if err != nil {
		return fmt.Errorf("failed to write html report %s: %w", path, err)
	}

	g.logger.WithFields(logrus.Fields{
		"file":   path,
		"charts": len(layouts),
	}).Info("HTML report written")
	return nil
}
