package bar

import (
	"fmt"
	"io"

	"allocator-bench/internal/plot/layout"
	"allocator-bench/internal/plot/mappings"
	"allocator-bench/internal/storage"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const imageFormat = "png"

// space taken by the y axis, its label and the plot padding
const axisAllowanceIn = 1.5

type BarPlotGenerator struct {
	theme  mappings.Theme
	logger *logrus.Logger
}

func NewBarPlotGenerator(theme mappings.Theme, logger *logrus.Logger) *BarPlotGenerator {
	return &BarPlotGenerator{
		theme:  theme,
		logger: logger,
	}
}

// Generate draws l as a grouped bar chart. Absent bars leave a gap in their group.
func (g *BarPlotGenerator) Generate(l *layout.Layout) (*plot.Plot, error) {
	if len(l.Categories) == 0 || len(l.Allocators) == 0 {
		return nil, fmt.Errorf("nothing to plot for %s", l.Metric)
	}

	p := plot.New()
	g.applyTheme(p)

	p.Title.Text = l.Title
	p.X.Label.Text = l.XLabel
	p.Y.Label.Text = l.YLabel

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = g.theme.GridColor
	grid.Horizontal.Width = vg.Points(g.theme.GridWidth)
	grid.Horizontal.Dashes = nil
	p.Add(grid)

	series, err := g.buildSeries(l)
	if err != nil {
		return nil, err
	}
	for ai, bars := range series {
		p.Add(bars)
		p.Legend.Add(l.Allocators[ai], bars)
	}

	p.NominalX(l.Categories...)

	g.logger.WithFields(logrus.Fields{
		"metric":     l.Metric,
		"tests":      len(l.Categories),
		"allocators": len(l.Allocators),
		"bars":       l.BarCount(),
	}).Debug("Built grouped bar chart")

	return p, nil
}

// buildSeries makes one bar series per allocator, offset side by side within
// each category. Absent pairs get a zero-height bar without outline.
func (g *BarPlotGenerator) buildSeries(l *layout.Layout) ([]*plotter.BarChart, error) {
	width := g.barWidth(len(l.Categories), len(l.Allocators))
	n := len(l.Allocators)

	series := make([]*plotter.BarChart, 0, n)
	for ai, allocator := range l.Allocators {
		values := make(plotter.Values, len(l.Categories))
		for ci, category := range l.Categories {
			if v, ok := l.Value(category, allocator); ok {
				values[ci] = v
			}
		}

		bars, err := plotter.NewBarChart(values, width)
		if err != nil {
			return nil, fmt.Errorf("failed to create bars for %s: %w", allocator, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = mappings.GetAllocatorColor(ai)
		bars.Offset = vg.Length(float64(ai)-float64(n-1)/2) * width
		series = append(series, bars)
	}
	return series, nil
}

// Save encodes p on the run's canvas and writes it to path, replacing any
// previous file.
func (g *BarPlotGenerator) Save(p *plot.Plot, path string) error {
	writer, err := p.WriterTo(g.canvasWidth(), g.canvasHeight(), imageFormat)
	if err != nil {
		return fmt.Errorf("failed to create plot writer: %w", err)
	}

	err = storage.WriteFileAtomic(path, func(w io.Writer) error {
		_, err := writer.WriteTo(w)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to write chart %s: %w", path, err)
	}

	g.logger.WithField("file", path).Info("Chart written")
	return nil
}

func (g *BarPlotGenerator) applyTheme(p *plot.Plot) {
	p.BackgroundColor = g.theme.Background

	p.Title.TextStyle.Font.Size = vg.Points(g.theme.TitleSize)
	p.Title.Padding = vg.Points(8)
	p.X.Label.TextStyle.Font.Size = vg.Points(g.theme.LabelSize)
	p.Y.Label.TextStyle.Font.Size = vg.Points(g.theme.LabelSize)

	p.X.Tick.Label.Font.Size = vg.Points(g.theme.TickSize)
	p.X.Tick.Label.Rotation = g.theme.TickRotation()
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Y.Tick.Label.Font.Size = vg.Points(g.theme.TickSize)

	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = vg.Points(g.theme.LegendSize)
}

// barWidth splits the GroupFill share of one category slot between the allocators.
func (g *BarPlotGenerator) barWidth(categories, allocators int) vg.Length {
	plotWidth := g.theme.WidthIn - axisAllowanceIn
	if plotWidth <= 0 {
		plotWidth = g.theme.WidthIn
	}
	slot := plotWidth / float64(categories)
	return vg.Length(slot*g.theme.GroupFill/float64(allocators)) * vg.Inch
}

func (g *BarPlotGenerator) canvasWidth() vg.Length {
	return vg.Length(g.theme.WidthIn) * vg.Inch
}

func (g *BarPlotGenerator) canvasHeight() vg.Length {
	return vg.Length(g.theme.HeightIn) * vg.Inch
}
