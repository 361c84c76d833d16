package plot

import (
	"fmt"
	"path/filepath"
	"strings"

	"allocator-bench/internal/benchdata"
	"allocator-bench/internal/config"
	"allocator-bench/internal/logging"
	"allocator-bench/internal/plot/bar"
	"allocator-bench/internal/plot/html"
	"allocator-bench/internal/plot/layout"
	"allocator-bench/internal/plot/mappings"

	"github.com/sirupsen/logrus"
)

type PlotManager struct {
	cfg           config.ReportConfig
	policy        benchdata.Policy
	barGenerator  *bar.BarPlotGenerator
	htmlGenerator *html.HTMLPageGenerator
	logger        *logrus.Logger
}

func NewPlotManager(cfg config.ReportConfig) (*PlotManager, error) {
	logger := logging.GetLogger()

	policy, err := benchdata.ParsePolicy(cfg.Aggregate)
	if err != nil {
		return nil, err
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = config.DefaultOutputDir
	}

	// one theme for the whole run
	theme := mappings.NewTheme(cfg.WidthIn, cfg.HeightIn)

	return &PlotManager{
		cfg:           cfg,
		policy:        policy,
		barGenerator:  bar.NewBarPlotGenerator(theme, logger),
		htmlGenerator: html.NewHTMLPageGenerator(theme, logger),
		logger:        logger,
	}, nil
}

// GenerateReport renders and writes one chart per report metric, in order,
// stopping at the first failure. It returns the chart paths.
func (pm *PlotManager) GenerateReport(table *benchdata.Table) ([]string, error) {
	layouts, err := pm.Layouts(table)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(layouts))
	for _, l := range layouts {
		path := pm.OutputPath(l.FileName)
		if err := pm.writeChart(l, path); err != nil {
			return files, err
		}
		files = append(files, path)
	}

	if pm.cfg.HTMLOutput != "" {
		if err := pm.htmlGenerator.Save(pm.OutputPath(pm.cfg.HTMLOutput), layouts); err != nil {
			return files, err
		}
	}

	return files, nil
}

// Layouts builds the chart layouts of every report metric. All of them share
// the table's category order.
func (pm *PlotManager) Layouts(table *benchdata.Table) ([]*layout.Layout, error) {
	layouts := make([]*layout.Layout, 0, len(mappings.ReportMetrics))
	for _, metric := range mappings.ReportMetrics {
		l, err := layout.Build(table, metric, pm.policy)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, l)
	}
	return layouts, nil
}

func (pm *PlotManager) writeChart(l *layout.Layout, path string) error {
	pm.logger.WithFields(logrus.Fields{
		"metric": l.Metric,
		"file":   path,
	}).Info("Generating chart")

	p, err := pm.barGenerator.Generate(l)
	if err != nil {
		return fmt.Errorf("failed to render %s chart: %w", l.Metric, err)
	}
	return pm.barGenerator.Save(p, path)
}

func (pm *PlotManager) OutputPath(name string) string {
	return filepath.Join(pm.cfg.OutputDir, name)
}

// ConfirmationMessage is the single line printed after a successful run.
func ConfirmationMessage(files []string) string {
	quoted := make([]string, len(files))
	for i, f := range files {
		quoted[i] = "'" + f + "'"
	}
	return "✅ Graphs saved: " + strings.Join(quoted, ", ")
}
