package cmd

import (
	"fmt"

	"allocator-bench/internal/benchdata"
	"allocator-bench/internal/config"
	"allocator-bench/internal/logging"
	"allocator-bench/internal/plot"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	input     string
	outputDir string
	aggregate string
	html      string
}

func (o *renderOptions) bindFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.input, "input", "i", "", "Benchmark CSV to read (default "+config.DefaultInput+")")
	cmd.Flags().StringVarP(&o.outputDir, "output-dir", "o", "", "Directory the charts are written to")
	cmd.Flags().StringVar(&o.aggregate, "aggregate", "", "How duplicate Test/Allocator rows are combined (mean, median, min, max, sum)")
	cmd.Flags().StringVar(&o.html, "html", "", "Also write an interactive HTML page with the three charts")
}

func newRenderCommand(ro *rootOptions) *cobra.Command {
	o := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the time, throughput and peak memory charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, ro.cfg)
		},
	}
	o.bindFlags(cmd)
	return cmd
}

func (o *renderOptions) apply(cfg config.ReportConfig) config.ReportConfig {
	if o.input != "" {
		cfg.Input = o.input
	}
	if o.outputDir != "" {
		cfg.OutputDir = o.outputDir
	}
	if o.aggregate != "" {
		cfg.Aggregate = o.aggregate
	}
	if o.html != "" {
		cfg.HTMLOutput = o.html
	}
	return cfg
}

func (o *renderOptions) run(cmd *cobra.Command, cfg *config.Config) error {
	logger := logging.GetLogger()
	reportCfg := o.apply(cfg.Report)

	logger.WithFields(logrus.Fields{
		"input":      reportCfg.Input,
		"output_dir": reportCfg.OutputDir,
		"aggregate":  reportCfg.Aggregate,
	}).Debug("Generating benchmark report")

	plotMgr, err := plot.NewPlotManager(reportCfg)
	if err != nil {
		return fmt.Errorf("failed to create plot manager: %w", err)
	}

	table, err := benchdata.Load(reportCfg.Input)
	if err != nil {
		return err
	}

	files, err := plotMgr.GenerateReport(table)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), plot.ConfirmationMessage(files))
	return nil
}
