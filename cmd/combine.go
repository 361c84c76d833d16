package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"allocator-bench/internal/benchdata"
	"allocator-bench/internal/logging"
	"allocator-bench/internal/storage"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newCombineCommand(ro *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "combine [files...]",
		Short: "Merge per-allocator result files into one benchmark CSV",
		Long:  "Merge benchmark_results_<allocator>.csv files into the combined CSV read by the report. Without arguments the configured glob is used.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := ro.cfg.Combine.Output
			if output != "" {
				out = output
			}
			return runCombine(cmd, args, ro.cfg.Combine.Pattern, out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Combined CSV to write")
	return cmd
}

func runCombine(cmd *cobra.Command, files []string, pattern, output string) error {
	logger := logging.GetLogger()

	if len(files) == 0 {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)
		files = matches
	}

	// never read the file being written
	outAbs, _ := filepath.Abs(output)
	inputs := make([]string, 0, len(files))
	for _, f := range files {
		if abs, _ := filepath.Abs(f); abs == outAbs {
			continue
		}
		inputs = append(inputs, f)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("%w: no result files match %q", benchdata.ErrInputMissing, pattern)
	}

	tables := make([]*benchdata.Table, 0, len(inputs))
	for _, f := range inputs {
		t, err := benchdata.Load(f)
		if err != nil {
			return err
		}
		tables = append(tables, t)
	}

	combined, err := benchdata.Combine(tables...)
	if err != nil {
		return err
	}

	err = storage.WriteFileAtomic(output, func(w io.Writer) error {
		return benchdata.WriteCSV(w, combined)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	logger.WithFields(logrus.Fields{
		"inputs": len(inputs),
		"rows":   combined.Len(),
		"file":   output,
	}).Info("Combined benchmark results")

	fmt.Fprintf(cmd.OutOrStdout(), "Combined %d files (%d rows) into '%s'\n", len(inputs), combined.Len(), output)
	return nil
}
