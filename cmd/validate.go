package cmd

import (
	"fmt"
	"strings"

	"allocator-bench/internal/benchdata"

	"github.com/spf13/cobra"
)

func newValidateCommand(ro *rootOptions) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a benchmark CSV without writing any chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				input = ro.cfg.Report.Input
			}
			table, err := benchdata.Load(input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows, tests [%s], allocators [%s]\n",
				input, table.Len(),
				strings.Join(table.TestOrder(), ", "),
				strings.Join(table.AllocatorOrder(), ", "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Benchmark CSV to check")
	return cmd
}
