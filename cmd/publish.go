package cmd

import (
	"context"
	"fmt"
	"time"

	"allocator-bench/internal/benchdata"
	"allocator-bench/internal/config"
	"allocator-bench/internal/database"

	"github.com/spf13/cobra"
)

const publishTimeout = 30 * time.Second

func newPublishCommand(ro *rootOptions) *cobra.Command {
	var input, run string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write benchmark results to InfluxDB",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db := ro.cfg.Database
			if run != "" {
				db.Run = run
			}
			if input == "" {
				input = ro.cfg.Report.Input
			}
			return runPublish(cmd, input, db)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Benchmark CSV to publish")
	cmd.Flags().StringVar(&run, "run", "", "Run label stored as a tag on every point")
	return cmd
}

func runPublish(cmd *cobra.Command, input string, db config.DatabaseConfig) error {
	if err := config.ValidateDatabase(db); err != nil {
		return err
	}

	table, err := benchdata.Load(input)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), publishTimeout)
	defer cancel()

	client, err := database.NewInfluxDBClient(ctx, db)
	if err != nil {
		return err
	}
	defer client.Close()

	n, err := client.WriteTable(ctx, table, db.Run, time.Now())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Published %d results to bucket '%s'\n", n, db.Bucket)
	return nil
}
