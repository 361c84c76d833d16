package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"allocator-bench/internal/config"
	"allocator-bench/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const Version = "1.0.0"

type rootOptions struct {
	configFile string
	logLevel   string
	cfg        *config.Config
}

func Execute() error {
	loadEnvironment()
	return NewRootCommand().Execute()
}

func NewRootCommand() *cobra.Command {
	ro := &rootOptions{}
	render := &renderOptions{}

	rootCmd := &cobra.Command{
		Use:     "allocator-bench",
		Short:   "Allocator benchmark report generator",
		Long:    "Reads combined allocator benchmark results and renders time, throughput and peak memory charts",
		Version: Version,
		Args:    cobra.NoArgs,
		// errors are logged once by main
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ro.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return render.run(cmd, ro.cfg)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ro.configFile, "config", "c", "", "Path to report configuration file")
	rootCmd.PersistentFlags().StringVar(&ro.logLevel, "log-level", "", "Set log level (trace, debug, info, warn, error)")
	render.bindFlags(rootCmd)

	rootCmd.AddCommand(newRenderCommand(ro))
	rootCmd.AddCommand(newCombineCommand(ro))
	rootCmd.AddCommand(newPublishCommand(ro))
	rootCmd.AddCommand(newValidateCommand(ro))

	return rootCmd
}

func (ro *rootOptions) load() error {
	cfg, err := config.LoadConfig(ro.configFile)
	if err != nil {
		return err
	}

	level := cfg.Report.LogLevel
	if ro.logLevel != "" {
		level = ro.logLevel
	}
	if level != "" {
		if err := logging.SetLogLevel(level); err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
	}

	ro.cfg = cfg
	return nil
}

func loadEnvironment() {
	logger := logging.GetLogger()

	// Try the current directory first, then the binary's directory
	envFile := ".env"
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			logger.WithField("file", envFile).WithError(err).Warn("Error loading .env file")
		} else {
			logger.WithField("file", envFile).Debug("Loaded environment variables")
		}
		return
	}

	execPath, err := os.Executable()
	if err != nil {
		return
	}
	envFile = filepath.Join(filepath.Dir(execPath), ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			logger.WithField("file", envFile).WithError(err).Warn("Error loading .env file")
		} else {
			logger.WithField("file", envFile).Debug("Loaded environment variables")
		}
	}
}
