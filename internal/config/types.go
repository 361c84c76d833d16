package config

// Defaults reproduce the fixed-path report run.
const (
	DefaultInput          = "combined_benchmark_results.csv"
	DefaultOutputDir      = "."
	DefaultWidthIn        = 14.0
	DefaultHeightIn       = 8.0
	DefaultAggregate      = "mean"
	DefaultLogLevel       = "warn"
	DefaultCombinePattern = "benchmark_results_*.csv"
	DefaultCombineOutput  = "combined_benchmark_results.csv"
)

type Config struct {
	Report   ReportConfig   `yaml:"report"`
	Combine  CombineConfig  `yaml:"combine"`
	Database DatabaseConfig `yaml:"database"`
}

type ReportConfig struct {
	Input      string  `yaml:"input"`
	OutputDir  string  `yaml:"output_dir"`
	WidthIn    float64 `yaml:"width_in"`
	HeightIn   float64 `yaml:"height_in"`
	Aggregate  string  `yaml:"aggregate"`
	HTMLOutput string  `yaml:"html_output,omitempty"`
	LogLevel   string  `yaml:"log_level"`
}

type CombineConfig struct {
	Pattern string `yaml:"pattern"`
	Output  string `yaml:"output"`
}

type DatabaseConfig struct {
	Host   string `yaml:"host"`
	Token  string `yaml:"token"`
	Org    string `yaml:"org"`
	Bucket string `yaml:"bucket"`
	Run    string `yaml:"run,omitempty"`
}

func Default() *Config {
	return &Config{
		Report: ReportConfig{
			Input:     DefaultInput,
			OutputDir: DefaultOutputDir,
			WidthIn:   DefaultWidthIn,
			HeightIn:  DefaultHeightIn,
			Aggregate: DefaultAggregate,
			LogLevel:  DefaultLogLevel,
		},
		Combine: CombineConfig{
			Pattern: DefaultCombinePattern,
			Output:  DefaultCombineOutput,
		},
	}
}
