package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"allocator-bench/internal/benchdata"
	"allocator-bench/internal/logging"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads the YAML file at path on top of the defaults.
// An empty path yields the defaults.
func LoadConfig(filepath string) (*Config, error) {
	logger := logging.GetLogger()

	config := Default()
	if filepath != "" {
		data, err := os.ReadFile(filepath)
		if err != nil {
			logger.WithField("filepath", filepath).WithError(err).Error("Failed to read config file")
			return nil, err
		}

		expanded := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
			logger.WithField("filepath", filepath).WithError(err).Error("Failed to parse config file")
			return nil, err
		}
	}

	applyEnvironment(&config.Database)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func expandEnvVars(content string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		envVar := strings.Trim(match, "${}")
		if value := os.Getenv(envVar); value != "" {
			return value
		}
		return match
	})
}

// unexpanded ${VAR} references count as unset
func applyEnvironment(db *DatabaseConfig) {
	fill := func(field *string, envVar string) {
		if *field == "" || strings.HasPrefix(*field, "${") {
			*field = os.Getenv(envVar)
		}
	}
	fill(&db.Host, "INFLUXDB_HOST")
	fill(&db.Token, "INFLUXDB_TOKEN")
	fill(&db.Org, "INFLUXDB_ORG")
	fill(&db.Bucket, "INFLUXDB_BUCKET")
}

func validateConfig(config *Config) error {
	if config.Report.Input == "" {
		return fmt.Errorf("report input is required")
	}

	if config.Report.WidthIn <= 0 || config.Report.HeightIn <= 0 {
		return fmt.Errorf("canvas size must be greater than 0, got %gx%g", config.Report.WidthIn, config.Report.HeightIn)
	}

	if _, err := benchdata.ParsePolicy(config.Report.Aggregate); err != nil {
		return err
	}

	if config.Combine.Output == "" {
		return fmt.Errorf("combine output is required")
	}

	return nil
}

// ValidateDatabase checks the settings needed to publish results.
func ValidateDatabase(db DatabaseConfig) error {
	var missing []string
	if db.Host == "" {
		missing = append(missing, "host (INFLUXDB_HOST)")
	}
	if db.Token == "" {
		missing = append(missing, "token (INFLUXDB_TOKEN)")
	}
	if db.Org == "" {
		missing = append(missing, "org (INFLUXDB_ORG)")
	}
	if db.Bucket == "" {
		missing = append(missing, "bucket (INFLUXDB_BUCKET)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("incomplete database configuration, missing %v", missing)
	}
	return nil
}
