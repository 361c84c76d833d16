package database

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"allocator-bench/internal/benchdata"
	"allocator-bench/internal/config"
	"allocator-bench/internal/logging"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/sirupsen/logrus"
)

const Measurement = "allocator_benchmark"

// pointWriter is the part of api.WriteAPIBlocking the publisher needs.
type pointWriter interface {
	WritePoint(ctx context.Context, point ...*write.Point) error
}

type InfluxDBClient struct {
	client   influxdb2.Client
	writeAPI pointWriter
	bucket   string
	org      string
}

func NewInfluxDBClient(ctx context.Context, cfg config.DatabaseConfig) (*InfluxDBClient, error) {
	logger := logging.GetLogger()

	client := influxdb2.NewClient(cfg.Host, cfg.Token)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	health, err := client.Health(ctx)
	if err != nil {
		logger.WithField("host", cfg.Host).WithError(err).Error("Failed to connect to InfluxDB")
		client.Close()
		return nil, fmt.Errorf("failed to connect to InfluxDB at %s: %w", cfg.Host, err)
	}

	if health.Status != "pass" {
		message := ""
		if health.Message != nil {
			message = *health.Message
		}
		logger.WithFields(logrus.Fields{
			"host":    cfg.Host,
			"status":  health.Status,
			"message": message,
		}).Error("InfluxDB health check failed")
		client.Close()
		return nil, fmt.Errorf("InfluxDB at %s is not healthy: %s", cfg.Host, health.Status)
	}

	logger.WithFields(logrus.Fields{
		"host":   cfg.Host,
		"bucket": cfg.Bucket,
		"org":    cfg.Org,
	}).Info("Connected to InfluxDB")

	return &InfluxDBClient{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		bucket:   cfg.Bucket,
		org:      cfg.Org,
	}, nil
}

// WriteTable writes one point per record in a single blocking call.
func (idb *InfluxDBClient) WriteTable(ctx context.Context, table *benchdata.Table, run string, ts time.Time) (int, error) {
	points := BuildPoints(table, run, ts)
	if len(points) == 0 {
		return 0, nil
	}

	if err := idb.writeAPI.WritePoint(ctx, points...); err != nil {
		return 0, fmt.Errorf("failed to write data points: %w", err)
	}

	logging.GetLogger().WithFields(logrus.Fields{
		"points": len(points),
		"bucket": idb.bucket,
	}).Info("Published benchmark results")

	return len(points), nil
}

// BuildPoints maps records to points. Records share ts and are told apart by
// a row tag so duplicate Test/Allocator rows do not overwrite each other.
func BuildPoints(table *benchdata.Table, run string, ts time.Time) []*write.Point {
	extras := table.ExtraColumns()
	extraIdx := make([]int, len(extras))
	for i, name := range extras {
		extraIdx[i] = table.ColumnIndex(name)
	}

	points := make([]*write.Point, 0, table.Len())
	for row, r := range table.Records {
		tags := map[string]string{
			"test":      r.Test,
			"allocator": r.Allocator,
			"row":       strconv.Itoa(row),
		}
		if run != "" {
			tags["run"] = run
		}

		fields := make(map[string]interface{})
		addFloat(fields, "time_ms", r.TimeMs)
		addFloat(fields, "kops_per_sec", r.KOpsPerSec)
		addFloat(fields, "peak_memory_mb", r.PeakMemoryMB)
		for i, name := range extras {
			v, err := strconv.ParseFloat(strings.TrimSpace(r.Cell(extraIdx[i])), 64)
			if err != nil {
				continue
			}
			addFloat(fields, FieldName(name), v)
		}
		if len(fields) == 0 {
			continue
		}

		points = append(points, influxdb2.NewPoint(Measurement, tags, fields, ts))
	}
	return points
}

// FieldName turns a CSV column like "Total_Allocated_MB" into "total_allocated_mb".
func FieldName(column string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(column), " ", "_"))
}

func addFloat(fields map[string]interface{}, name string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	fields[name] = v
}

func (idb *InfluxDBClient) Close() {
	if idb.client != nil {
		idb.client.Close()
	}
}
