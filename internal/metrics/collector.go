package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/netxfw/rxparse/internal/parser"
)

var (
	// Line metrics
	LinesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rxparse_lines_total",
			Help: "Total lines read from input files",
		},
	)
	SkippedLinesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rxparse_skipped_lines_total",
			Help: "Total unmatched lines dropped by the ignore_unmatched_line policy",
		},
	)
	FilesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rxparse_files_total",
			Help: "Total input files opened",
		},
	)

	// Record metrics
	RecordsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rxparse_records_total",
			Help: "Total records written to the output",
		},
	)
	FilteredRecordsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rxparse_filtered_records_total",
			Help: "Total records dropped by the output filter",
		},
	)

	// Run metrics
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rxparse_runs_total",
			Help: "Completed runs by result",
		},
		[]string{"result"},
	)
	LastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rxparse_last_run_timestamp_seconds",
			Help: "Unix time the last run ended",
		},
	)
)

// Observe records the outcome of one driver run. filtered is the part of
// stats.Emitted that the output filter dropped.
// Observe 记录一次驱动器运行的结果。filtered 是 stats.Emitted 中被输出过滤器丢弃的部分。
func Observe(stats parser.Stats, filtered int, runErr error) {
	FilesTotal.Add(float64(stats.Files))
	LinesTotal.Add(float64(stats.Lines))
	SkippedLinesTotal.Add(float64(stats.Skipped))
	RecordsTotal.Add(float64(stats.Emitted - filtered))
	FilteredRecordsTotal.Add(float64(filtered))

	result := "success"
	if runErr != nil {
		result = "failure"
	}
	RunsTotal.WithLabelValues(result).Inc()
	LastRunTimestamp.SetToCurrentTime()
}

// WriteTextfile exports the default registry in the node_exporter textfile format.
// WriteTextfile 以 node_exporter 文本文件格式导出默认注册表。
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
