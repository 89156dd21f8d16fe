package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netxfw/rxparse/internal/parser"
)

// TestObserve tests that run stats feed the counters
// TestObserve 测试运行统计数据写入计数器
func TestObserve(t *testing.T) {
	lines := testutil.ToFloat64(LinesTotal)
	records := testutil.ToFloat64(RecordsTotal)
	skipped := testutil.ToFloat64(SkippedLinesTotal)
	filtered := testutil.ToFloat64(FilteredRecordsTotal)
	ok := testutil.ToFloat64(RunsTotal.WithLabelValues("success"))
	failed := testutil.ToFloat64(RunsTotal.WithLabelValues("failure"))

	Observe(parser.Stats{Files: 1, Lines: 10, Emitted: 7, Skipped: 3}, 2, nil)
	Observe(parser.Stats{Files: 1, Lines: 2, Emitted: 1}, 0, errors.New("unmatched"))

	assert.Equal(t, lines+12, testutil.ToFloat64(LinesTotal))
	assert.Equal(t, records+6, testutil.ToFloat64(RecordsTotal))
	assert.Equal(t, filtered+2, testutil.ToFloat64(FilteredRecordsTotal))
	assert.Equal(t, skipped+3, testutil.ToFloat64(SkippedLinesTotal))
	assert.Equal(t, ok+1, testutil.ToFloat64(RunsTotal.WithLabelValues("success")))
	assert.Equal(t, failed+1, testutil.ToFloat64(RunsTotal.WithLabelValues("failure")))
}

func TestWriteTextfile(t *testing.T) {
	Observe(parser.Stats{Lines: 1, Emitted: 1}, 0, nil)

	path := filepath.Join(t.TempDir(), "rxparse.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rxparse_records_total")
	assert.Contains(t, string(data), "rxparse_filtered_records_total")
	assert.Contains(t, string(data), `rxparse_runs_total{result="success"}`)
}
