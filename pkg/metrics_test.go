package evaluation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistries(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetricsWithRegistry(registry)
	metrics.Samples.Add(3)

	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.Samples))
	count, err := testutil.GatherAndCount(registry, "tpot_evaluation_samples_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Independent engines do not share counters
	other := NewMetrics()
	assert.Equal(t, 0.0, testutil.ToFloat64(other.Samples))
}

func TestMetricsWriteToTextfile(t *testing.T) {
	metrics := NewMetrics()
	metrics.EventsProcessed.Add(2)
	metrics.OrphanRecords.Inc()

	filename := filepath.Join(t.TempDir(), "evaluation.prom")
	require.NoError(t, metrics.WriteToTextfile(filename))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(content), "tpot_evaluation_events_processed_total 2")
	assert.Contains(t, string(content), "tpot_evaluation_bco_orphan_records_total 1")
}
