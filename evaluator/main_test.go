package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithoutDatabase(t *testing.T) {
	dir := t.TempDir()
	eventsFile := filepath.Join(dir, "events.json")
	metricsFile := filepath.Join(dir, "evaluation.prom")
	require.NoError(t, os.WriteFile(eventsFile,
		[]byte(eventLines(1, 2)+`{"type": 9, "number": 3}`+"\n"), 0o644))

	configFile := filepath.Join(dir, "config.json")
	config := fmt.Sprintf(`{"file_in": %q, "metrics_file": %q, "no_db": true, "write_data": false}`,
		eventsFile, metricsFile)
	require.NoError(t, os.WriteFile(configFile, []byte(config), 0o644))

	require.NoError(t, run(configFile))

	content, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "tpot_evaluation_events_processed_total 2")
	assert.Contains(t, string(content), "tpot_evaluation_events_skipped_total 1")
	assert.Contains(t, string(content), "tpot_evaluation_samples_total 4")
	assert.Contains(t, string(content), "tpot_evaluation_bco_markers_consumed_total 2")
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.json")
	config := fmt.Sprintf(`{"file_in": %q, "no_db": true, "write_data": false}`,
		filepath.Join(dir, "missing.json"))
	require.NoError(t, os.WriteFile(configFile, []byte(config), 0o644))

	assert.Error(t, run(configFile))
}
