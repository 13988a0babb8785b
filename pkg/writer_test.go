package evaluation

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evaluation.h5")
	writer, err := NewWriter(path)
	require.NoError(t, err)

	engine := NewEngine(DefaultConfiguration(), NewCalibrationData(), NewMapping())
	container, ok := engine.ProcessEvent(physicsEvent(1, map[int]*MemoryPacket{
		5001: {
			Taggers:   []TaggerRecord{lvl1Tagger(0x200)},
			Waveforms: []WaveformRecord{record(1, 10, 50, 60, 90)},
		},
	}))
	require.True(t, ok)

	require.NoError(t, writer.WriteEvent(container))
	require.NoError(t, writer.WriteBcoCounts(engine.BcoCounts()))
	require.NoError(t, writer.WriteRunInfo(53000, "session", 0xabc))

	assert.Equal(t, 1, writer.EvtCounter)
	assert.Equal(t, uint(1), writer.EventTable.rows)
	assert.Equal(t, uint(1), writer.TaggerTable.rows)
	assert.Equal(t, uint(2), writer.SampleTable.rows)
	assert.Equal(t, uint(1), writer.WaveformTable.rows)
	assert.Equal(t, uint(1), writer.BcoCountTable.rows)
	assert.Equal(t, uint(1), writer.RunInfoTable.rows)
	require.NoError(t, writer.Close())
}

func TestNewWriterOpenError(t *testing.T) {
	writer, err := NewWriter(filepath.Join(t.TempDir(), "missing", "evaluation.h5"))
	assert.Nil(t, writer)
	var openErr *ErrOpenFile
	assert.ErrorAs(t, err, &openErr)
}

func TestWriterAbortReleasesPartialWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.h5")
	file, err := openFile(path)
	require.NoError(t, err)
	group, err := createGroup(file, "Run")
	require.NoError(t, err)

	partial := &Writer{File: file, Filename: path, RunGroup: group}
	errTable := errors.New("no space left")
	writer, err := partial.abort(errTable)
	assert.Nil(t, writer)
	assert.ErrorIs(t, err, errTable)

	// An open file could not be truncated again
	writer, err = NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
}

func TestCloseEmptyWriter(t *testing.T) {
	assert.NoError(t, (&Writer{}).Close())
}
