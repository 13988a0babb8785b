package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	evaluation "github.com/next-exp/tpot_eval/pkg"
)

func eventLines(numbers ...int) string {
	var b strings.Builder
	for _, n := range numbers {
		fmt.Fprintf(&b, `{"type": 1, "number": %d, "packets": {"5001": {"taggers": [{"is_lvl1": true, "bco": %d}], "waveforms": [{"fee": 2, "channel": 7, "bco": %d, "samples": 2, "adc": [60, 90]}]}}}`+"\n",
			n, 1000+n, 100*n)
	}
	return b.String()
}

func readNumbers(t *testing.T, reader *FileReader) []int {
	var numbers []int
	for {
		event, err := reader.NextEvent()
		if err == io.EOF {
			return numbers
		}
		require.NoError(t, err)
		numbers = append(numbers, event.EventNumber())
	}
}

func TestFileReaderSkipAndMax(t *testing.T) {
	config := evaluation.DefaultConfiguration()
	config.Skip = 1
	config.MaxEvents = 4

	reader := NewFileReader(strings.NewReader(eventLines(10, 11, 12, 13, 14)), config)
	assert.Equal(t, []int{11, 12, 13}, readNumbers(t, reader))
}

func TestFileReaderDigestCoversUnreadEvents(t *testing.T) {
	config := evaluation.DefaultConfiguration()
	config.MaxEvents = 1
	input := eventLines(1, 2, 3) + strings.Repeat(" ", 64*1024) + eventLines(4)

	reader := NewFileReader(strings.NewReader(input), config)
	assert.Equal(t, []int{1}, readNumbers(t, reader))
	assert.Equal(t, xxhash.Sum64String(input), reader.Digest())
}

func TestFileReaderEvents(t *testing.T) {
	input := eventLines(1, 2)
	reader := NewFileReader(strings.NewReader(input), evaluation.DefaultConfiguration())

	event, err := reader.NextEvent()
	require.NoError(t, err)
	packet, ok := event.Packet(5001)
	require.True(t, ok)
	assert.Equal(t, int64(1001), packet.LValue(0, evaluation.FieldBco))
	assert.Equal(t, int64(100), packet.IValue(0, evaluation.FieldBco))
	assert.Equal(t, int64(90), packet.SampleValue(0, 1))

	assert.Equal(t, []int{2}, readNumbers(t, reader))
	assert.Equal(t, xxhash.Sum64String(input), reader.Digest())
}

func TestFileReaderMalformed(t *testing.T) {
	reader := NewFileReader(strings.NewReader(eventLines(1)+"{\"type\": "), evaluation.DefaultConfiguration())

	_, err := reader.NextEvent()
	require.NoError(t, err)
	_, err = reader.NextEvent()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
}

func TestOpenFileReaderCompressed(t *testing.T) {
	input := eventLines(1, 2, 3)

	compressors := map[string]func(io.Writer) io.WriteCloser{
		"events.json": func(w io.Writer) io.WriteCloser { return nopWriteCloser{w} },
		"events.json.gz": func(w io.Writer) io.WriteCloser {
			return gzip.NewWriter(w)
		},
		"events.json.zst": func(w io.Writer) io.WriteCloser {
			encoder, err := zstd.NewWriter(w)
			require.NoError(t, err)
			return encoder
		},
		"events.json.lz4": func(w io.Writer) io.WriteCloser {
			return lz4.NewWriter(w)
		},
	}
	for name, compressor := range compressors {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			w := compressor(&buf)
			_, err := w.Write([]byte(input))
			require.NoError(t, err)
			require.NoError(t, w.Close())

			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

			reader, err := OpenFileReader(path, evaluation.DefaultConfiguration())
			require.NoError(t, err)
			defer reader.Close()

			assert.Equal(t, []int{1, 2, 3}, readNumbers(t, reader))
			assert.Equal(t, xxhash.Sum64String(input), reader.Digest())
		})
	}
}

func TestOpenFileReaderMissing(t *testing.T) {
	_, err := OpenFileReader(filepath.Join(t.TempDir(), "missing.json"), evaluation.DefaultConfiguration())
	assert.Error(t, err)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
