package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	evaluation "github.com/next-exp/tpot_eval/pkg"
)

// FileReader reads decoded events, one JSON document each, and applies the
// skip and max_events settings.
type FileReader struct {
	input     io.Reader
	decoder   *json.Decoder
	digest    *xxhash.Digest
	closers   []io.Closer
	EvtCount  int
	Skip      int
	MaxEvents int
}

func NewFileReader(r io.Reader, config evaluation.Configuration) *FileReader {
	digest := xxhash.New()
	input := io.TeeReader(r, digest)
	return &FileReader{
		input:     input,
		decoder:   json.NewDecoder(input),
		digest:    digest,
		EvtCount:  -1,
		Skip:      config.Skip,
		MaxEvents: config.MaxEvents,
	}
}

// OpenFileReader opens filename, decompressing .zst, .gz and .lz4 files.
func OpenFileReader(filename string, config evaluation.Configuration) (*FileReader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	r, closer, err := decompress(filename, file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("error opening compressed file %s: %w", filename, err)
	}
	reader := NewFileReader(r, config)
	if closer != nil {
		reader.closers = append(reader.closers, closer)
	}
	reader.closers = append(reader.closers, file)
	return reader, nil
}

func decompress(filename string, r io.Reader) (io.Reader, io.Closer, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".zst", ".zstd":
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		rc := decoder.IOReadCloser()
		return rc, rc, nil
	case ".gz":
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return gz, gz, nil
	case ".lz4":
		return lz4.NewReader(r), nil, nil
	}
	return r, nil, nil
}

// NextEvent returns io.EOF at the end of the input or once max_events is
// reached.
func (f *FileReader) NextEvent() (evaluation.Event, error) {
	for {
		event := &evaluation.MemoryEvent{}
		if err := f.decoder.Decode(event); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("error decoding event after %d: %w", f.EvtCount+1, err)
		}
		f.EvtCount++
		if f.EvtCount >= f.MaxEvents {
			if VerbosityLevel > 0 {
				logger.Info("Max events reached", "fileReader")
			}
			if _, err := io.Copy(io.Discard, f.input); err != nil {
				return nil, fmt.Errorf("error draining input: %w", err)
			}
			return nil, io.EOF
		}
		if f.EvtCount < f.Skip {
			if VerbosityLevel > 0 {
				message := fmt.Sprintf("Skipping event %d with ID %d", f.EvtCount, event.Number)
				logger.Info(message, "fileReader")
			}
			continue
		}
		if VerbosityLevel > 1 {
			message := fmt.Sprintf("Reading event %d with ID %d", f.EvtCount, event.Number)
			logger.Info(message, "fileReader")
		}
		return event, nil
	}
}

// Digest is the xxhash of the decompressed input. Once NextEvent has returned
// io.EOF it covers the whole stream, including events past max_events.
func (f *FileReader) Digest() uint64 {
	return f.digest.Sum64()
}

func (f *FileReader) Close() error {
	var errs []error
	for _, c := range f.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
