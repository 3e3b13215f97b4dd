package workload

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joshuapare/arenakit/internal/mmfile"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression is the container format of a trace file.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZSTD
	CompressionLZ4
)

// CompressionFor picks the container format from the file extension.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CompressionZSTD
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// Load reads the trace at path. Compressed files are streamed through the
// matching decoder; plain files are parsed from a read-only mapping.
func Load(path string) (*Trace, error) {
	c := CompressionFor(path)
	if c == CompressionNone {
		data, cleanup, err := mmfile.Map(path)
		if err != nil {
			return nil, fmt.Errorf("map trace: %w", err)
		}
		defer cleanup()
		return ParseBytes(data)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch c {
	case CompressionZSTD:
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer dec.Close()
		return Parse(dec)
	default:
		return Parse(lz4.NewReader(f))
	}
}

// Save writes t to path in the container format its extension selects.
func Save(path string, t *Trace) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	var w io.WriteCloser
	switch CompressionFor(path) {
	case CompressionZSTD:
		enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return fmt.Errorf("zstd writer: %w", err)
		}
		w = enc
	case CompressionLZ4:
		w = lz4.NewWriter(f)
	default:
		w = flushCloser{bufio.NewWriter(f)}
	}

	if err := t.Write(w); err != nil {
		return errors.Join(err, w.Close())
	}
	return w.Close()
}

// flushCloser flushes a buffered writer on Close.
type flushCloser struct{ *bufio.Writer }

func (n flushCloser) Close() error { return n.Flush() }
