// Package xmlb is the XMLB stage: a thin, swappable byte-to-byte compression
// backend wrapped around raw DEFLATE (RFC 1951, no zlib/gzip wrapper, no
// framing or checksum of its own).
package xmlb

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/oggstr/xflate/errs"
	"github.com/oggstr/xflate/internal/pool"
)

// BackendLevel selects a DEFLATE compression/speed trade-off.
type BackendLevel int

const (
	// LevelNone stores data with DEFLATE's stored-block mode; fastest, no
	// size reduction.
	LevelNone BackendLevel = iota
	// LevelFast favors speed over ratio.
	LevelFast
	// LevelBest favors ratio over speed.
	LevelBest
)

func (l BackendLevel) flateLevel() int {
	switch l {
	case LevelNone:
		return flate.NoCompression
	case LevelFast:
		return flate.BestSpeed
	case LevelBest:
		return flate.BestCompression
	default:
		return flate.DefaultCompression
	}
}

// Compressor compresses a byte buffer.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte buffer produced by a matching Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines Compressor and Decompressor.
type Codec interface {
	Compressor
	Decompressor
}

// DeflateCodec is the Codec used by the pipeline: raw DEFLATE at a
// configurable BackendLevel.
type DeflateCodec struct {
	level BackendLevel
}

var _ Codec = DeflateCodec{}

// NewDeflateCodec creates a Codec at the given level.
func NewDeflateCodec(level BackendLevel) DeflateCodec {
	return DeflateCodec{level: level}
}

// Compress runs data through a raw DEFLATE writer at the codec's level.
func (c DeflateCodec) Compress(data []byte) ([]byte, error) {
	buf := pool.Get()
	defer pool.Put(buf)

	w, err := flate.NewWriter(buf, c.level.flateLevel())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrBackendCompress, err)
	}

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrBackendCompress, err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrBackendCompress, err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// Decompress inflates a raw DEFLATE stream produced by Compress.
func (c DeflateCodec) Decompress(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrBackendDecompress, err)
	}

	return out, nil
}
