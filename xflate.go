// Package xflate implements the full XML compression pipeline: XMLN encode,
// header serialization, XMLS nibble packing, and a DEFLATE backend, plus the
// matching decompression path.
package xflate

import (
	"bytes"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/oggstr/xflate/errs"
	"github.com/oggstr/xflate/header"
	"github.com/oggstr/xflate/internal/options"
	"github.com/oggstr/xflate/prescan"
	"github.com/oggstr/xflate/symtab"
	"github.com/oggstr/xflate/tagtab"
	"github.com/oggstr/xflate/xmlb"
	"github.com/oggstr/xflate/xmln"
	"github.com/oggstr/xflate/xmls"
)

// Config holds the pipeline's tunable parameters. Construct one only through
// New/NewFromXML and functional options; the zero value is not usable.
type Config struct {
	codeWidth        uint8
	backendLevel     xmlb.BackendLevel
	emitTagHeader    bool
	emitSymbolHeader bool
}

func defaultConfig() Config {
	return Config{
		codeWidth:        2,
		backendLevel:     xmlb.LevelBest,
		emitTagHeader:    true,
		emitSymbolHeader: true,
	}
}

// Option configures a Config via New/NewFromXML.
type Option = options.Option[*Config]

// WithCodeWidth sets the symbol table's fixed code width, in [1,9].
func WithCodeWidth(width uint8) Option {
	return options.New(func(c *Config) error {
		if width < 1 || width > 9 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidCodeWidth, width)
		}

		c.codeWidth = width

		return nil
	})
}

// WithBackendLevel sets the DEFLATE backend's speed/ratio trade-off.
func WithBackendLevel(level xmlb.BackendLevel) Option {
	return options.NoError(func(c *Config) {
		c.backendLevel = level
	})
}

// WithTagHeader controls whether the tag header is emitted. Only true is
// supported: the decoder has no other way to rebuild the tag table, so
// passing false is a configuration error.
func WithTagHeader(enabled bool) Option {
	return options.New(func(c *Config) error {
		if !enabled {
			return errs.ErrHeadersRequired
		}

		c.emitTagHeader = enabled

		return nil
	})
}

// WithSymbolHeader is the symbol-table analogue of WithTagHeader.
func WithSymbolHeader(enabled bool) Option {
	return options.New(func(c *Config) error {
		if !enabled {
			return errs.ErrHeadersRequired
		}

		c.emitSymbolHeader = enabled

		return nil
	})
}

// Pipeline runs the XMLN/header/XMLS/XMLB stages as one unit.
//
// Unlike the teacher's stateful encoders (which document "not reusable,
// create a new instance" because their tables live on the encoder and grow
// across calls), Pipeline holds nothing but its Config: Compress builds a
// fresh tag table and symbol table for every call, and Decompress rebuilds
// both from each payload's own header. There is no Reset method because
// there is no carried-over state to reset — a single Pipeline value is safe
// to reuse across any number of independent Compress/Decompress calls.
type Pipeline struct {
	config Config
}

// New builds a Pipeline from the given options over the package defaults
// (code_width 2, best compression, both headers on).
func New(opts ...Option) (*Pipeline, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return &Pipeline{config: cfg}, nil
}

// NewFromXML pre-scans r to recommend a code_width sized to the document's
// actual symbol usage, then builds a Pipeline with that width. Any opts
// passed are applied after the recommendation and may override it. r must
// support being read again afterward by the caller if it is also passed to
// Compress; NewFromXML consumes it fully.
func NewFromXML(r io.Reader, opts ...Option) (*Pipeline, error) {
	result, err := prescan.Scan(r)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	cfg.codeWidth = result.RecommendedCodeWidth

	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return &Pipeline{config: cfg}, nil
}

// Stats reports the size of the document at each pipeline stage, for
// monitoring compression effectiveness.
type Stats struct {
	OriginalSize int
	XMLNSize     int
	XMLSSize     int
	XMLBSize     int
	// Checksum is an xxhash64 digest of the original input, carried out of
	// band so a caller can verify Decompress reproduced the same document
	// without the wire format itself carrying any framing or checksum.
	Checksum uint64
}

// CompressionRatio returns XMLBSize/OriginalSize; values below 1.0 indicate
// the output is smaller than the input.
func (s Stats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.XMLBSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage (0-100).
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// Compress reads a full XML document from r and returns the compressed XMLB
// bytes plus size statistics for each stage.
func (p *Pipeline) Compress(r io.Reader) ([]byte, Stats, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to read input: %w", err)
	}

	symTable, err := symtab.New(p.config.codeWidth)
	if err != nil {
		return nil, Stats{}, err
	}
	tagTable := tagtab.New()

	xmlnText, err := xmln.Encode(bytes.NewReader(raw), symTable, tagTable)
	if err != nil {
		return nil, Stats{}, err
	}

	packedBody, err := xmls.Encode(xmlnText)
	if err != nil {
		return nil, Stats{}, err
	}

	combined := append(header.Format(tagTable, symTable), packedBody...)

	codec := xmlb.NewDeflateCodec(p.config.backendLevel)
	compressed, err := codec.Compress(combined)
	if err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{
		OriginalSize: len(raw),
		XMLNSize:     len(xmlnText),
		XMLSSize:     len(combined),
		XMLBSize:     len(compressed),
		Checksum:     xxhash.Sum64(raw),
	}

	return compressed, stats, nil
}

// Decompress reverses Compress, returning the canonicalized XML text.
func (p *Pipeline) Decompress(data []byte) (string, error) {
	codec := xmlb.NewDeflateCodec(p.config.backendLevel)

	inflated, err := codec.Decompress(data)
	if err != nil {
		return "", err
	}

	tagTable, symTable, body, err := header.Parse(inflated)
	if err != nil {
		return "", err
	}

	xmlnText, err := xmls.Decode(body)
	if err != nil {
		return "", err
	}

	return xmln.Decode(xmlnText, symTable, tagTable)
}
