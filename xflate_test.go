package xflate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggstr/xflate"
	"github.com/oggstr/xflate/errs"
	"github.com/oggstr/xflate/xmlb"
)

func newPipeline(t *testing.T, width uint8) *xflate.Pipeline {
	t.Helper()

	p, err := xflate.New(xflate.WithCodeWidth(width), xflate.WithBackendLevel(xmlb.LevelBest))
	require.NoError(t, err)

	return p
}

func scenario(t *testing.T, width uint8, in, want string) {
	t.Helper()

	p := newPipeline(t, width)

	compressed, stats, err := p.Compress(strings.NewReader(in))
	require.NoError(t, err)
	assert.Positive(t, stats.OriginalSize)
	assert.Positive(t, stats.XMLBSize)

	out, err := p.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, want, out)
}

func TestPipeline_ScenarioA_EmptyElement(t *testing.T) {
	scenario(t, 2, `<a></a>`, `<a></a>`)
}

func TestPipeline_ScenarioB_AttributeAndText(t *testing.T) {
	scenario(t, 2, `<a k="x">y</a>`, `<a k="x">y</a>`)
}

func TestPipeline_ScenarioC_SingleSpaceText(t *testing.T) {
	scenario(t, 2, `<p> </p>`, `<p> </p>`)
}

func TestPipeline_ScenarioD_Nested(t *testing.T) {
	scenario(t, 2, `<r><c/><c/></r>`, `<r><c></c><c></c></r>`)
}

func TestPipeline_ScenarioE_EmptyAttributeValue(t *testing.T) {
	scenario(t, 2, `<a k=""/>`, `<a k=""></a>`)
}

func TestPipeline_ScenarioF_UnicodeContentCodeWidth1(t *testing.T) {
	scenario(t, 1, `<p>é</p>`, `<p>é</p>`)
}

func TestPipeline_SelfClosingCanonicalizesToExplicitClose(t *testing.T) {
	scenario(t, 2, `<a/>`, `<a></a>`)
}

func TestPipeline_MultipleAttributesPreserveOrder(t *testing.T) {
	scenario(t, 2, `<a k="1" j="2"></a>`, `<a k="1" j="2"></a>`)
}

func TestPipeline_NamespacePrefixedNames(t *testing.T) {
	scenario(t, 2, `<ns:a ns:k="v"></ns:a>`, `<ns:a ns:k="v"></ns:a>`)
}

func TestPipeline_RejectsComment(t *testing.T) {
	p := newPipeline(t, 2)

	_, _, err := p.Compress(strings.NewReader(`<a><!-- x --></a>`))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUnsupportedEvent)
}

func TestPipeline_SymbolOverflowIsFatal(t *testing.T) {
	p := newPipeline(t, 1)

	var sb strings.Builder
	sb.WriteString("<a>")
	for c := rune(0x100); c < 0x100+20; c++ {
		sb.WriteRune(c)
	}
	sb.WriteString("</a>")

	_, _, err := p.Compress(strings.NewReader(sb.String()))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrSymbolTableOverflow)
}

func TestPipeline_WithTagHeaderFalseIsRejected(t *testing.T) {
	_, err := xflate.New(xflate.WithTagHeader(false))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrHeadersRequired)
}

func TestPipeline_WithSymbolHeaderFalseIsRejected(t *testing.T) {
	_, err := xflate.New(xflate.WithSymbolHeader(false))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrHeadersRequired)
}

func TestNewFromXML_RecommendsCodeWidthFromDocument(t *testing.T) {
	doc := `<a>hello world, this has more than nine distinct characters</a>`

	p, err := xflate.NewFromXML(strings.NewReader(doc))
	require.NoError(t, err)

	compressed, _, err := p.Compress(strings.NewReader(doc))
	require.NoError(t, err)

	out, err := p.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, doc, out)
}

func TestStats_CompressionRatioAndSpaceSavings(t *testing.T) {
	p := newPipeline(t, 2)

	input := strings.Repeat(`<row a="1">value</row>`, 200)
	_, stats, err := p.Compress(strings.NewReader(`<root>` + input + `</root>`))
	require.NoError(t, err)

	assert.Less(t, stats.CompressionRatio(), 1.0)
	assert.Positive(t, stats.SpaceSavings())
	assert.NotZero(t, stats.Checksum)
}
