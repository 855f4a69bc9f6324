package xmln_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggstr/xflate/symtab"
	"github.com/oggstr/xflate/tagtab"
	"github.com/oggstr/xflate/xmln"
)

func TestEncode_SimpleElement(t *testing.T) {
	syms, err := symtab.New(2)
	require.NoError(t, err)
	tags := tagtab.New()

	out, err := xmln.Encode(strings.NewReader(`<a></a>`), syms, tags)
	require.NoError(t, err)
	assert.Equal(t, "T0 0", out)
}

func TestEncode_SelfClosingIsSameAsExplicitClose(t *testing.T) {
	syms, err := symtab.New(2)
	require.NoError(t, err)
	tags := tagtab.New()

	out, err := xmln.Encode(strings.NewReader(`<a/>`), syms, tags)
	require.NoError(t, err)
	assert.Equal(t, "T0 0", out)
}

func TestEncode_TextContent(t *testing.T) {
	syms, err := symtab.New(2)
	require.NoError(t, err)
	tags := tagtab.New()

	out, err := xmln.Encode(strings.NewReader(`<a>hi</a>`), syms, tags)
	require.NoError(t, err)
	assert.Equal(t, "T0 0102 0", out)
}

func TestEncode_AttributeWithValue(t *testing.T) {
	syms, err := symtab.New(2)
	require.NoError(t, err)
	tags := tagtab.New()

	out, err := xmln.Encode(strings.NewReader(`<a k="v"></a>`), syms, tags)
	require.NoError(t, err)
	assert.Equal(t, "T0 A1 01 0", out)
}

func TestEncode_AttributeWithEmptyValue(t *testing.T) {
	syms, err := symtab.New(1)
	require.NoError(t, err)
	tags := tagtab.New()

	out, err := xmln.Encode(strings.NewReader(`<a k=""></a>`), syms, tags)
	require.NoError(t, err)
	assert.Equal(t, "T0 A1 0", out)
}

func TestEncode_QualifiedNames(t *testing.T) {
	syms, err := symtab.New(2)
	require.NoError(t, err)
	tags := tagtab.New()

	out, err := xmln.Encode(strings.NewReader(`<ns:a ns:k="v"></ns:a>`), syms, tags)
	require.NoError(t, err)
	assert.Equal(t, "T0 A1 01 0", out)
	assert.Equal(t, []string{"ns:a", "ns:k"}, tags.Tags())
}

func TestEncode_NestedElements(t *testing.T) {
	syms, err := symtab.New(2)
	require.NoError(t, err)
	tags := tagtab.New()

	out, err := xmln.Encode(strings.NewReader(`<a><b></b></a>`), syms, tags)
	require.NoError(t, err)
	assert.Equal(t, "T0 T1 0 0", out)
}

func TestEncode_RejectsComment(t *testing.T) {
	syms, err := symtab.New(2)
	require.NoError(t, err)
	tags := tagtab.New()

	_, err = xmln.Encode(strings.NewReader(`<a><!-- nope --></a>`), syms, tags)
	require.Error(t, err)
}

func TestEncode_RejectsDirective(t *testing.T) {
	syms, err := symtab.New(2)
	require.NoError(t, err)
	tags := tagtab.New()

	_, err = xmln.Encode(strings.NewReader(`<!DOCTYPE a><a></a>`), syms, tags)
	require.Error(t, err)
}

func TestEncode_AcceptsXMLDeclaration(t *testing.T) {
	syms, err := symtab.New(2)
	require.NoError(t, err)
	tags := tagtab.New()

	out, err := xmln.Encode(strings.NewReader(`<?xml version="1.0"?><a></a>`), syms, tags)
	require.NoError(t, err)
	assert.Equal(t, "T0 0", out)
}

func TestEncode_RejectsOtherProcessingInstruction(t *testing.T) {
	syms, err := symtab.New(2)
	require.NoError(t, err)
	tags := tagtab.New()

	_, err = xmln.Encode(strings.NewReader(`<a><?pi data?></a>`), syms, tags)
	require.Error(t, err)
}

func TestEncode_UnicodeSingleCharContentAtCodeWidth1(t *testing.T) {
	syms, err := symtab.New(1)
	require.NoError(t, err)
	tags := tagtab.New()

	out, err := xmln.Encode(strings.NewReader(`<p>é</p>`), syms, tags)
	require.NoError(t, err)
	assert.Equal(t, "T0 1 0", out)
}
