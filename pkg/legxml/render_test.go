package legxml

import (
	"strings"
	"testing"

	"github.com/sprice/legrag/pkg/legxml/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSection(t *testing.T, xmlBody string) *tree.Element {
	t.Helper()
	root, err := tree.Parse(strings.NewReader(xmlBody))
	require.NoError(t, err)
	return root
}

func TestRenderSectionHTMLSkipsLabelAndMarginalNote(t *testing.T) {
	section := parseSection(t, `<Section><Label>1</Label><MarginalNote>Short title</MarginalNote><Text>Body text</Text></Section>`)
	html := renderSectionHTML(section)
	assert.NotContains(t, html, "Short title")
	assert.Contains(t, html, "Body text")
}

func TestRenderElementEmphasisStylesMapToTags(t *testing.T) {
	section := parseSection(t, `<Section><Text><Emphasis style="bold">strong</Emphasis> and <Emphasis style="italic">em</Emphasis></Text></Section>`)
	html := renderSectionHTML(section)
	assert.Contains(t, html, "<strong>strong</strong>")
	assert.Contains(t, html, "<em>em</em>")
}

func TestRenderElementUnknownEmphasisStyleDefaultsToEm(t *testing.T) {
	section := parseSection(t, `<Section><Text><Emphasis style="underline">u</Emphasis></Text></Section>`)
	html := renderSectionHTML(section)
	assert.Contains(t, html, "<em>u</em>")
}

func TestRenderElementXRefExternalRecognizedTypeBuildsLink(t *testing.T) {
	section := parseSection(t, `<Section><Text><XRefExternal reference-type="act" link="C-46">Criminal Code</XRefExternal></Text></Section>`)
	html := renderSectionHTML(section)
	assert.Contains(t, html, `href="/legislation/act/C-46"`)
	assert.Contains(t, html, "Criminal Code")
}

func TestRenderElementXRefExternalUnrecognizedTypeFallsBackToText(t *testing.T) {
	section := parseSection(t, `<Section><Text><XRefExternal reference-type="bogus" link="X">plain text</XRefExternal></Text></Section>`)
	html := renderSectionHTML(section)
	assert.NotContains(t, html, "<a")
	assert.Contains(t, html, "plain text")
}

func TestRenderElementXRefInternalWithoutIdrefFallsBackToSpan(t *testing.T) {
	section := parseSection(t, `<Section><Text><XRefInternal>see above</XRefInternal></Text></Section>`)
	html := renderSectionHTML(section)
	assert.Contains(t, html, `<span class="xref-internal">see above</span>`)
}

func TestRenderElementInsDelPassThroughContentWithoutMarkers(t *testing.T) {
	section := parseSection(t, `<Section><Text><Ins>added</Ins> <Del>removed</Del></Text></Section>`)
	html := renderSectionHTML(section)
	assert.Contains(t, html, "added")
	assert.Contains(t, html, "removed")
	assert.NotContains(t, html, "<Ins>")
	assert.NotContains(t, html, "<Del>")
}

func TestRenderElementBilingualGroupTagsEachLanguage(t *testing.T) {
	section := parseSection(t, `<Section><Text><BilingualGroup><BilingualItemEn>Minister</BilingualItemEn><BilingualItemFr>ministre</BilingualItemFr></BilingualGroup></Text></Section>`)
	html := renderSectionHTML(section)
	assert.Contains(t, html, `<span lang="en" class="bilingual-en">Minister</span>`)
	assert.Contains(t, html, `<span lang="fr" class="bilingual-fr">ministre</span>`)
}
