package tree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBuildsNestedElementTree(t *testing.T) {
	root, err := Parse(strings.NewReader(`<Section id="s1"><Label>1</Label><Text>hello <Emphasis style="bold">world</Emphasis></Text></Section>`))
	require.NoError(t, err)

	assert.Equal(t, "Section", root.Name())
	id, ok := root.Attr("id")
	assert.True(t, ok)
	assert.Equal(t, "s1", id)

	label := root.First("Label")
	require.NotNil(t, label)
	assert.Len(t, label.Contents, 1)
	assert.Equal(t, "1", label.Contents[0].String())
}

func TestParseRejectsUnbalancedTags(t *testing.T) {
	_, err := Parse(strings.NewReader(`<Section><Label>1</Label>`))
	require.Error(t, err)
}

func TestParseRejectsExtraEndTagAfterRootCloses(t *testing.T) {
	_, err := Parse(strings.NewReader(`<Section><Label>1</Label></Section></Section>`))
	require.Error(t, err)
}

func TestAttrOrReturnsDefaultWhenAbsent(t *testing.T) {
	root, err := Parse(strings.NewReader(`<Section><Emphasis>x</Emphasis></Section>`))
	require.NoError(t, err)
	e := root.First("Emphasis")
	require.NotNil(t, e)
	assert.Equal(t, "italic", e.AttrOr("style", "italic"))
}

func TestNameHasPrefixMatchesLimsNamespace(t *testing.T) {
	root, err := Parse(strings.NewReader(`<Section lims:inforce-start-date="2020-01-01"><Text>x</Text></Section>`))
	require.NoError(t, err)
	v, ok := root.Attr("lims:inforce-start-date")
	require.True(t, ok)
	assert.Equal(t, "2020-01-01", v)
	assert.True(t, root.Start.Attrs[0].Name.HasPrefix("lims"))
}

func TestChildrenSkipsCharData(t *testing.T) {
	root, err := Parse(strings.NewReader(`<Section>text before<Label>1</Label>text after<Text>body</Text></Section>`))
	require.NoError(t, err)
	children := root.Children()
	require.Len(t, children, 2)
	assert.Equal(t, "Label", children[0].Name())
	assert.Equal(t, "Text", children[1].Name())
}

func TestChildrenNamedFiltersByNameSet(t *testing.T) {
	root, err := Parse(strings.NewReader(`<Schedule><Section>a</Section><Provision>b</Provision><Heading>c</Heading></Schedule>`))
	require.NoError(t, err)
	matched := root.ChildrenNamed("Section", "Provision")
	require.Len(t, matched, 2)
	assert.Equal(t, "Section", matched[0].Name())
	assert.Equal(t, "Provision", matched[1].Name())
}

func TestFindDescendsIntoChildren(t *testing.T) {
	root, err := Parse(strings.NewReader(`<Body><Part><Section><Label>1</Label></Section></Part></Body>`))
	require.NoError(t, err)
	label := root.Find("Label")
	require.NotNil(t, label)
	assert.Equal(t, "Label", label.Name())
}

func TestFindReturnsNilWhenAbsent(t *testing.T) {
	root, err := Parse(strings.NewReader(`<Body><Part><Section /></Part></Body>`))
	require.NoError(t, err)
	assert.Nil(t, root.Find("MissingElement"))
}

func TestFindAnyOfCollectsAllMatchesInDocumentOrder(t *testing.T) {
	root, err := Parse(strings.NewReader(`<Schedule><Group><Section type="amending">a</Section></Group><Provision>b</Provision></Schedule>`))
	require.NoError(t, err)
	matched := root.FindAnyOf("Section", "Provision")
	require.Len(t, matched, 2)
	assert.Equal(t, "Section", matched[0].Name())
	assert.Equal(t, "Provision", matched[1].Name())
}

func TestElementStringRoundTripsTagNames(t *testing.T) {
	root, err := Parse(strings.NewReader(`<Section><Label>1</Label></Section>`))
	require.NoError(t, err)
	assert.Equal(t, "<Section><Label>1</Label></Section>", root.String())
}
