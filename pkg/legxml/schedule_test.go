package legxml

import (
	"strings"
	"testing"

	"github.com/sprice/legrag/pkg/legtypes"
	"github.com/sprice/legrag/pkg/legxml/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSchedule(t *testing.T, xmlBody string) *tree.Element {
	t.Helper()
	root, err := tree.Parse(strings.NewReader(xmlBody))
	require.NoError(t, err)
	return root
}

func TestWalkScheduleDefaultsToPlainSchedule(t *testing.T) {
	schedule := parseSchedule(t, `<Schedule id="sch1"><Section><Label>1</Label><Text>Form text</Text></Section></Schedule>`)
	st := &parseState{lang: legtypes.LanguageEN, docKind: legtypes.DocumentKindAct, act: &legtypes.ActFields{ActID: "C-1"}}

	walkSchedule(st, schedule)

	require.Len(t, st.sections, 1)
	assert.Equal(t, legtypes.SectionTypeSchedule, st.sections[0].SectionType)
}

func TestWalkScheduleNifProvsIDMarksAmending(t *testing.T) {
	schedule := parseSchedule(t, `<Schedule id="NifProvs"><Section><Label>1</Label><Text>Amending text</Text></Section></Schedule>`)
	st := &parseState{lang: legtypes.LanguageEN, docKind: legtypes.DocumentKindAct, act: &legtypes.ActFields{ActID: "C-1"}}

	walkSchedule(st, schedule)

	require.Len(t, st.sections, 1)
	assert.Equal(t, legtypes.SectionTypeAmending, st.sections[0].SectionType)
}

func TestWalkScheduleDescendantSectionTypeMarksAmending(t *testing.T) {
	schedule := parseSchedule(t, `<Schedule id="sch2"><Section type="CIF"><Label>1</Label><Text>text</Text></Section></Schedule>`)
	st := &parseState{lang: legtypes.LanguageEN, docKind: legtypes.DocumentKindAct, act: &legtypes.ActFields{ActID: "C-1"}}

	walkSchedule(st, schedule)

	require.Len(t, st.sections, 1)
	assert.Equal(t, legtypes.SectionTypeAmending, st.sections[0].SectionType)
}

func TestWalkScheduleHeadingTypeMarksAmendingWithNoTypedDescendant(t *testing.T) {
	schedule := parseSchedule(t, `<Schedule id="sch3"><Heading type="amending">Amendments to Other Acts</Heading><Section><Label>1</Label><Text>text</Text></Section></Schedule>`)
	st := &parseState{lang: legtypes.LanguageEN, docKind: legtypes.DocumentKindAct, act: &legtypes.ActFields{ActID: "C-1"}}

	walkSchedule(st, schedule)

	require.Len(t, st.sections, 1)
	assert.Equal(t, legtypes.SectionTypeAmending, st.sections[0].SectionType,
		"a schedule tagged amending only through its own Heading @type must still be classified amending")
}

func TestWalkScheduleDocumentInternalProvisionsCarryGroupHierarchy(t *testing.T) {
	schedule := parseSchedule(t, `<Schedule id="sch4"><Group><Label>Part I</Label>
		<DocumentInternal><Provision><Label>1</Label><Text>First provision</Text></Provision></DocumentInternal>
	</Group></Schedule>`)
	st := &parseState{lang: legtypes.LanguageEN, docKind: legtypes.DocumentKindAct, act: &legtypes.ActFields{ActID: "C-1"}}

	walkSchedule(st, schedule)

	require.Len(t, st.sections, 1)
	assert.Contains(t, st.sections[0].HierarchyPath, "Part I")
	assert.Equal(t, legtypes.ContentFlagHasSchedule, st.sections[0].ContentFlags&legtypes.ContentFlagHasSchedule)
}
