package legcite

import (
	"testing"

	"github.com/sprice/legrag/pkg/legtypes"
	"github.com/stretchr/testify/assert"
)

func TestSectionAnchorStripsNonAlphanumerics(t *testing.T) {
	assert.Equal(t, "sec11", SectionAnchor("1.1"))
	assert.Equal(t, "sec2a", SectionAnchor("2(a)"))
}

func TestDocumentURLBilingualPair(t *testing.T) {
	urls := DocumentURL("C-46", legtypes.DocumentKindAct)
	assert.Contains(t, urls[legtypes.LanguageEN], "/eng/acts/C-46/")
	assert.Contains(t, urls[legtypes.LanguageFR], "/fra/lois/C-46/")
}

func TestSectionURLCarriesAnchor(t *testing.T) {
	urls := SectionURL("C-46", "2(a)", legtypes.DocumentKindAct)
	assert.Contains(t, urls[legtypes.LanguageEN], "#sec2a")
}

func TestAnnualStatuteURLBilingualPair(t *testing.T) {
	a := ParseAmendmentCitation("2023, c. 8, s. 46")
	urls := AnnualStatuteURL(a)
	assert.Contains(t, urls[legtypes.LanguageEN], "/eng/annualStatutes/2023/c8/")
	assert.Contains(t, urls[legtypes.LanguageFR], "/fra/LoisAnnuelles/2023/c8/")
}
