package legcite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmendmentCitationWithSection(t *testing.T) {
	a := ParseAmendmentCitation("2023, c. 8, s. 46")
	if assert.NotNil(t, a) {
		assert.Equal(t, 2023, a.Year)
		assert.Equal(t, 8, a.Chapter)
		assert.True(t, a.HasSection)
		assert.Equal(t, 46, a.Section)
	}
}

func TestParseAmendmentCitationWithoutSection(t *testing.T) {
	a := ParseAmendmentCitation("1985, c. 11")
	if assert.NotNil(t, a) {
		assert.Equal(t, 1985, a.Year)
		assert.Equal(t, 11, a.Chapter)
		assert.False(t, a.HasSection)
	}
}

func TestParseAmendmentCitationMalformed(t *testing.T) {
	assert.Nil(t, ParseAmendmentCitation("malformed"))
	assert.Nil(t, ParseAmendmentCitation("2023 c 8"))
	assert.Nil(t, ParseAmendmentCitation(""))
}
