package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEducation(t *testing.T) {
	span := `B.S. in Computer Science from MIT (2014)
GPA: 3.8

Stanford University
Master of Science in Statistics, 2018`

	entries := ParseEducation(span)

	require.Len(t, entries, 2)
	assert.Equal(t, EducationEntry{
		Degree:      "B.S.",
		Major:       "Computer Science",
		Institution: "MIT",
		Year:        "2014",
		GPA:         "3.8",
	}, entries[0])
	assert.Equal(t, EducationEntry{
		Degree:      "Master of Science",
		Major:       "Statistics",
		Institution: "Stanford University",
		Year:        "2018",
	}, entries[1])
}

func TestParseEducationInstitutionBeforeDegree(t *testing.T) {
	entries := ParseEducation("Stanford University, B.S. in Computer Science")

	require.Len(t, entries, 1)
	assert.Equal(t, "Stanford University", entries[0].Institution)
	assert.Equal(t, "B.S.", entries[0].Degree)
	assert.Equal(t, "Computer Science", entries[0].Major)
}

func TestParseEducationSecondDegreeClosesEntry(t *testing.T) {
	entries := ParseEducation("Bachelor of Arts in History\nMaster of Arts in History")

	require.Len(t, entries, 2)
	assert.Equal(t, "Bachelor of Arts", entries[0].Degree)
	assert.Equal(t, "Master of Arts", entries[1].Degree)
}

func TestParseEducationDropsEntriesWithoutDegreeOrInstitution(t *testing.T) {
	assert.Empty(t, ParseEducation("GPA: 3.9"))
	assert.NotNil(t, ParseEducation(""))
}

func TestParseEducationCap(t *testing.T) {
	blocks := make([]string, 0, 7)
	for range 7 {
		blocks = append(blocks, "Diploma in Design")
	}

	entries := ParseEducation(strings.Join(blocks, "\n\n"))
	assert.Len(t, entries, maxEducation)
}
