package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExperienceSingleEntry(t *testing.T) {
	entries := ParseExperience("Senior Engineer at Acme Corp (2019-2022)\nBuilt a recommendation service.")

	require.Len(t, entries, 1)
	assert.Equal(t, ExperienceEntry{
		Role:             "Senior Engineer",
		Company:          "Acme Corp",
		Duration:         "2019-2022",
		Description:      "Built a recommendation service.",
		Responsibilities: []string{},
		Achievements:     []string{},
	}, entries[0])
}

func TestParseExperienceMultipleEntries(t *testing.T) {
	span := `Backend Engineer at Globex (2020 - present)
• Led a team of 5 engineers
• Reduced latency by 40%
Migrated billing to Go. Cut infrastructure costs by $20k per year.

Software Engineer - Initech
Jan 2017 - Dec 2019
Maintained internal tools.`

	entries := ParseExperience(span)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "Backend Engineer", first.Role)
	assert.Equal(t, "Globex", first.Company)
	assert.Equal(t, "2020 - present", first.Duration)
	assert.Equal(t, []string{"Led a team of 5 engineers", "Reduced latency by 40%"}, first.Responsibilities)
	assert.Equal(t, []string{
		"Led a team of 5 engineers",
		"Reduced latency by 40%",
		"Cut infrastructure costs by $20k per year",
	}, first.Achievements)

	second := entries[1]
	assert.Equal(t, "Software Engineer", second.Role)
	assert.Equal(t, "Initech", second.Company)
	assert.Equal(t, "Jan 2017 - Dec 2019", second.Duration)
	assert.Equal(t, "Maintained internal tools.", second.Description)
	assert.Empty(t, second.Achievements)
}

func TestParseExperienceInlineResponsibilities(t *testing.T) {
	entries := ParseExperience("Engineer at Acme\nBuilt APIs - Wrote docs - Ran on-call rotation")

	require.Len(t, entries, 1)
	assert.Equal(t, []string{"Built APIs", "Wrote docs", "Ran on-call rotation"}, entries[0].Responsibilities)
}

func TestParseExperienceRejectsNonHeaders(t *testing.T) {
	tests := []struct {
		name string
		span string
	}{
		{name: "lowercase role", span: "worked at Acme for a while"},
		{name: "prose sentence", span: "Spent three years at Initech building things."},
		{name: "bullet", span: "• Engineer at Acme"},
		{name: "dash inside a block", span: "Intro line that is long enough\nEngineer - Acme"},
		{name: "year as role", span: "2019 at Acme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, ParseExperience(tt.span))
		})
	}
}

func TestParseExperienceCap(t *testing.T) {
	var lines []string
	for i := 1; i <= 10; i++ {
		lines = append(lines, fmt.Sprintf("Engineer at Company%d", i))
	}

	entries := ParseExperience(strings.Join(lines, "\n"))

	require.Len(t, entries, maxExperience)
	assert.Equal(t, "Company1", entries[0].Company)
}

func TestExperienceParserStates(t *testing.T) {
	p := NewExperienceParser()
	assert.Equal(t, "idle", p.State())

	p.Feed("A line before any header that is ignored")
	assert.Equal(t, "idle", p.State())

	p.Feed("Engineer at Acme")
	assert.Equal(t, "open-entry", p.State())

	p.Feed("Shipped the billing platform rewrite")
	entries := p.Close()
	assert.Equal(t, "idle", p.State())

	require.Len(t, entries, 1)
	assert.Equal(t, "Shipped the billing platform rewrite", entries[0].Description)

	assert.Empty(t, p.Close())
}

func TestParseExperienceEmpty(t *testing.T) {
	entries := ParseExperience("")
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
