package extract

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-analyzer/internal/reference"
)

func fixedClock() time.Time {
	return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
}

func TestParseWithoutSections(t *testing.T) {
	profile := NewParser(nil).Parse("lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod tempor")

	assert.Empty(t, profile.Skills)
	assert.Empty(t, profile.Experience)
	assert.Empty(t, profile.Education)
	assert.Empty(t, profile.Projects)
	assert.Empty(t, profile.Sections)
	assert.NotEmpty(t, profile.Summary)
}

func TestParseEmptyDocument(t *testing.T) {
	data := reference.Default()
	profile := NewParser(data).Parse("")

	assert.Equal(t, data.DefaultSummary, profile.Summary)
	assert.Equal(t, SummaryDefault, profile.SummarySource)
	assert.Equal(t, PersonalInfo{}, profile.PersonalInfo)

	raw, err := json.Marshal(profile)
	require.NoError(t, err)
	for _, key := range []string{`"skills":[]`, `"experience":[]`, `"education":[]`, `"projects":[]`, `"achievements":[]`, `"sections":[]`} {
		assert.Contains(t, string(raw), key)
	}
}

func TestParseExperienceSection(t *testing.T) {
	parser := NewParser(nil, WithClock(fixedClock))

	profile := parser.Parse("Experience\nSenior Engineer at Acme Corp (2019-2022)\nBuilt a recommendation service.")

	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "Senior Engineer", profile.Experience[0].Role)
	assert.Equal(t, "Acme Corp", profile.Experience[0].Company)
	assert.Equal(t, "2019-2022", profile.Experience[0].Duration)
	assert.InDelta(t, 3.0, profile.TotalExperienceYears, 0.001)
	assert.Equal(t, []Section{SectionExperience}, profile.Sections)
}

func TestParseOverlappingRanges(t *testing.T) {
	profile := NewParser(nil, WithClock(fixedClock)).Parse("Acme 2018-2020\nGlobex 2019-2021")
	assert.InDelta(t, 4.0, profile.TotalExperienceYears, 0.001)
}

func TestParseFullResume(t *testing.T) {
	profile := NewParser(nil, WithClock(fixedClock)).Parse(sampleResume)

	assert.Equal(t, "Jane Doe", profile.PersonalInfo.Name)
	assert.Equal(t, "jane@example.com", profile.PersonalInfo.Email)
	assert.Equal(t, "Backend engineer with eight years of experience building APIs.", profile.Summary)
	assert.Equal(t, SummaryLabeled, profile.SummarySource)
	assert.Equal(t, []string{"Go", "Python", "SQL"}, profile.Skills)
	require.Len(t, profile.Experience, 1)
	require.Len(t, profile.Education, 1)
	assert.Equal(t, "MIT", profile.Education[0].Institution)
	assert.Equal(t, sampleResume, profile.RawText)
}

func TestParseRespectsBounds(t *testing.T) {
	var b strings.Builder
	b.WriteString("Skills: ")
	for i := range 30 {
		fmt.Fprintf(&b, "Tool%02d, ", i)
	}
	b.WriteString("python, Python, PYTHON\n\nExperience\n")
	for i := range 12 {
		fmt.Fprintf(&b, "Engineer at Company%d (2010-2011)\n", i)
	}
	b.WriteString("\nEducation\n")
	for range 8 {
		b.WriteString("Diploma in Design\n\n")
	}
	b.WriteString("Projects\n")
	for i := range 9 {
		fmt.Fprintf(&b, "Project %d\nA small tool\n\n", i)
	}

	profile := NewParser(nil, WithClock(fixedClock)).Parse(b.String())

	assert.LessOrEqual(t, len(profile.Skills), maxSkills)
	assert.Len(t, profile.Experience, maxExperience)
	assert.LessOrEqual(t, len(profile.Education), maxEducation)
	assert.LessOrEqual(t, len(profile.Projects), maxProjects)
	assert.LessOrEqual(t, len(profile.Achievements), maxProfileAchievements)

	seen := make(map[string]bool)
	for _, skill := range profile.Skills {
		key := FoldKey(skill)
		assert.False(t, seen[key], "duplicate skill %q", skill)
		seen[key] = true
	}
}

func TestParseIsDeterministic(t *testing.T) {
	parser := NewParser(nil, WithClock(fixedClock))
	assert.Equal(t, parser.Parse(sampleResume), parser.Parse(sampleResume))
}

func TestParseLogsSummary(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	parser := NewParser(nil, WithLogger(zap.New(core)), WithClock(fixedClock))

	parser.Parse(sampleResume)

	entries := logs.FilterMessage("resume parsed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(3), fields["skills"])
	assert.Equal(t, string(SummaryLabeled), fields["summary_source"])
}
