package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/resume-analyzer/internal/reference"
)

func TestExtractSkillsFromHeading(t *testing.T) {
	skills := ExtractSkills("Skills: Python, SQL, Docker", reference.Default().Technologies)
	assert.Equal(t, []string{"Python", "SQL", "Docker"}, skills)
}

func TestExtractSkillsDeduplicatesIgnoringCase(t *testing.T) {
	text := "Technical Skills:\n• python, PYTHON, Kubernetes\n\nTools and Technologies: Docker, kubernetes"

	skills := ExtractSkills(text, reference.Default().Technologies)

	assert.Equal(t, []string{"python", "Kubernetes", "Docker"}, skills)
}

func TestExtractSkillsKeepsLabeledLinesInBlock(t *testing.T) {
	text := "Skills\nLanguages: Rust, Elixir\nFrameworks: Phoenix"

	skills := ExtractSkills(text, nil)

	assert.Equal(t, []string{"Rust", "Elixir", "Phoenix"}, skills)
}

func TestExtractSkillsVocabularyUsesTokenBoundaries(t *testing.T) {
	skills := ExtractSkills("Worked with JavaScript and PostgreSQL daily, ready to go.", reference.Default().Technologies)
	assert.Equal(t, []string{"JavaScript", "PostgreSQL"}, skills)
}

func TestExtractSkillsCap(t *testing.T) {
	items := make([]string, 0, 20)
	for i := 1; i <= 20; i++ {
		items = append(items, fmt.Sprintf("Alpha%02d", i))
	}
	text := "Skills: " + strings.Join(items, ", ") + "\n\nJavaScript Python Java React Angular HTML CSS TypeScript"

	skills := ExtractSkills(text, reference.Default().Technologies)

	assert.Len(t, skills, maxSkills)
	assert.Equal(t, "Alpha01", skills[0])
}

func TestExtractSkillsFiltersNoise(t *testing.T) {
	skills := ExtractSkills("Skills: and, 2020, x, Go, a very long phrase that is clearly not a skill", nil)
	assert.Equal(t, []string{"Go"}, skills)
}

func TestContainsTerm(t *testing.T) {
	tests := []struct {
		text   string
		term   string
		expect bool
	}{
		{"I write Go daily", "Go", true},
		{"let's go now", "Go", false},
		{"C++ and C#", "C", false},
		{"Node.js, React", "node.js", true},
		{"MySQL only", "SQL", false},
		{"", "Go", false},
		{"Go", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.term, func(t *testing.T) {
			assert.Equal(t, tt.expect, ContainsTerm(tt.text, tt.term))
		})
	}
}
