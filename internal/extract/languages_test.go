package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/resume-analyzer/internal/reference"
)

func TestExtractLanguages(t *testing.T) {
	data := reference.Default()

	tests := []struct {
		name   string
		span   string
		expect []LanguageEntry
	}{
		{
			name: "levels from the same clause",
			span: "English (native), Spanish - fluent, German",
			expect: []LanguageEntry{
				{Language: "English", Proficiency: "native"},
				{Language: "Spanish", Proficiency: "fluent"},
				{Language: "German", Proficiency: "unspecified"},
			},
		},
		{
			name: "order of first mention",
			span: "French (basic)\nEnglish (Fluent)",
			expect: []LanguageEntry{
				{Language: "French", Proficiency: "basic"},
				{Language: "English", Proficiency: "fluent"},
			},
		},
		{
			name: "capped",
			span: "English, Spanish, French, German, Italian, Portuguese",
			expect: []LanguageEntry{
				{Language: "English", Proficiency: "unspecified"},
				{Language: "Spanish", Proficiency: "unspecified"},
				{Language: "French", Proficiency: "unspecified"},
				{Language: "German", Proficiency: "unspecified"},
				{Language: "Italian", Proficiency: "unspecified"},
			},
		},
		{
			name:   "nothing known",
			span:   "Klingon",
			expect: []LanguageEntry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, ExtractLanguages(tt.span, data.Languages, data.ProficiencyLevels))
		})
	}
}
