// Package ai defines the optional enrichment step that asks a language model
// for a qualitative review on top of the deterministic analysis.
package ai

import (
	"context"

	"github.com/spigell/resume-analyzer/internal/extract"
	"github.com/spigell/resume-analyzer/internal/scoring"
)

// Request carries everything an enricher may look at. Profile and Analysis
// are shared with the caller and must not be modified.
type Request struct {
	TargetRole     string
	JobDescription string
	Profile        *extract.ResumeProfile
	Analysis       *scoring.AnalysisResult
}

// Enrichment is the model's review. Scores are on a 0-100 scale.
type Enrichment struct {
	Provider           string         `json:"provider"`
	Model              string         `json:"model"`
	OverallScore       float64        `json:"overallScore"`
	JobMatchScore      float64        `json:"jobMatchScore"`
	Summary            string         `json:"summary"`
	Strengths          []string       `json:"strengths"`
	Weaknesses         []string       `json:"weaknesses"`
	SkillsAnalysis     map[string]int `json:"skillsAnalysis"`
	MissingSkills      []string       `json:"missingSkills"`
	Improvements       []string       `json:"improvements"`
	ProjectSuggestions []string       `json:"projectSuggestions"`
	Raw                string         `json:"-"`
}

type Enricher interface {
	Enrich(ctx context.Context, req *Request) (*Enrichment, error)
}
