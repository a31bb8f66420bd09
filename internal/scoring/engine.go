// Package scoring compares a resume profile with a role profile and produces
// an explainable analysis: skill coverage, an ATS score, a content-quality
// rating and prioritized improvements.
package scoring

import (
	"slices"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/extract"
	"github.com/spigell/resume-analyzer/internal/reference"
)

// AnalysisResult is the deterministic analysis of one resume.
type AnalysisResult struct {
	TargetRole             string         `json:"targetRole"`
	SkillsAnalysis         map[string]int `json:"skillsAnalysis"`
	FoundRequiredSkills    []string       `json:"foundRequiredSkills"`
	FoundPreferredSkills   []string       `json:"foundPreferredSkills"`
	MissingRequiredSkills  []string       `json:"missingRequiredSkills"`
	MissingPreferredSkills []string       `json:"missingPreferredSkills"`
	MissingSkills          []string       `json:"missingSkills"`
	FoundKeyTerms          []string       `json:"foundKeyTerms"`
	Improvements           []string       `json:"improvements"`
	ATSScore               int            `json:"atsScore"`
	ATSBreakdown           map[string]int `json:"atsBreakdown"`
	ContentQuality         ContentQuality `json:"contentQuality"`
	ProjectSuggestions     []string       `json:"projectSuggestions"`
}

// Engine scores profiles. It keeps no per-request state.
type Engine struct {
	estimator ProficiencyEstimator
	logger    *zap.Logger
}

// NewEngine returns an engine. A nil estimator uses a HashEstimator with seed
// zero and a nil logger discards output.
func NewEngine(estimator ProficiencyEstimator, logger *zap.Logger) *Engine {
	if estimator == nil {
		estimator = NewHashEstimator(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{estimator: estimator, logger: logger}
}

// Score analyzes profile against role.
func (e *Engine) Score(profile *extract.ResumeProfile, role reference.RoleProfile) *AnalysisResult {
	if profile == nil {
		profile = &extract.ResumeProfile{}
	}

	text := extract.Normalize(profile.RawText)
	matcher := newSkillMatcher(profile.Skills, text)

	foundRequired, missingRequired := matcher.partition(role.RequiredSkills)
	foundPreferred, missingPreferred := matcher.partition(role.PreferredSkills)
	foundKeyTerms := keyTermsIn(text, role.KeyTerms)

	missing := slices.Clone(missingRequired)
	missing = append(missing, missingPreferred[:min(missingSkillsShown, len(missingPreferred))]...)

	ats, breakdown := atsScore(profile, len(foundRequired))

	result := &AnalysisResult{
		TargetRole:             role.Name,
		SkillsAnalysis:         e.skillsAnalysis(profile.Skills, foundRequired, foundPreferred),
		FoundRequiredSkills:    foundRequired,
		FoundPreferredSkills:   foundPreferred,
		MissingRequiredSkills:  missingRequired,
		MissingPreferredSkills: missingPreferred,
		MissingSkills:          missing,
		FoundKeyTerms:          foundKeyTerms,
		Improvements: improvements(improvementInput{
			profile:         profile,
			role:            role,
			missingRequired: missingRequired,
			foundKeyTerms:   foundKeyTerms,
		}),
		ATSScore:           ats,
		ATSBreakdown:       breakdown,
		ContentQuality:     assessContentQuality(profile),
		ProjectSuggestions: nonNil(slices.Clone(role.ProjectSuggestions)),
	}

	e.logger.Debug("resume scored",
		zap.String("target_role", role.Name),
		zap.Int("ats_score", result.ATSScore),
		zap.Int("content_quality", result.ContentQuality.Score),
		zap.Int("found_required", len(foundRequired)),
		zap.Int("missing_required", len(missingRequired)),
		zap.Int("improvements", len(result.Improvements)),
	)

	return result
}

// skillsAnalysis scores required matches before preferred ones, so a skill
// listed in both ends with the preferred score. Other extracted skills are
// scored once.
func (e *Engine) skillsAnalysis(skills, required, preferred []string) map[string]int {
	out := make(map[string]int, len(skills)+len(required)+len(preferred))
	scored := make(map[string]struct{})

	for _, skill := range required {
		out[skill] = e.estimator.Estimate(skill, RequiredBand)
		scored[extract.FoldKey(skill)] = struct{}{}
	}
	for _, skill := range preferred {
		out[skill] = e.estimator.Estimate(skill, PreferredBand)
		scored[extract.FoldKey(skill)] = struct{}{}
	}
	for _, skill := range skills {
		if _, ok := scored[extract.FoldKey(skill)]; ok {
			continue
		}
		out[skill] = e.estimator.Estimate(skill, OtherBand)
		scored[extract.FoldKey(skill)] = struct{}{}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
