package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/ai"
	"github.com/spigell/resume-analyzer/internal/extract"
	"github.com/spigell/resume-analyzer/internal/logger"
	"github.com/spigell/resume-analyzer/internal/utils"
)

const (
	providerName = "gemini"

	defaultMaxLogLength     = 200
	maxJobDescriptionRunes  = 4000
	maxResumeTextRunes      = 16000
	maxEnrichmentListLength = 10
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Enricher asks Gemini to review a resume and decodes the JSON answer.
type Enricher struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

func NewEnricher(generator contentGenerator, log *zap.Logger, maxLogLength int) *Enricher {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Enricher{
		generator: generator,
		logger:    logger.WithCommonFields(log, providerName, generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (e *Enricher) Enrich(ctx context.Context, req *ai.Request) (*ai.Enrichment, error) {
	if req == nil || req.Profile == nil {
		return nil, fmt.Errorf("resume profile is required")
	}

	profile := *req.Profile
	profile.RawText = ""

	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal profile payload: %w", err)
	}

	analysisJSON := []byte("{}")
	if req.Analysis != nil {
		if analysisJSON, err = json.MarshalIndent(req.Analysis, "", "  "); err != nil {
			return nil, fmt.Errorf("marshal analysis payload: %w", err)
		}
	}

	prompt := buildPrompt(promptInputs{
		targetRole:     req.TargetRole,
		jobDescription: req.JobDescription,
		profileJSON:    string(profileJSON),
		analysisJSON:   string(analysisJSON),
		resumeText:     utils.TruncateRunes(req.Profile.RawText, maxResumeTextRunes),
	})

	e.logger.Debug("gemini generate content request",
		zap.String(logger.FieldRole, req.TargetRole),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("gemini generate content response",
		zap.String(logger.FieldRole, req.TargetRole),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	enrichment, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	enrichment.Provider = providerName
	enrichment.Model = e.generator.Model()
	enrichment.Raw = raw
	return enrichment, nil
}

type promptInputs struct {
	targetRole     string
	jobDescription string
	profileJSON    string
	analysisJSON   string
	resumeText     string
}

func buildPrompt(in promptInputs) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Role: {{TARGET_ROLE}}\n{{JOB_DESCRIPTION}}\n\nProfile:\n{{PROFILE_JSON}}\n\nAnalysis:\n{{ANALYSIS_JSON}}\n\nResume:\n{{RESUME_TEXT}}\n\nJSON Response:"
	}

	role := sanitizeSingleLine(in.targetRole)
	if role == "" {
		role = "unspecified"
	}

	replacer := strings.NewReplacer(
		"{{TARGET_ROLE}}", role,
		"{{JOB_DESCRIPTION}}", sanitizeBlock(in.jobDescription, maxJobDescriptionRunes),
		"{{PROFILE_JSON}}", in.profileJSON,
		"{{ANALYSIS_JSON}}", in.analysisJSON,
		"{{RESUME_TEXT}}", in.resumeText,
	)
	return replacer.Replace(template)
}

// sanitizeSingleLine collapses whitespace and neutralizes square brackets so
// user text cannot open a new prompt section.
func sanitizeSingleLine(s string) string {
	s = neutralizeBrackets(s)
	return strings.Join(strings.Fields(s), " ")
}

// sanitizeBlock renders free text as an indented list, one item per
// non-empty line, truncated to limit runes.
func sanitizeBlock(s string, limit int) string {
	s = utils.TruncateRunes(neutralizeBrackets(s), limit)

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, "  - "+line)
		}
	}
	if len(lines) == 0 {
		return "  - none"
	}
	return strings.Join(lines, "\n")
}

func neutralizeBrackets(s string) string {
	return strings.NewReplacer("[", "(", "]", ")").Replace(s)
}

// response mirrors the JSON schema in prompt.md.
type response struct {
	OverallScore       float64        `mapstructure:"overallScore"`
	JobMatchScore      float64        `mapstructure:"jobMatchScore"`
	Summary            string         `mapstructure:"summary"`
	Strengths          []string       `mapstructure:"strengths"`
	Weaknesses         []string       `mapstructure:"weaknesses"`
	SkillsAnalysis     map[string]int `mapstructure:"skillsAnalysis"`
	MissingSkills      []string       `mapstructure:"missingSkills"`
	Improvements       []string       `mapstructure:"improvements"`
	ProjectSuggestions []string       `mapstructure:"projectSuggestions"`
}

func parseResponse(raw string) (*ai.Enrichment, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyResponse
	}

	var out response
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return nil, fmt.Errorf("create response decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}

	skills := make(map[string]int, len(out.SkillsAnalysis))
	for skill, score := range out.SkillsAnalysis {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills[skill] = int(clampScore(float64(score)))
		}
	}

	enrichment := &ai.Enrichment{
		OverallScore:       clampScore(out.OverallScore),
		JobMatchScore:      clampScore(out.JobMatchScore),
		Summary:            strings.TrimSpace(out.Summary),
		Strengths:          cleanList(out.Strengths),
		Weaknesses:         cleanList(out.Weaknesses),
		SkillsAnalysis:     skills,
		MissingSkills:      cleanList(out.MissingSkills),
		Improvements:       cleanList(out.Improvements),
		ProjectSuggestions: cleanList(out.ProjectSuggestions),
	}
	if enrichment.Summary == "" && len(enrichment.Strengths) == 0 && len(enrichment.Improvements) == 0 {
		return nil, fmt.Errorf("%w: no summary, strengths or improvements", ErrEmptyResponse)
	}
	return enrichment, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, math.Round(v)))
}

// cleanList trims items, drops empty ones and duplicates ignoring case and
// caps the length.
func cleanList(items []string) []string {
	out := []string{}
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		key := extract.FoldKey(item)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
		if len(out) == maxEnrichmentListLength {
			break
		}
	}
	return out
}
