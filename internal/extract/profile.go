// Package extract recovers a structured resume profile from plain text using
// heading anchors, line-oriented parsers and fixed vocabularies.
package extract

import (
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/reference"
)

// ResumeProfile is the structured view of one resume. It is built once per
// request and not modified afterwards.
type ResumeProfile struct {
	RawText              string               `json:"rawText"`
	PersonalInfo         PersonalInfo         `json:"personalInfo"`
	Summary              string               `json:"summary"`
	SummarySource        SummarySource        `json:"summarySource"`
	Skills               []string             `json:"skills"`
	Experience           []ExperienceEntry    `json:"experience"`
	Education            []EducationEntry     `json:"education"`
	Projects             []ProjectEntry       `json:"projects"`
	Certifications       []CertificationEntry `json:"certifications"`
	Languages            []LanguageEntry      `json:"languages"`
	Achievements         []string             `json:"achievements"`
	TotalExperienceYears float64              `json:"totalExperienceYears"`
	Sections             []Section            `json:"sections"`
	Metadata             Metadata             `json:"metadata"`
}

// Parser assembles ResumeProfile values. It holds only read-only state and is
// safe for concurrent use.
type Parser struct {
	data      *reference.Data
	segmenter *Segmenter
	now       func() time.Time
	logger    *zap.Logger
}

// ParserOption customizes a Parser.
type ParserOption func(*Parser)

// WithClock sets the clock used to resolve open-ended ranges such as
// "2020 - present".
func WithClock(now func() time.Time) ParserOption {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) ParserOption {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithSegmenter replaces the built-in section anchors.
func WithSegmenter(s *Segmenter) ParserOption {
	return func(p *Parser) {
		if s != nil {
			p.segmenter = s
		}
	}
}

// NewParser returns a Parser over data. A nil data uses the built-in
// reference data.
func NewParser(data *reference.Data, opts ...ParserOption) *Parser {
	if data == nil {
		data = reference.Default()
	}
	p := &Parser{
		data:      data,
		segmenter: NewSegmenter(),
		now:       time.Now,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse never fails: absent information yields empty values and the summary
// falls back to the default sentence.
func (p *Parser) Parse(raw string) *ResumeProfile {
	text := Normalize(raw)
	sections := p.segmenter.Segment(text)

	summarySpan, hasSummary := sections.Get(SectionSummary)
	summary, source := ExtractSummary(summarySpan, hasSummary, text, p.data.DefaultSummary)

	experienceSpan, _ := sections.Get(SectionExperience)
	educationSpan, _ := sections.Get(SectionEducation)
	projectsSpan, _ := sections.Get(SectionProjects)
	certSpan, _ := sections.Get(SectionCertifications)
	languagesSpan, _ := sections.Get(SectionLanguages)

	profile := &ResumeProfile{
		RawText:              raw,
		PersonalInfo:         ExtractPersonalInfo(text),
		Summary:              summary,
		SummarySource:        source,
		Skills:               ExtractSkills(text, p.data.Technologies),
		Experience:           ParseExperience(experienceSpan),
		Education:            ParseEducation(educationSpan),
		Projects:             ExtractProjects(projectsSpan),
		Certifications:       ExtractCertifications(certSpan, p.data.CertificationIssuers),
		Languages:            ExtractLanguages(languagesSpan, p.data.Languages, p.data.ProficiencyLevels),
		Achievements:         ExtractAchievements(text),
		TotalExperienceYears: TotalExperienceYears(text, p.now()),
		Sections:             sections.Found(),
		Metadata:             DescribeDocument(text, p.data.TechnicalTerms),
	}

	p.logger.Debug("resume parsed",
		zap.Strings("sections", sectionNames(profile.Sections)),
		zap.Int("skills", len(profile.Skills)),
		zap.Int("experience", len(profile.Experience)),
		zap.Int("education", len(profile.Education)),
		zap.Int("projects", len(profile.Projects)),
		zap.String("summary_source", string(profile.SummarySource)),
		zap.Float64("total_experience_years", profile.TotalExperienceYears),
	)

	return profile
}

func sectionNames(sections []Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = string(s)
	}
	return out
}
