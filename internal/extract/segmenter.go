package extract

import (
	"regexp"
	"strings"
)

// Section names a logical part of a resume.
type Section string

const (
	SectionSummary        Section = "summary"
	SectionSkills         Section = "skills"
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionProjects       Section = "projects"
	SectionCertifications Section = "certifications"
	SectionLanguages      Section = "languages"
)

// Rule anchors a section at a heading. Rules for the same section are tried
// in table order and the first one that matches anywhere in the text wins.
type Rule struct {
	Section Section
	Pattern *regexp.Regexp
}

// heading builds a line-anchored, case-insensitive pattern for the given
// keyword alternatives. The keyword must be followed by a colon or end the
// line, so prose such as "Experience with Go" is not taken as a heading.
func heading(keywords string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^[ \t]*(?:` + keywords + `)[ \t]*(?::|$)`)
}

// DefaultRules returns the built-in anchor table.
func DefaultRules() []Rule {
	return []Rule{
		{SectionSummary, heading(`(?:professional\s+|career\s+|executive\s+)?summary`)},
		{SectionSummary, heading(`(?:career\s+)?objective|(?:professional\s+)?profile|about\s+me`)},

		{SectionSkills, heading(`(?:technical\s+|core\s+|key\s+)?skills(?:\s+(?:&|and)\s+\w+)?`)},
		{SectionSkills, heading(`tools\s+(?:and|&)\s+technologies|technologies|competencies`)},

		{SectionExperience, heading(`(?:professional|work|relevant)\s+experience`)},
		{SectionExperience, heading(`experience|employment(?:\s+history)?|work\s+history|career\s+history`)},

		{SectionEducation, heading(`education(?:\s+(?:&|and)\s+training)?|academic\s+background`)},
		{SectionEducation, heading(`academics?|qualifications`)},

		{SectionProjects, heading(`(?:personal\s+|key\s+|selected\s+|academic\s+)?projects?`)},
		{SectionProjects, heading(`portfolio`)},

		{SectionCertifications, heading(`certifications?|licenses?\s+(?:&|and)\s+certifications?`)},
		{SectionCertifications, heading(`certificates?|courses?`)},

		{SectionLanguages, heading(`(?:spoken\s+)?languages|language\s+skills`)},
	}
}

var labelHeading = regexp.MustCompile(`^[A-Z][A-Za-z]*(?:[ &/][A-Za-z]+){0,3}[ \t]*:$`)

// inlineLabel matches lines such as "Interests: hiking, chess".
var inlineLabel = regexp.MustCompile(`^[A-Z][a-z]+:`)

// Segmenter splits normalized text into labeled spans.
type Segmenter struct {
	rules []Rule
}

// NewSegmenter builds a segmenter over rules. With no rules the built-in
// table is used.
func NewSegmenter(rules ...Rule) *Segmenter {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Segmenter{rules: rules}
}

// Sections holds the spans found by Segment.
type Sections struct {
	spans map[Section]string
	order []Section
}

// Get returns the span for section and whether an anchor for it was found.
func (s Sections) Get(section Section) (string, bool) {
	span, ok := s.spans[section]
	return span, ok
}

// Found lists the sections that were anchored, in rule order.
func (s Sections) Found() []Section {
	out := make([]Section, len(s.order))
	copy(out, s.order)
	return out
}

// Segment captures, for every section, the text after its first matching
// anchor up to the next heading-like line or the end of the document.
func (s *Segmenter) Segment(text string) Sections {
	result := Sections{spans: make(map[Section]string)}

	for _, rule := range s.rules {
		if _, done := result.spans[rule.Section]; done {
			continue
		}
		loc := rule.Pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		result.spans[rule.Section] = s.capture(text, loc[1])
		result.order = append(result.order, rule.Section)
	}

	return result
}

// capture returns text from start up to the first heading-like line that
// begins after the line containing start.
func (s *Segmenter) capture(text string, start int) string {
	rest := text[start:]
	nl := strings.IndexByte(rest, '\n')
	if nl == -1 {
		return strings.TrimSpace(rest)
	}

	end := len(rest)
	offset := nl + 1
	for offset < len(rest) {
		lineEnd := strings.IndexByte(rest[offset:], '\n')
		if lineEnd == -1 {
			lineEnd = len(rest) - offset
		}
		if s.isHeading(rest[offset : offset+lineEnd]) {
			end = offset
			break
		}
		offset += lineEnd + 1
	}

	return strings.TrimSpace(rest[:end])
}

// isHeading treats a line as a section boundary when it is a known anchor, a
// bare "Label:" line or a capitalized word followed by a colon.
func (s *Segmenter) isHeading(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if labelHeading.MatchString(line) || inlineLabel.MatchString(line) {
		return true
	}
	for _, rule := range s.rules {
		if loc := rule.Pattern.FindStringIndex(line); loc != nil && loc[0] == 0 {
			return true
		}
	}
	return false
}
