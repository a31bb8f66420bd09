package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxEducation       = 5
	minInstitutionLine = 5
)

// EducationEntry is one degree or diploma.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Major       string `json:"major"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	GPA         string `json:"gpa"`
}

const degreeKeywords = `(?:bachelor(?:'?s)?|master(?:'?s)?|doctorate|associate(?:'?s)?|diploma|mba|b\.?sc|m\.?sc|b\.?\s?tech|m\.?\s?tech)\b|ph\.?\s?d\.?|[bm]\.\s?[sa]\.?`

var (
	// degree [in/of major] [from/at institution], terminated by a comma,
	// parenthesis, pipe, year or end of line.
	degreePattern = regexp.MustCompile(`(?i)(?:^|[^a-z])(` + degreeKeywords +
		`(?:\s+of\s+(?:science|arts|engineering|technology|business\s+administration|fine\s+arts|laws))?(?:\s+degree)?)` +
		`(?:\s+(?:in|of)\s+([^,(|]+?))?` +
		`(?:\s+(?:from|at)\s+([^,(|]+?))?` +
		`(?:\s*[,(|]|\s+[–-]\s|\s+(?:19|20)\d{2}|\s*$)`)
	yearPattern  = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	gpaPattern   = regexp.MustCompile(`(?i)\bgpa\b[:\s]*(\d+(?:\.\d+)?)`)
	anyDigitYear = regexp.MustCompile(`\d{4}`)
	gpaMention   = regexp.MustCompile(`(?i)\bgpa\b`)
)

// EducationParser groups the lines of an education span into entries. A
// blank line or a second degree line closes the open entry.
type EducationParser struct {
	state   parserState
	current *EducationEntry
	entries []EducationEntry
}

// NewEducationParser returns a parser in the Idle state.
func NewEducationParser() *EducationParser {
	return &EducationParser{state: stateIdle}
}

// ParseEducation runs a fresh parser over span.
func ParseEducation(span string) []EducationEntry {
	p := NewEducationParser()
	for _, line := range splitLines(span) {
		p.Feed(line)
	}
	return p.Close()
}

// Feed consumes one line.
func (p *EducationParser) Feed(line string) {
	line = stripBullet(line)
	if line == "" {
		p.closeEntry()
		return
	}

	degree := degreePattern.FindStringSubmatchIndex(line)
	if p.state == stateOpenEntry && degree != nil && p.current.Degree != "" {
		p.closeEntry()
	}
	if p.state == stateIdle {
		p.current = &EducationEntry{}
		p.state = stateOpenEntry
	}

	entry := p.current
	if entry.Year == "" {
		entry.Year = yearPattern.FindString(line)
	}
	if entry.GPA == "" {
		if m := gpaPattern.FindStringSubmatch(line); m != nil {
			entry.GPA = m[1]
		}
	}

	if degree != nil && entry.Degree == "" {
		entry.Degree = group(line, degree, 1)
		entry.Major = group(line, degree, 2)
		if entry.Institution == "" {
			entry.Institution = group(line, degree, 3)
		}
		// "Stanford University, B.S. in Computer Science"
		if entry.Institution == "" {
			before := strings.Trim(line[:degree[2]], " ,|-–")
			if utf8.RuneCountInString(before) > minInstitutionLine && !anyDigitYear.MatchString(before) {
				entry.Institution = before
			}
		}
		return
	}

	if entry.Institution == "" && utf8.RuneCountInString(line) > minInstitutionLine &&
		!anyDigitYear.MatchString(line) && !gpaMention.MatchString(line) {
		entry.Institution = line
	}
}

// Close ends the input and returns the capped list of entries.
func (p *EducationParser) Close() []EducationEntry {
	p.closeEntry()
	entries := p.entries
	p.entries = nil

	if len(entries) > maxEducation {
		entries = entries[:maxEducation]
	}
	if entries == nil {
		entries = []EducationEntry{}
	}
	return entries
}

func (p *EducationParser) closeEntry() {
	if p.state != stateOpenEntry || p.current == nil {
		return
	}
	if p.current.Degree != "" || p.current.Institution != "" {
		p.entries = append(p.entries, *p.current)
	}
	p.current = nil
	p.state = stateIdle
}

func group(s string, loc []int, n int) string {
	if loc[2*n] < 0 {
		return ""
	}
	return strings.TrimSpace(s[loc[2*n]:loc[2*n+1]])
}
