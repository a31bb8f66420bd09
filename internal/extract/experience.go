package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxExperience       = 8
	maxResponsibilities = 5
	maxAchievements     = 5
	minDescriptionLine  = 10
	maxHeaderLength     = 120
	maxRoleWords        = 7
)

// ExperienceEntry is one position from the work history.
type ExperienceEntry struct {
	Role             string   `json:"role"`
	Company          string   `json:"company"`
	Duration         string   `json:"duration"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	Achievements     []string `json:"achievements"`
}

const monthNames = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?`

var (
	// "Senior Engineer at Acme Corp (2019-2022)" or "... @ Acme 2019 - 2022"
	roleAtCompany = regexp.MustCompile(`(?i)^(.+?)\s+(?:at|@)\s+(.+?)(?:\s*\((.+?)\)|\s+(\d{4}(?:\s*[-–]\s*(?:\d{4}|present|current))?))?\s*$`)
	// "Senior Engineer - Acme Corp (2019-2022)" or "Engineer | Acme", only
	// at the start of a block.
	roleDashCompany = regexp.MustCompile(`(?i)^(.+?)\s+[-–|]\s+(.+?)(?:\s*\((.+?)\))?\s*$`)

	durationPattern = regexp.MustCompile(`(?i)\b((?:` + monthNames + `\s+)?\d{4}\s*[-–]\s*(?:(?:` + monthNames + `\s+)?\d{4}|present|current|now))`)
	durationOnly    = regexp.MustCompile(`(?i)^\(?(?:` + monthNames + `\s+)?\d{4}\s*[-–]\s*(?:(?:` + monthNames + `\s+)?\d{4}|present|current|now)\)?$`)
	yearLike        = regexp.MustCompile(`^\(?\d{4}`)

	quantifiable = []*regexp.Regexp{
		regexp.MustCompile(`\d+(?:\.\d+)?%`),
		regexp.MustCompile(`(?i)\$\d+(?:,\d{3})*(?:\.\d{2})?[kmb]?`),
		regexp.MustCompile(`(?i)\d+(?:,\d{3})*\+?\s+(?:users|customers|clients|people|team|members|engineers|developers)`),
		regexp.MustCompile(`(?i)\b(?:increased|improved|reduced|decreased|grew|built|managed|led|saved|cut)\b[^.]*?\d+(?:\.\d+)?[%kmb]?`),
	}
	inlineBullets = regexp.MustCompile(`(?:^|\s)[•▪*]\s+|\s[-–]\s+`)
)

type parserState int

const (
	stateIdle parserState = iota
	stateOpenEntry
)

func (s parserState) String() string {
	if s == stateOpenEntry {
		return "open-entry"
	}
	return "idle"
}

// ExperienceParser turns the lines of an experience span into entries.
//
// In Idle no entry is open and non-header lines are ignored. A header line
// moves the parser to OpenEntry, closing the previous entry first. In
// OpenEntry other lines extend the open entry. Close ends the input and
// emits whatever is still open.
type ExperienceParser struct {
	state      parserState
	blockStart bool

	current *ExperienceEntry
	desc    []string
	bullets []string
	prose   []string

	entries []ExperienceEntry
}

// NewExperienceParser returns a parser in the Idle state.
func NewExperienceParser() *ExperienceParser {
	return &ExperienceParser{state: stateIdle, blockStart: true}
}

// ParseExperience runs a fresh parser over span.
func ParseExperience(span string) []ExperienceEntry {
	p := NewExperienceParser()
	for _, line := range splitLines(span) {
		p.Feed(line)
	}
	return p.Close()
}

// Feed consumes one line.
func (p *ExperienceParser) Feed(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		p.blockStart = true
		return
	}

	atBlockStart := p.blockStart
	p.blockStart = false

	if entry, ok := parseExperienceHeader(line, atBlockStart); ok {
		p.closeEntry()
		p.current = &entry
		p.state = stateOpenEntry
		return
	}

	if p.state == stateIdle {
		return
	}

	if p.current.Duration == "" {
		if m := durationPattern.FindStringSubmatch(line); m != nil {
			p.current.Duration = m[1]
			if durationOnly.MatchString(line) {
				return
			}
		}
	}

	if isBullet(line) {
		if item := stripBullet(line); item != "" {
			p.bullets = append(p.bullets, item)
			p.desc = append(p.desc, item)
		}
		return
	}

	if utf8.RuneCountInString(line) > minDescriptionLine {
		p.desc = append(p.desc, line)
		p.prose = append(p.prose, line)
	}
}

// Close ends the input, emits the open entry if any and returns the capped
// list of entries. The parser returns to Idle.
func (p *ExperienceParser) Close() []ExperienceEntry {
	p.closeEntry()
	entries := p.entries
	p.entries = nil
	p.blockStart = true

	if len(entries) > maxExperience {
		entries = entries[:maxExperience]
	}
	if entries == nil {
		entries = []ExperienceEntry{}
	}
	return entries
}

// State reports the current parser state.
func (p *ExperienceParser) State() string {
	return p.state.String()
}

func (p *ExperienceParser) closeEntry() {
	if p.state != stateOpenEntry || p.current == nil {
		return
	}

	entry := *p.current
	entry.Description = strings.Join(p.desc, " ")

	responsibilities := p.bullets
	if len(responsibilities) == 0 {
		responsibilities = splitInlineBullets(entry.Description)
	}
	entry.Responsibilities = capStrings(responsibilities, maxResponsibilities)

	candidates := append([]string{}, p.bullets...)
	candidates = append(candidates, sentences(strings.Join(p.prose, " "))...)
	entry.Achievements = quantifiableResults(candidates, maxAchievements)

	p.entries = append(p.entries, entry)
	p.current = nil
	p.desc = nil
	p.bullets = nil
	p.prose = nil
	p.state = stateIdle
}

func parseExperienceHeader(line string, atBlockStart bool) (ExperienceEntry, bool) {
	if isBullet(line) || utf8.RuneCountInString(line) > maxHeaderLength || endsSentence(line) {
		return ExperienceEntry{}, false
	}

	m := roleAtCompany.FindStringSubmatch(line)
	if m == nil && atBlockStart {
		m = roleDashCompany.FindStringSubmatch(line)
		if m != nil {
			m = append(m, "")
		}
	}
	if m == nil {
		return ExperienceEntry{}, false
	}

	role := strings.TrimSpace(m[1])
	company := strings.TrimSpace(m[2])
	if role == "" || company == "" || len(strings.Fields(role)) > maxRoleWords {
		return ExperienceEntry{}, false
	}
	if r, _ := utf8.DecodeRuneInString(role); unicode.IsLower(r) {
		return ExperienceEntry{}, false
	}
	if yearLike.MatchString(role) || yearLike.MatchString(company) {
		return ExperienceEntry{}, false
	}

	duration := strings.TrimSpace(m[3])
	if duration == "" {
		duration = strings.TrimSpace(m[4])
	}

	return ExperienceEntry{
		Role:             role,
		Company:          company,
		Duration:         duration,
		Responsibilities: []string{},
		Achievements:     []string{},
	}, true
}

// endsSentence reports a trailing period after a regular word, which marks
// prose rather than a header. Abbreviations like "Inc." or "Co." pass.
func endsSentence(line string) bool {
	if !strings.HasSuffix(line, ".") {
		return false
	}
	fields := strings.Fields(line)
	last := strings.TrimSuffix(fields[len(fields)-1], ".")
	return utf8.RuneCountInString(last) > 4
}

func splitInlineBullets(description string) []string {
	if !inlineBullets.MatchString(description) {
		return []string{}
	}
	var out []string
	for _, part := range inlineBullets.Split(description, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// quantifiableResults keeps the statements that carry a measurable outcome:
// a percentage, an amount of money, a head count or an action verb followed
// by a number.
func quantifiableResults(statements []string, limit int) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, sentence := range statements {
		for _, re := range quantifiable {
			if re.MatchString(sentence) {
				out = uniqueAppend(out, seen, strings.TrimSuffix(sentence, "."))
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out
}
