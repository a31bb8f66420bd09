package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxSkills         = 25
	maxSkillsPerBlock = 20
)

// skillAnchors are applied independently to the whole document and all of
// their blocks are unioned.
var skillAnchors = []*regexp.Regexp{
	heading(`(?:technical\s+|core\s+|key\s+)?skills(?:\s+(?:&|and)\s+\w+)?`),
	heading(`technologies`),
	heading(`programming\s+languages`),
	heading(`tools\s+(?:and|&)\s+technologies`),
}

var (
	skillSeparators = regexp.MustCompile(`[,;\n•|·]+`)
	skillLabel      = regexp.MustCompile(`^[A-Za-z][A-Za-z &/]{0,30}:\s*`)
	digitsOnly      = regexp.MustCompile(`^[\d\s.]+$`)
	skillStopwords  = map[string]struct{}{
		"and": {}, "or": {}, "the": {}, "in": {}, "at": {}, "for": {}, "with": {}, "etc": {},
	}
)

// ExtractSkills unions items listed under skill-like headings with every
// known technology mentioned anywhere in the text. Order is first
// occurrence; duplicates are dropped ignoring case.
func ExtractSkills(text string, technologies []string) []string {
	var (
		skills []string
		seen   = make(map[string]struct{})
	)

	for _, anchor := range skillAnchors {
		loc := anchor.FindStringIndex(text)
		if loc == nil {
			continue
		}
		for _, item := range parseSkillBlock(skillBlock(text, loc[1])) {
			skills = uniqueAppend(skills, seen, item)
		}
	}

	for _, tech := range technologies {
		if ContainsTerm(text, tech) {
			skills = uniqueAppend(skills, seen, tech)
		}
	}

	return capStrings(skills, maxSkills)
}

// skillBlock returns the text after an anchor up to the first blank line or
// a bare heading of another section. Labeled lines such as
// "Languages: Go, Python" stay inside the block.
func skillBlock(text string, start int) string {
	var lines []string
	for i, line := range splitLines(text[start:]) {
		if line == "" {
			if len(lines) == 0 {
				continue
			}
			break
		}
		if i > 0 && startsSection(line) {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

var sectionStarters = NewSegmenter()

func startsSection(line string) bool {
	for _, rule := range sectionStarters.rules {
		if rule.Section == SectionSkills {
			continue
		}
		if loc := rule.Pattern.FindStringIndex(line); loc != nil && loc[0] == 0 && loc[1] == len(line) {
			return true
		}
	}
	return false
}

func parseSkillBlock(block string) []string {
	var out []string
	for _, raw := range skillSeparators.Split(block, -1) {
		item := stripBullet(raw)
		item = skillLabel.ReplaceAllString(item, "")
		item = strings.Trim(item, "()[]{} :-")
		item = strings.TrimRight(item, ".")
		item = strings.Join(strings.Fields(item), " ")

		if !isSkillItem(item) {
			continue
		}
		out = append(out, item)
		if len(out) == maxSkillsPerBlock {
			break
		}
	}
	return out
}

func isSkillItem(item string) bool {
	n := utf8.RuneCountInString(item)
	if n < 2 || n >= 30 {
		return false
	}
	if digitsOnly.MatchString(item) {
		return false
	}
	if _, stop := skillStopwords[strings.ToLower(item)]; stop {
		return false
	}
	return len(strings.Fields(item)) <= 4
}
