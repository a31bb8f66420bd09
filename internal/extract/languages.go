package extract

import (
	"regexp"
	"sort"
	"strings"
)

const (
	maxLanguages       = 5
	unknownProficiency = "unspecified"
)

// LanguageEntry is a spoken language with its self-reported level.
type LanguageEntry struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

var clauseBreak = regexp.MustCompile(`[,;\n|•]`)

// ExtractLanguages finds known language names in span, in order of first
// mention, and attaches a proficiency keyword from the same clause.
func ExtractLanguages(span string, languages, levels []string) []LanguageEntry {
	type hit struct {
		entry LanguageEntry
		pos   int
	}

	var hits []hit
	parts := clauses(span)
	for _, lang := range languages {
		for _, c := range parts {
			loc := termPattern(lang).FindStringIndex(c.text)
			if loc == nil {
				continue
			}
			hits = append(hits, hit{
				entry: LanguageEntry{Language: lang, Proficiency: proficiencyIn(c.text, levels)},
				pos:   c.offset + loc[0],
			})
			break
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	out := []LanguageEntry{}
	for _, h := range hits {
		out = append(out, h.entry)
		if len(out) == maxLanguages {
			break
		}
	}
	return out
}

type clause struct {
	text   string
	offset int
}

func clauses(s string) []clause {
	var (
		out  []clause
		prev int
	)
	for _, loc := range clauseBreak.FindAllStringIndex(s, -1) {
		out = append(out, clause{text: s[prev:loc[0]], offset: prev})
		prev = loc[1]
	}
	return append(out, clause{text: s[prev:], offset: prev})
}

func proficiencyIn(clause string, levels []string) string {
	for _, level := range levels {
		if ContainsTerm(clause, level) {
			return strings.ToLower(level)
		}
	}
	return unknownProficiency
}
