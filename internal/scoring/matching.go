package scoring

import (
	"strings"

	"github.com/spigell/resume-analyzer/internal/extract"
)

// skillMatcher decides whether the resume shows a role skill. A skill counts
// when an extracted skill or the document text contains it, ignoring case.
// Partial hits such as "NoSQL" for "SQL" are accepted.
type skillMatcher struct {
	keys []string
	text string
}

func newSkillMatcher(skills []string, text string) *skillMatcher {
	keys := make([]string, 0, len(skills))
	for _, skill := range skills {
		keys = append(keys, extract.FoldKey(skill))
	}
	return &skillMatcher{keys: keys, text: extract.FoldKey(text)}
}

func (m *skillMatcher) has(skill string) bool {
	key := extract.FoldKey(skill)
	if key == "" {
		return false
	}
	for _, have := range m.keys {
		if strings.Contains(have, key) {
			return true
		}
	}
	return strings.Contains(m.text, key)
}

// partition splits skills into found and missing, keeping their order.
func (m *skillMatcher) partition(skills []string) (found, missing []string) {
	found, missing = []string{}, []string{}
	for _, skill := range skills {
		if m.has(skill) {
			found = append(found, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	return found, missing
}

func keyTermsIn(text string, terms []string) []string {
	out := []string{}
	for _, term := range terms {
		if extract.ContainsTerm(text, term) {
			out = append(out, term)
		}
	}
	return out
}
