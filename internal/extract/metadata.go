package extract

import (
	"math"
	"regexp"
	"strings"
)

const wordsPerPage = 275

// Metadata describes the document itself rather than the candidate.
type Metadata struct {
	WordCount      int    `json:"wordCount"`
	PageCount      int    `json:"pageCount"`
	TechnicalTerms int    `json:"technicalTerms"`
	Complexity     string `json:"complexity"`
	ParseQuality   string `json:"parseQuality"`
}

var (
	labelLine   = regexp.MustCompile(`\n[A-Z][a-z]+:`)
	bulletMarks = regexp.MustCompile(`[•*-]\s`)
	anyYear     = regexp.MustCompile(`\d{4}`)
	skillsWord  = regexp.MustCompile(`(?i)skills?|technologies?`)
)

// DescribeDocument computes size, complexity and parse-quality indicators.
func DescribeDocument(text string, technicalTerms []string) Metadata {
	words := len(strings.Fields(text))
	terms := countTerms(text, technicalTerms)

	return Metadata{
		WordCount:      words,
		PageCount:      int(math.Ceil(float64(words) / wordsPerPage)),
		TechnicalTerms: terms,
		Complexity:     complexity(text, terms),
		ParseQuality:   parseQuality(text),
	}
}

func countTerms(text string, terms []string) int {
	n := 0
	for _, term := range terms {
		if ContainsTerm(text, term) {
			n++
		}
	}
	return n
}

func complexity(text string, terms int) string {
	score := 0.0
	switch {
	case len(text) > 5000:
		score += 2
	case len(text) > 2000:
		score++
	}
	score += float64(len(labelLine.FindAllStringIndex(text, -1)))
	score += math.Min(float64(len(bulletMarks.FindAllStringIndex(text, -1)))/5, 3)
	score += math.Min(float64(terms)/10, 3)

	switch {
	case score >= 8:
		return "high"
	case score >= 5:
		return "medium"
	default:
		return "low"
	}
}

func parseQuality(text string) string {
	indicators := []bool{
		labelLine.MatchString(text),
		strings.Contains(text, "@"),
		anyYear.MatchString(text),
		skillsWord.MatchString(text),
		len(text) > 500,
	}

	n := 0
	for _, ok := range indicators {
		if ok {
			n++
		}
	}

	switch {
	case n >= 4:
		return "high"
	case n >= 2:
		return "medium"
	default:
		return "low"
	}
}
