package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spigell/resume-analyzer/internal/utils"
)

// SummarySource tells where the profile summary came from.
type SummarySource string

const (
	SummaryLabeled     SummarySource = "labeled"
	SummaryLeadingText SummarySource = "leading-text"
	SummaryDefault     SummarySource = "default"
)

const (
	summarySentences  = 3
	minSummaryLength  = 50
	maxSummaryLength  = 500
	minProseWords     = 6
	contactLineMarker = "@"
)

var urlLike = regexp.MustCompile(`(?i)https?://|www\.|\.com/`)

// ExtractSummary returns the first sentences of the labeled summary span,
// then of the first prose paragraph of the document, then fallback. The
// result is never empty as long as fallback is not.
func ExtractSummary(span string, hasSpan bool, text, fallback string) (string, SummarySource) {
	if hasSpan {
		if s := leadingSentences(span); utf8.RuneCountInString(s) >= minSummaryLength {
			return s, SummaryLabeled
		}
	}
	if s := leadingSentences(firstProseParagraph(text)); utf8.RuneCountInString(s) >= minSummaryLength {
		return s, SummaryLeadingText
	}
	return fallback, SummaryDefault
}

func leadingSentences(text string) string {
	parts := sentences(text)
	if len(parts) > summarySentences {
		parts = parts[:summarySentences]
	}
	return utils.TruncateRunes(strings.Join(parts, " "), maxSummaryLength)
}

// firstProseParagraph skips name, contact and heading lines at the top of a
// document and returns the first paragraph that reads like running text.
func firstProseParagraph(text string) string {
	for _, block := range splitBlocks(text) {
		var prose []string
		for _, line := range block {
			if isProse(line) {
				prose = append(prose, line)
				continue
			}
			if len(prose) > 0 {
				break
			}
		}
		if len(prose) > 0 {
			return strings.Join(prose, " ")
		}
	}
	return ""
}

func isProse(line string) bool {
	if isBullet(line) || strings.Contains(line, contactLineMarker) || urlLike.MatchString(line) {
		return false
	}
	if phonePattern.MatchString(line) {
		return false
	}
	return len(strings.Fields(line)) >= minProseWords
}
