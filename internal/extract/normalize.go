package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	inlineSpace = regexp.MustCompile(`[ \t\f\v]+`)
	manyBlanks  = regexp.MustCompile(`\n{3,}`)
)

// Normalize prepares decoded document text for extraction: NFKC folding
// (which also turns non-breaking spaces into plain ones), unix line endings,
// collapsed inline whitespace and at most one blank line between paragraphs.
func Normalize(text string) string {
	text = norm.NFKC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\u200b", "")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(inlineSpace.ReplaceAllString(line, " "))
	}

	text = strings.Join(lines, "\n")
	text = manyBlanks.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
