package extract

import (
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

var (
	bulletPrefix = regexp.MustCompile(`^\s*(?:[•▪◦‣●○■□➢➤►·*]|-|–)\s*`)
	termCache    sync.Map
)

// ContainsTerm reports whether term occurs in text as a standalone token.
// Terms of up to two characters (Go, R, C) are matched case-sensitively,
// longer ones ignore case.
func ContainsTerm(text, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" || text == "" {
		return false
	}
	return termPattern(term).MatchString(text)
}

func termPattern(term string) *regexp.Regexp {
	if cached, ok := termCache.Load(term); ok {
		return cached.(*regexp.Regexp)
	}

	flags := "(?i)"
	if utf8.RuneCountInString(term) <= 2 {
		flags = ""
	}
	expr := flags + `(?:^|[^\p{L}\p{N}])` + regexp.QuoteMeta(term) + `(?:$|[^\p{L}\p{N}+#])`
	re := regexp.MustCompile(expr)
	termCache.Store(term, re)
	return re
}

// FoldKey is the comparison key used for case-insensitive deduplication.
func FoldKey(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}

func isBullet(line string) bool {
	return bulletPrefix.MatchString(line)
}

func stripBullet(line string) string {
	return strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
}

// splitLines returns trimmed lines, keeping blank ones.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines
}

// splitBlocks splits text on blank lines and drops empty blocks.
func splitBlocks(text string) [][]string {
	var (
		blocks  [][]string
		current []string
	)
	for _, line := range splitLines(text) {
		if line == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// sentences splits text at terminal punctuation followed by whitespace, so
// tokens like Node.js or 3.5 stay intact.
func sentences(text string) []string {
	text = strings.Join(strings.Fields(text), " ")
	var (
		out   []string
		start int
	)
	runes := []rune(text)
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			out = append(out, s)
		}
		start = i + 1
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		out = append(out, tail)
	}
	return out
}

// uniqueAppend appends s unless an equal fold key is already present.
func uniqueAppend(list []string, seen map[string]struct{}, s string) []string {
	key := FoldKey(s)
	if key == "" {
		return list
	}
	if _, ok := seen[key]; ok {
		return list
	}
	seen[key] = struct{}{}
	return append(list, s)
}

func capStrings(list []string, limit int) []string {
	if list == nil {
		return []string{}
	}
	if len(list) > limit {
		return list[:limit]
	}
	return list
}
