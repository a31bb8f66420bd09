package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxCertifications = 5
	minCertification  = 5
)

// CertificationEntry is one certificate or license.
type CertificationEntry struct {
	Name   string `json:"name"`
	Year   string `json:"year"`
	Issuer string `json:"issuer"`
}

var certTrim = regexp.MustCompile(`[\s,;|()–-]+$`)

// ExtractCertifications reads one certification per line of span. The issuer
// is the first known issuer mentioned on the line.
func ExtractCertifications(span string, issuers []string) []CertificationEntry {
	out := []CertificationEntry{}
	for _, line := range splitLines(span) {
		line = stripBullet(line)
		if utf8.RuneCountInString(line) <= minCertification {
			continue
		}

		year := yearPattern.FindString(line)
		name := line
		if year != "" {
			name = strings.Replace(name, year, "", 1)
			name = strings.Join(strings.Fields(name), " ")
			name = strings.ReplaceAll(name, "()", "")
			name = certTrim.ReplaceAllString(strings.TrimSpace(name), "")
		}

		out = append(out, CertificationEntry{
			Name:   name,
			Year:   year,
			Issuer: matchIssuer(line, issuers),
		})
		if len(out) == maxCertifications {
			break
		}
	}
	return out
}

func matchIssuer(line string, issuers []string) string {
	for _, issuer := range issuers {
		if ContainsTerm(line, issuer) {
			return issuer
		}
	}
	return ""
}
