package extract

import (
	"regexp"
	"strings"
)

// PersonalInfo holds contact fields. Missing values are empty strings.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Location string `json:"location"`
	Website  string `json:"website"`
}

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`(?:\+?\d{1,3}[-. ]?)?\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}\b`)
	linkedinPattern = regexp.MustCompile(`(?i)(?:linkedin\.com/in/|li\.com/)[A-Za-z0-9-]+`)
	githubPattern   = regexp.MustCompile(`(?i)github\.com/[A-Za-z0-9-]+`)

	namePattern      = regexp.MustCompile(`^[A-Z][a-z]+(?:['-][A-Z]?[a-z]+)?(?: [A-Z][a-z]+(?:['-][A-Z]?[a-z]+)?){1,2}$`)
	nameLabel        = regexp.MustCompile(`(?im)^[ \t]*(?:full[ \t]+)?name[ \t]*:[ \t]*(\S[^\n]*)$`)
	nameSeparators   = regexp.MustCompile(`\s{2,}|[,|•]`)
	locationLabel    = regexp.MustCompile(`(?im)^[ \t]*(?:location|address|based[ \t]+in)[ \t]*:[ \t]*(\S[^\n]*)$`)
	cityStatePattern = regexp.MustCompile(`\b([A-Z][a-z]+(?: [A-Z][a-z]+)?, ?[A-Z]{2})\b`)
	websiteLabel     = regexp.MustCompile(`(?im)\b(?:website|portfolio|homepage)[ \t]*:[ \t]*(\S+)`)
)

// ExtractPersonalInfo scans the whole document for contact fields.
func ExtractPersonalInfo(text string) PersonalInfo {
	return PersonalInfo{
		Name:     extractName(text),
		Email:    emailPattern.FindString(text),
		Phone:    strings.TrimSpace(phonePattern.FindString(text)),
		LinkedIn: linkedinPattern.FindString(text),
		GitHub:   githubPattern.FindString(text),
		Location: extractLocation(text),
		Website:  firstGroup(websiteLabel, text),
	}
}

// extractName accepts the first non-blank line when it reads as two or three
// capitalized words, then falls back to a "Name:" label.
func extractName(text string) string {
	for _, line := range splitLines(text) {
		if line == "" {
			continue
		}
		candidate := strings.TrimSpace(nameSeparators.Split(line, 2)[0])
		if namePattern.MatchString(candidate) {
			return candidate
		}
		break
	}
	return firstGroup(nameLabel, text)
}

func extractLocation(text string) string {
	if loc := firstGroup(locationLabel, text); loc != "" {
		return loc
	}
	if m := cityStatePattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
