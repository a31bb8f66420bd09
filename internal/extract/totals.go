package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	minCareerYear          = 1950
	maxProfileAchievements = 8
	achievementsPerPattern = 5
)

var (
	yearRange = regexp.MustCompile(`(?i)\b(\d{4})\s*[-–]\s*(?:(\d{4})\b|present|current)`)

	achievementPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:achieved|accomplished|delivered|increased|improved|reduced|built|led|managed)\b[^.\n]*?\d+[%kmb]?`),
		regexp.MustCompile(`(?i)\b(?:awards?|recognition|honou?rs?|achievements?)\s*:\s*[^.\n]+`),
	}
)

// TotalExperienceYears sums every "YYYY - YYYY|present|current" range in
// text, in whole years, and rounds to one decimal. Overlapping ranges are
// counted independently. Ranges that run backwards or start before 1950 are
// ignored.
func TotalExperienceYears(text string, now time.Time) float64 {
	currentYear := now.Year()
	months := 0
	for _, m := range yearRange.FindAllStringSubmatch(text, -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil || start < minCareerYear || start > currentYear {
			continue
		}
		end := currentYear
		if m[2] != "" {
			if end, err = strconv.Atoi(m[2]); err != nil {
				continue
			}
		}
		if end < start {
			continue
		}
		months += (end - start) * 12
	}
	return math.Round(float64(months)/12*10) / 10
}

// ExtractAchievements collects achievement statements from the whole
// document: action verbs with a number and labeled awards.
func ExtractAchievements(text string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, re := range achievementPatterns {
		for _, m := range re.FindAllString(text, achievementsPerPattern) {
			out = uniqueAppend(out, seen, strings.TrimSpace(m))
		}
	}
	return capStrings(out, maxProfileAchievements)
}
