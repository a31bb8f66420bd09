package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spigell/resume-analyzer/internal/utils"
)

const (
	maxProjects            = 6
	maxProjectDescription  = 200
	maxProjectTechnologies = 8
)

// ProjectEntry is one project from the projects section.
type ProjectEntry struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Technologies  []string `json:"technologies"`
	URL           string   `json:"url"`
	RepositoryURL string   `json:"repositoryUrl"`
}

var (
	techLabel      = regexp.MustCompile(`(?i)\b(?:technologies|technology|tech\s+stack|stack|built\s+with|using)\b\s*:?\s+((?:[^.\n]|\.\S)+)`)
	techSeparators = regexp.MustCompile(`\s*(?:[,|;/]|\band\b|&)\s*`)
	urlPattern     = regexp.MustCompile(`https?://[^\s<>"]+`)
	repoPattern    = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?(?:github\.com|gitlab\.com|bitbucket\.org)/[^\s<>"]+`)
	titleTrailer   = regexp.MustCompile(`\s*[:|]\s*$`)
)

// ExtractProjects treats every blank-line separated block of span as one
// project: the first line is the title, the rest is the description.
func ExtractProjects(span string) []ProjectEntry {
	projects := []ProjectEntry{}
	for _, block := range splitBlocks(span) {
		title := titleTrailer.ReplaceAllString(stripBullet(block[0]), "")
		if title == "" {
			continue
		}
		description := strings.Join(block[1:], " ")
		all := strings.Join(block, " ")

		repo := trimURL(repoPattern.FindString(all))
		projects = append(projects, ProjectEntry{
			Title:         title,
			Description:   utils.TruncateRunes(description, maxProjectDescription),
			Technologies:  projectTechnologies(description),
			URL:           firstSiteURL(all),
			RepositoryURL: repo,
		})
		if len(projects) == maxProjects {
			break
		}
	}
	return projects
}

func projectTechnologies(description string) []string {
	m := techLabel.FindStringSubmatch(description)
	if m == nil {
		return []string{}
	}

	list := m[1]
	parts := techSeparators.Split(list, -1)
	if len(parts) == 1 {
		parts = strings.Fields(list)
	}

	out := []string{}
	seen := make(map[string]struct{})
	for _, part := range parts {
		part = strings.Trim(strings.TrimSpace(part), "()[]")
		if utf8.RuneCountInString(part) < 2 {
			continue
		}
		out = uniqueAppend(out, seen, part)
		if len(out) == maxProjectTechnologies {
			break
		}
	}
	return out
}

// firstSiteURL returns the first link that does not point at a code host.
func firstSiteURL(text string) string {
	for _, u := range urlPattern.FindAllString(text, -1) {
		if repoPattern.MatchString(u) {
			continue
		}
		return trimURL(u)
	}
	return ""
}

func trimURL(u string) string {
	return strings.TrimRight(u, ".,;:)]")
}
