package scoring

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spigell/resume-analyzer/internal/extract"
	"github.com/spigell/resume-analyzer/internal/reference"
)

const (
	maxImprovements    = 5
	minSummaryLength   = 50
	missingSkillsShown = 3
	minWords           = 300
	maxWords           = 800
)

type improvementInput struct {
	profile         *extract.ResumeProfile
	role            reference.RoleProfile
	missingRequired []string
	foundKeyTerms   []string
}

type improvementRule func(in improvementInput) (string, bool)

// improvementRules are evaluated in order; only the first five that fire are
// reported.
var improvementRules = []improvementRule{
	func(in improvementInput) (string, bool) {
		return "Add work experience section with specific roles and achievements", len(in.profile.Experience) == 0
	},
	func(in improvementInput) (string, bool) {
		return "Include relevant projects to showcase your practical skills", len(in.profile.Projects) == 0
	},
	func(in improvementInput) (string, bool) {
		weak := in.profile.SummarySource == extract.SummaryDefault ||
			utf8.RuneCountInString(in.profile.Summary) < minSummaryLength
		return "Add a compelling professional summary highlighting your key strengths", weak
	},
	func(in improvementInput) (string, bool) {
		if len(in.missingRequired) == 0 {
			return "", false
		}
		top := in.missingRequired[:min(missingSkillsShown, len(in.missingRequired))]
		return fmt.Sprintf("Learn essential skills for %s: %s", in.role.Name, strings.Join(top, ", ")), true
	},
	func(in improvementInput) (string, bool) {
		info := in.profile.PersonalInfo
		return "Add professional profiles (LinkedIn, GitHub) to increase credibility", info.LinkedIn == "" && info.GitHub == ""
	},
	func(in improvementInput) (string, bool) {
		return "Add email address", in.profile.PersonalInfo.Email == ""
	},
	func(in improvementInput) (string, bool) {
		return "Add phone number", in.profile.PersonalInfo.Phone == ""
	},
	func(in improvementInput) (string, bool) {
		if len(in.role.KeyTerms) == 0 || len(in.foundKeyTerms) > 0 {
			return "", false
		}
		return fmt.Sprintf("Incorporate key terms for %s: %s", in.role.Name, strings.Join(in.role.KeyTerms, ", ")), true
	},
	func(in improvementInput) (string, bool) {
		words := in.profile.Metadata.WordCount
		return "Optimize resume length (300-800 words)", words < minWords || words > maxWords
	},
}

func improvements(in improvementInput) []string {
	out := []string{}
	for _, rule := range improvementRules {
		if msg, ok := rule(in); ok {
			out = append(out, msg)
			if len(out) == maxImprovements {
				break
			}
		}
	}
	return out
}
