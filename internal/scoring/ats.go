package scoring

import "github.com/spigell/resume-analyzer/internal/extract"

const maxScore = 100

// ATS breakdown keys.
const (
	ATSEmail          = "email"
	ATSPhone          = "phone"
	ATSSkills         = "skills"
	ATSExperience     = "experience"
	ATSEducation      = "education"
	ATSRequiredSkills = "requiredSkills"
)

const (
	atsEmailPoints      = 15
	atsPhonePoints      = 10
	atsSkillsPoints     = 20
	atsExperiencePoints = 25
	atsEducationPoints  = 15
	atsCoverageCap      = 15
	atsCoverageStep     = 3
	atsCoverageTier     = 3
)

// atsScore returns the clamped total and the points awarded per component.
// Coverage is tiered: more than three required skills earn the full 15,
// otherwise each one is worth 3.
func atsScore(profile *extract.ResumeProfile, foundRequired int) (int, map[string]int) {
	breakdown := map[string]int{
		ATSEmail:          points(profile.PersonalInfo.Email != "", atsEmailPoints),
		ATSPhone:          points(profile.PersonalInfo.Phone != "", atsPhonePoints),
		ATSSkills:         points(len(profile.Skills) > 0, atsSkillsPoints),
		ATSExperience:     points(len(profile.Experience) > 0, atsExperiencePoints),
		ATSEducation:      points(len(profile.Education) > 0, atsEducationPoints),
		ATSRequiredSkills: coveragePoints(foundRequired),
	}

	total := 0
	for _, v := range breakdown {
		total += v
	}
	return clamp(total), breakdown
}

func coveragePoints(found int) int {
	if found > atsCoverageTier {
		return atsCoverageCap
	}
	return min(found*atsCoverageStep, atsCoverageCap)
}

func points(ok bool, n int) int {
	if ok {
		return n
	}
	return 0
}

func clamp(score int) int {
	return max(0, min(score, maxScore))
}
