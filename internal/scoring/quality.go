package scoring

import "github.com/spigell/resume-analyzer/internal/extract"

// Content quality levels.
const (
	QualityExcellent        = "excellent"
	QualityGood             = "good"
	QualityNeedsEnhancement = "needs-enhancement"
)

// ContentQuality rates how complete the resume is.
type ContentQuality struct {
	Score    int      `json:"score"`
	Level    string   `json:"level"`
	Feedback []string `json:"feedback"`
}

func assessContentQuality(profile *extract.ResumeProfile) ContentQuality {
	score := points(profile.PersonalInfo.Email != "", 10) +
		points(profile.PersonalInfo.Phone != "", 10) +
		points(len(profile.Skills) >= 5, 20) +
		points(len(profile.Experience) >= 1, 25) +
		points(len(profile.Education) >= 1, 15) +
		points(len(profile.Projects) >= 1, 20)
	score = clamp(score)

	switch {
	case score >= 80:
		return ContentQuality{Score: score, Level: QualityExcellent, Feedback: []string{"Excellent resume structure and content"}}
	case score >= 60:
		return ContentQuality{Score: score, Level: QualityGood, Feedback: []string{"Good resume with room for improvement"}}
	default:
		return ContentQuality{Score: score, Level: QualityNeedsEnhancement, Feedback: []string{"Resume needs significant enhancement"}}
	}
}
