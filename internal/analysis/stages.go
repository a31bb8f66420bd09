package analysis

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/ai"
	"github.com/spigell/resume-analyzer/internal/extract"
	"github.com/spigell/resume-analyzer/internal/reference"
	"github.com/spigell/resume-analyzer/internal/scoring"
)

// Stage names.
const (
	StageExtract = "extract"
	StageScore   = "score"
	StageEnrich  = "enrich"
)

// Stage represents a single step of the analysis pipeline.
type Stage interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(ctx context.Context, logger *zap.Logger, r *run) (map[string]string, error)
}

// Status represents runtime information about a stage.
type Status struct {
	Name    string            `json:"name"`
	Enabled bool              `json:"enabled"`
	Reason  string            `json:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// run carries the intermediate results of one request through the stages.
type run struct {
	req        *Request
	profile    *extract.ResumeProfile
	analysis   *scoring.AnalysisResult
	enrichment *ai.Enrichment
	status     EnrichmentStatus
}

// DisableByName marks a stage with the provided name as disabled while keeping it in the list.
func DisableByName(stages []Stage, name, reason string) {
	for _, stage := range stages {
		if stage.Name() == name {
			stage.Disable(reason)
		}
	}
}

// Describe returns status entries for the provided stages.
func Describe(stages []Stage) []Status {
	statuses := make([]Status, 0, len(stages))
	for _, stage := range stages {
		statuses = append(statuses, describe(stage))
	}
	return statuses
}

func describe(stage Stage) Status {
	status := Status{Name: stage.Name(), Enabled: stage.IsEnabled()}
	if r, ok := stage.(interface{ DisabledReason() string }); ok {
		status.Reason = r.DisabledReason()
	}
	return status
}

// toggle implements the enable/disable part of Stage.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

func (t *toggle) DisabledReason() string { return t.reason }

type extractStage struct {
	toggle
	parser *extract.Parser
}

func (s *extractStage) Name() string { return StageExtract }

func (s *extractStage) Apply(_ context.Context, _ *zap.Logger, r *run) (map[string]string, error) {
	r.profile = s.parser.Parse(r.req.Text)
	return map[string]string{
		"skills":     strconv.Itoa(len(r.profile.Skills)),
		"experience": strconv.Itoa(len(r.profile.Experience)),
		"education":  strconv.Itoa(len(r.profile.Education)),
		"projects":   strconv.Itoa(len(r.profile.Projects)),
		"summary":    string(r.profile.SummarySource),
	}, nil
}

type scoreStage struct {
	toggle
	engine   *scoring.Engine
	registry *reference.Registry
}

func (s *scoreStage) Name() string { return StageScore }

func (s *scoreStage) Apply(_ context.Context, _ *zap.Logger, r *run) (map[string]string, error) {
	role := s.registry.ProfileFor(r.req.TargetRole)
	r.analysis = s.engine.Score(r.profile, role)
	return map[string]string{
		"role":            role.Name,
		"ats_score":       strconv.Itoa(r.analysis.ATSScore),
		"content_quality": strconv.Itoa(r.analysis.ContentQuality.Score),
	}, nil
}

// enrichStage makes a single bounded attempt. Failures are recorded in the
// run and never returned.
type enrichStage struct {
	toggle
	enricher ai.Enricher
	timeout  time.Duration
}

func (s *enrichStage) Name() string { return StageEnrich }

func (s *enrichStage) Apply(ctx context.Context, logger *zap.Logger, r *run) (map[string]string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	enrichment, err := s.enricher.Enrich(ctx, &ai.Request{
		TargetRole:     r.analysis.TargetRole,
		JobDescription: r.req.JobDescription,
		Profile:        r.profile,
		Analysis:       r.analysis,
	})
	if err != nil {
		logger.Warn("enrichment failed, keeping deterministic analysis", zap.Error(err))
		r.status = EnrichmentStatus{Reason: err.Error()}
		return map[string]string{"applied": "false"}, nil
	}

	r.enrichment = enrichment
	r.status = EnrichmentStatus{Applied: true, Provider: enrichment.Provider, Model: enrichment.Model}
	return map[string]string{"applied": "true"}, nil
}
