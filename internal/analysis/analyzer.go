// Package analysis runs the resume pipeline: extraction, scoring and the
// optional enrichment, and assembles the report.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-analyzer/internal/ai"
	"github.com/spigell/resume-analyzer/internal/extract"
	"github.com/spigell/resume-analyzer/internal/logger"
	"github.com/spigell/resume-analyzer/internal/reference"
	"github.com/spigell/resume-analyzer/internal/scoring"
)

// ErrNilRequest is returned by Analyze when no request is given.
var ErrNilRequest = errors.New("analysis request is required")

const (
	defaultWorkers        = 4
	reasonNotConfigured   = "enrichment is not configured"
	defaultEnrichmentWait = 20 * time.Second
)

// Request is one resume to analyze.
type Request struct {
	Source         string
	Text           string
	TargetRole     string
	JobDescription string
}

// EnrichmentStatus records whether enrichment contributed to the report.
type EnrichmentStatus struct {
	Applied  bool   `json:"applied"`
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Report is the serialized outcome of one analysis.
type Report struct {
	ID               string                  `json:"id"`
	Source           string                  `json:"source"`
	TargetRole       string                  `json:"targetRole"`
	Profile          *extract.ResumeProfile  `json:"profile"`
	Analysis         *scoring.AnalysisResult `json:"analysis"`
	Enrichment       *ai.Enrichment          `json:"enrichment,omitempty"`
	EnrichmentStatus EnrichmentStatus        `json:"enrichmentStatus"`
	Stages           []Status                `json:"stages"`
	AnalyzedAt       time.Time               `json:"analyzedAt"`
}

// Analyzer holds the read-only pipeline shared by all requests.
type Analyzer struct {
	stages  []Stage
	logger  *zap.Logger
	workers int
	now     func() time.Time
	newID   func() string

	estimator scoring.ProficiencyEstimator
	enricher  ai.Enricher
	timeout   time.Duration
	disabled  map[string]string
}

type Option func(*Analyzer)

func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithWorkers bounds the number of requests AnalyzeAll runs at once.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

func WithEstimator(e scoring.ProficiencyEstimator) Option {
	return func(a *Analyzer) { a.estimator = e }
}

// WithEnricher enables the enrichment stage. Each attempt is bounded by
// timeout; zero uses the default of 20 seconds.
func WithEnricher(e ai.Enricher, timeout time.Duration) Option {
	return func(a *Analyzer) {
		a.enricher = e
		if timeout > 0 {
			a.timeout = timeout
		}
	}
}

// WithStageDisabled keeps the named stage in the pipeline but skips it.
func WithStageDisabled(name, reason string) Option {
	return func(a *Analyzer) { a.disabled[name] = reason }
}

func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(a *Analyzer) {
		if newID != nil {
			a.newID = newID
		}
	}
}

// New builds the pipeline over data. A nil data uses the built-in reference
// data.
func New(data *reference.Data, opts ...Option) (*Analyzer, error) {
	if data == nil {
		data = reference.Default()
	}

	a := &Analyzer{
		logger:   zap.NewNop(),
		workers:  defaultWorkers,
		now:      time.Now,
		newID:    uuid.NewString,
		timeout:  defaultEnrichmentWait,
		disabled: make(map[string]string),
	}
	for _, opt := range opts {
		opt(a)
	}

	registry, err := reference.NewRegistry(data)
	if err != nil {
		return nil, fmt.Errorf("building role registry: %w", err)
	}

	enrich := &enrichStage{enricher: a.enricher, timeout: a.timeout}
	if a.enricher == nil {
		enrich.Disable(reasonNotConfigured)
	}

	a.stages = []Stage{
		&extractStage{parser: extract.NewParser(data, extract.WithLogger(a.logger), extract.WithClock(a.now))},
		&scoreStage{engine: scoring.NewEngine(a.estimator, a.logger), registry: registry},
		enrich,
	}
	for name, reason := range a.disabled {
		if name != StageEnrich {
			return nil, fmt.Errorf("stage %q cannot be disabled", name)
		}
		DisableByName(a.stages, name, reason)
	}

	return a, nil
}

// Stages describes the configured pipeline.
func (a *Analyzer) Stages() []Status {
	return Describe(a.stages)
}

// Analyze runs the pipeline for one request. Missing information never fails
// the analysis and enrichment errors are reported in the EnrichmentStatus.
func (a *Analyzer) Analyze(ctx context.Context, req *Request) (*Report, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	id := a.newID()
	log := logger.WithAnalysisFields(a.logger, id, req.Source, req.TargetRole)

	r := &run{req: req}
	statuses := make([]Status, 0, len(a.stages))
	for _, stage := range a.stages {
		status := describe(stage)
		if !stage.IsEnabled() {
			log.Debug("stage disabled", zap.String("name", stage.Name()), zap.String("reason", status.Reason))
			if stage.Name() == StageEnrich {
				r.status = EnrichmentStatus{Reason: status.Reason}
			}
			statuses = append(statuses, status)
			continue
		}

		details, err := stage.Apply(ctx, log, r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", stage.Name(), err)
		}
		status.Details = details

		log.Debug("stage", zap.String("name", stage.Name()), zap.Any("details", details))
		statuses = append(statuses, status)
	}

	log.Info("analysis completed",
		zap.Int("ats_score", r.analysis.ATSScore),
		zap.Int("content_quality", r.analysis.ContentQuality.Score),
		zap.Bool("enriched", r.status.Applied),
	)

	return &Report{
		ID:               id,
		Source:           req.Source,
		TargetRole:       req.TargetRole,
		Profile:          r.profile,
		Analysis:         r.analysis,
		Enrichment:       r.enrichment,
		EnrichmentStatus: r.status,
		Stages:           statuses,
		AnalyzedAt:       a.now().UTC(),
	}, nil
}

// AnalyzeAll analyzes independent requests concurrently, at most the
// configured number of workers at a time. Reports keep the order of reqs.
func (a *Analyzer) AnalyzeAll(ctx context.Context, reqs []*Request) ([]*Report, error) {
	reports := make([]*Report, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, req := range reqs {
		g.Go(func() error {
			report, err := a.Analyze(gctx, req)
			if err != nil {
				return fmt.Errorf("request #%d: %w", i+1, err)
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
