package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-analyzer/internal/ai"
	"github.com/spigell/resume-analyzer/internal/scoring"
)

const resumeText = `Jane Doe
jane@example.com | +1 (555) 123-4567

Summary
Backend engineer with eight years of experience building web development platforms.

Skills: JavaScript, Python, Git, HTML, CSS

Experience
Senior Engineer at Acme Corp (2019-2022)
Improved checkout latency by 40% for 2,000 customers.

Education
B.S. in Computer Science from MIT (2014)`

var analyzedAt = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

type stubEnricher struct {
	mu       sync.Mutex
	requests []*ai.Request
	result   *ai.Enrichment
	err      error
	block    bool

	active    atomic.Int32
	maxActive atomic.Int32
	delay     time.Duration
}

func (s *stubEnricher) Enrich(ctx context.Context, req *ai.Request) (*ai.Enrichment, error) {
	n := s.active.Add(1)
	defer s.active.Add(-1)
	for {
		current := s.maxActive.Load()
		if n <= current || s.maxActive.CompareAndSwap(current, n) {
			break
		}
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestAnalyzer(t *testing.T, opts ...Option) *Analyzer {
	t.Helper()
	seq := 0
	var mu sync.Mutex
	base := []Option{
		WithClock(func() time.Time { return analyzedAt }),
		WithIDGenerator(func() string {
			mu.Lock()
			defer mu.Unlock()
			seq++
			return fmt.Sprintf("report-%d", seq)
		}),
		WithEstimator(scoring.NewHashEstimator(7)),
	}
	a, err := New(nil, append(base, opts...)...)
	require.NoError(t, err)
	return a
}

func TestAnalyzeNilRequest(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(t)
	report, err := a.Analyze(context.Background(), nil)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrNilRequest)
}

func TestAnalyzeWithoutEnricher(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(t)
	report, err := a.Analyze(context.Background(), &Request{
		Source:     "jane.txt",
		Text:       resumeText,
		TargetRole: "Astronaut",
	})
	require.NoError(t, err)

	assert.Equal(t, "report-1", report.ID)
	assert.Equal(t, "jane.txt", report.Source)
	assert.Equal(t, "Astronaut", report.TargetRole)
	assert.Equal(t, analyzedAt, report.AnalyzedAt)
	assert.Equal(t, "Software Developer", report.Analysis.TargetRole)
	assert.Equal(t, "jane@example.com", report.Profile.PersonalInfo.Email)

	assert.Nil(t, report.Enrichment)
	assert.False(t, report.EnrichmentStatus.Applied)
	assert.Equal(t, reasonNotConfigured, report.EnrichmentStatus.Reason)

	require.Len(t, report.Stages, 3)
	assert.Equal(t, StageExtract, report.Stages[0].Name)
	assert.True(t, report.Stages[0].Enabled)
	assert.Equal(t, "5", report.Stages[0].Details["skills"])
	assert.Equal(t, StageScore, report.Stages[1].Name)
	assert.Equal(t, "Software Developer", report.Stages[1].Details["role"])
	assert.Equal(t, StageEnrich, report.Stages[2].Name)
	assert.False(t, report.Stages[2].Enabled)
	assert.Equal(t, reasonNotConfigured, report.Stages[2].Reason)
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(t)
	req := &Request{Source: "a", Text: resumeText, TargetRole: "Web Developer"}

	first, err := a.Analyze(context.Background(), req)
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), req)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first.Analysis)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second.Analysis)
	require.NoError(t, err)
	assert.JSONEq(t, string(firstJSON), string(secondJSON))
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAnalyzeAppliesEnrichment(t *testing.T) {
	t.Parallel()

	stub := &stubEnricher{result: &ai.Enrichment{
		Provider:     "gemini",
		Model:        "gemini-2.5-flash",
		OverallScore: 82,
		Summary:      "Solid backend profile.",
	}}
	a := newTestAnalyzer(t, WithEnricher(stub, time.Second))

	report, err := a.Analyze(context.Background(), &Request{
		Source:         "jane.txt",
		Text:           resumeText,
		TargetRole:     "Software Developer",
		JobDescription: "Build APIs in Go.",
	})
	require.NoError(t, err)

	require.NotNil(t, report.Enrichment)
	assert.Equal(t, "Solid backend profile.", report.Enrichment.Summary)
	assert.Equal(t, EnrichmentStatus{Applied: true, Provider: "gemini", Model: "gemini-2.5-flash"}, report.EnrichmentStatus)
	assert.Equal(t, "true", report.Stages[2].Details["applied"])

	require.Len(t, stub.requests, 1)
	got := stub.requests[0]
	assert.Equal(t, "Software Developer", got.TargetRole)
	assert.Equal(t, "Build APIs in Go.", got.JobDescription)
	assert.Same(t, report.Profile, got.Profile)
	assert.Same(t, report.Analysis, got.Analysis)
}

func TestAnalyzeMasksEnrichmentFailure(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	stub := &stubEnricher{err: errors.New("quota exhausted")}
	a := newTestAnalyzer(t, WithEnricher(stub, time.Second), WithLogger(zap.New(core)))

	report, err := a.Analyze(context.Background(), &Request{Source: "jane.txt", Text: resumeText})
	require.NoError(t, err)

	assert.Nil(t, report.Enrichment)
	assert.False(t, report.EnrichmentStatus.Applied)
	assert.Equal(t, "quota exhausted", report.EnrichmentStatus.Reason)
	assert.NotNil(t, report.Analysis)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "quota exhausted", warnings[0].ContextMap()["error"])
	assert.Equal(t, "report-1", warnings[0].ContextMap()["report_id"])

	completed := logs.FilterMessage("analysis completed").All()
	require.Len(t, completed, 1)
	assert.Equal(t, false, completed[0].ContextMap()["enriched"])
}

func TestAnalyzeBoundsEnrichmentTime(t *testing.T) {
	t.Parallel()

	stub := &stubEnricher{block: true}
	a := newTestAnalyzer(t, WithEnricher(stub, 20*time.Millisecond))

	report, err := a.Analyze(context.Background(), &Request{Text: resumeText})
	require.NoError(t, err)

	assert.False(t, report.EnrichmentStatus.Applied)
	assert.Equal(t, context.DeadlineExceeded.Error(), report.EnrichmentStatus.Reason)
}

func TestAnalyzeDisabledEnrichment(t *testing.T) {
	t.Parallel()

	stub := &stubEnricher{result: &ai.Enrichment{Summary: "unused"}}
	a := newTestAnalyzer(t,
		WithEnricher(stub, time.Second),
		WithStageDisabled(StageEnrich, "disabled by --no-ai"),
	)

	report, err := a.Analyze(context.Background(), &Request{Text: resumeText})
	require.NoError(t, err)

	assert.Empty(t, stub.requests)
	assert.Nil(t, report.Enrichment)
	assert.Equal(t, "disabled by --no-ai", report.EnrichmentStatus.Reason)

	statuses := a.Stages()
	require.Len(t, statuses, 3)
	assert.False(t, statuses[2].Enabled)
	assert.Equal(t, "disabled by --no-ai", statuses[2].Reason)
}

func TestNewRejectsDisablingCoreStages(t *testing.T) {
	t.Parallel()

	_, err := New(nil, WithStageDisabled(StageScore, "nope"))
	assert.ErrorContains(t, err, `stage "score" cannot be disabled`)
}

func TestAnalyzeEmptyText(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(t)
	report, err := a.Analyze(context.Background(), &Request{Source: "empty.txt"})
	require.NoError(t, err)

	assert.Empty(t, report.Profile.Skills)
	assert.Equal(t, 0, report.Analysis.ATSScore)
}

func TestAnalyzeAllKeepsOrderAndLimitsWorkers(t *testing.T) {
	t.Parallel()

	stub := &stubEnricher{result: &ai.Enrichment{Provider: "gemini"}, delay: 10 * time.Millisecond}
	a := newTestAnalyzer(t, WithEnricher(stub, time.Second), WithWorkers(2))

	reqs := make([]*Request, 6)
	for i := range reqs {
		reqs[i] = &Request{Source: fmt.Sprintf("resume-%d.txt", i), Text: resumeText}
	}

	reports, err := a.AnalyzeAll(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, reports, len(reqs))

	for i, report := range reports {
		assert.Equal(t, reqs[i].Source, report.Source)
		assert.True(t, report.EnrichmentStatus.Applied)
	}
	assert.LessOrEqual(t, stub.maxActive.Load(), int32(2))
}

func TestAnalyzeAllRejectsNilRequest(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(t)
	reports, err := a.AnalyzeAll(context.Background(), []*Request{{Text: resumeText}, nil})
	assert.Nil(t, reports)
	assert.ErrorIs(t, err, ErrNilRequest)
	assert.ErrorContains(t, err, "request #2")
}
