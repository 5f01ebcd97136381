package journey

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

// fakeCapabilities implements all three external capabilities with canned
// responses so the full run is testable without a network.
type fakeCapabilities struct {
	summarizeCalls int
	failSummarize  map[int]bool // 1-indexed call numbers that fail

	journeyResponse    string
	classifierResponse string
}

func (f *fakeCapabilities) SummarizeBatch(ctx context.Context, batchText string) (string, error) {
	f.summarizeCalls++
	if f.failSummarize[f.summarizeCalls] {
		return "", errors.New("boom")
	}
	return "**Sentiment**: mostly positive for batch " + batchText[:10], nil
}

func (f *fakeCapabilities) GenerateJourney(ctx context.Context, aggregatedJSON string) (string, error) {
	return f.journeyResponse, nil
}

func (f *fakeCapabilities) MapReviews(ctx context.Context, journeyJSON, aggregatedJSON string) (string, error) {
	return f.classifierResponse, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestPipeline(t *testing.T, fakes *fakeCapabilities) *Pipeline {
	t.Helper()

	layout := DefaultLayout(t.TempDir())
	if err := os.MkdirAll(layout.InputDir, 0o755); err != nil {
		t.Fatalf("mkdir input: %v", err)
	}
	b, err := json.Marshal(makeReviews(25))
	if err != nil {
		t.Fatalf("marshal reviews: %v", err)
	}
	if err := os.WriteFile(filepath.Join(layout.InputDir, "acme_reviews.json"), b, 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	return &Pipeline{
		Layout:     layout,
		ChunkSize:  10,
		MaxChunks:  9,
		Pretty:     true,
		Log:        quietLogger(),
		Summarizer: fakes,
		Generator:  fakes,
		Classifier: fakes,
		Now:        func() time.Time { return time.Date(2025, 1, 17, 12, 0, 0, 0, time.UTC) },
	}
}

func defaultFakes(t *testing.T) *fakeCapabilities {
	t.Helper()
	return &fakeCapabilities{
		failSummarize:   map[int]bool{},
		journeyResponse: "```json\n" + taxonomyResponseJSON(t, testTaxonomy().JourneySteps) + "\n```",
		classifierResponse: assignmentsJSON(
			`{"step_name": "Booking", "rating": 5, "date": "January 17, 2025"}`,
			`{"step_name": "Booking", "rating": 3, "date": "17/01/2025"}`,
			`{"step_name": "Arrival", "rating": 1, "date": "2025-01-19"}`,
		),
	}
}

func readDirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestPipelineRun_EndToEnd(t *testing.T) {
	t.Parallel()

	fakes := defaultFakes(t)
	fakes.failSummarize[2] = true // second chunk is skipped, not fatal
	p := newTestPipeline(t, fakes)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := readDirNames(t, p.Layout.ChunksDir); len(got) != 3 {
		t.Fatalf("chunk files=%v, want 3", got)
	}
	analyzed := readDirNames(t, p.Layout.AnalyzedDir)
	if len(analyzed) != 2 {
		t.Fatalf("analyzed files=%v, want 2 (one chunk skipped)", analyzed)
	}
	for _, name := range analyzed {
		if !strings.HasPrefix(name, "analyzed_acme_reviews_chunk_") {
			t.Fatalf("analyzed file %q not keyed to its chunk", name)
		}
	}
	if strings.Contains(strings.Join(analyzed, " "), "chunk_002") {
		t.Fatal("failed chunk must not produce a summary file")
	}

	var agg AggregatedSummary
	aggNames := readDirNames(t, p.Layout.SummaryDir)
	if len(aggNames) != 1 {
		t.Fatalf("aggregated files=%v, want 1", aggNames)
	}
	readJSONForTest(t, filepath.Join(p.Layout.SummaryDir, aggNames[0]), &agg)
	if agg.Metadata.TotalFiles != 2 || len(agg.Analyses) != 2 {
		t.Fatalf("aggregated %d/%d summaries, want 2", agg.Metadata.TotalFiles, len(agg.Analyses))
	}
	if strings.Contains(agg.Analyses[0].Analysis, "**") {
		t.Fatal("summaries must be markdown-stripped before persisting")
	}

	var taxonomy JourneyTaxonomy
	journeyNames := readDirNames(t, p.Layout.JourneyDir)
	if len(journeyNames) != 1 {
		t.Fatalf("journey files=%v, want 1", journeyNames)
	}
	readJSONForTest(t, filepath.Join(p.Layout.JourneyDir, journeyNames[0]), &taxonomy)
	if len(taxonomy.JourneySteps) != TaxonomySize {
		t.Fatalf("taxonomy has %d steps, want %d", len(taxonomy.JourneySteps), TaxonomySize)
	}
	if taxonomy.SourceFile == "" || taxonomy.Timestamp == "" {
		t.Fatal("taxonomy provenance missing")
	}

	var mapped MappedReviews
	mappedNames := readDirNames(t, p.Layout.MappedDir)
	if len(mappedNames) != 1 {
		t.Fatalf("mapped files=%v, want 1", mappedNames)
	}
	readJSONForTest(t, filepath.Join(p.Layout.MappedDir, mappedNames[0]), &mapped)
	if len(mapped.Reviews) != 3 {
		t.Fatalf("mapped %d reviews, want 3", len(mapped.Reviews))
	}
	for _, a := range mapped.Reviews {
		if !IsISODate(a.Date) {
			t.Fatalf("persisted date %q is not normalized", a.Date)
		}
		if _, ok := taxonomy.StepNames()[a.StepName]; !ok {
			t.Fatalf("persisted step %q outside the active taxonomy", a.StepName)
		}
	}
	if mapped.Metadata.SummarySource == "" || mapped.Metadata.JourneySource == "" {
		t.Fatal("mapped provenance missing")
	}

	chartNames := readDirNames(t, p.Layout.ChartsDir)
	if len(chartNames) != 1 || !strings.HasSuffix(chartNames[0], ".html") {
		t.Fatalf("chart files=%v, want one .html", chartNames)
	}
	chart, err := os.ReadFile(filepath.Join(p.Layout.ChartsDir, chartNames[0]))
	if err != nil || len(chart) == 0 {
		t.Fatalf("chart artifact unreadable or empty: %v", err)
	}
}

func TestPipelineRun_MapperFailureLeavesNothingPersisted(t *testing.T) {
	t.Parallel()

	fakes := defaultFakes(t)
	fakes.classifierResponse = assignmentsJSON(
		`{"step_name": "Booking", "rating": 5, "date": "2025-01-17"}`,
		`{"step_name": "Onboarding", "rating": 4, "date": "2025-01-18"}`,
	)
	p := newTestPipeline(t, fakes)

	err := p.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "Onboarding") {
		t.Fatalf("expected mapping failure naming Onboarding, got %v", err)
	}

	if got := readDirNames(t, p.Layout.MappedDir); len(got) != 0 {
		t.Fatalf("mapper failure must persist zero assignments, found %v", got)
	}
	if got := readDirNames(t, p.Layout.ChartsDir); len(got) != 0 {
		t.Fatalf("plot stage must not run after a mapping failure, found %v", got)
	}
}

func TestPipelineRun_AllChunksFailedIsFatalAtAggregation(t *testing.T) {
	t.Parallel()

	fakes := defaultFakes(t)
	fakes.failSummarize = map[int]bool{1: true, 2: true, 3: true}
	p := newTestPipeline(t, fakes)

	err := p.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "no chunk summaries") {
		t.Fatalf("expected aggregation failure for empty summaries dir, got %v", err)
	}
}

func TestPipelineRun_BadTaxonomyResponseIsFatal(t *testing.T) {
	t.Parallel()

	fakes := defaultFakes(t)
	fakes.journeyResponse = `{"nothing": true}`
	p := newTestPipeline(t, fakes)

	err := p.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "journey_steps") {
		t.Fatalf("expected taxonomy structure error, got %v", err)
	}
	if got := readDirNames(t, p.Layout.JourneyDir); len(got) != 0 {
		t.Fatalf("invalid taxonomy must not be persisted, found %v", got)
	}
}

func TestPipelineRun_MissingInputIsFatal(t *testing.T) {
	t.Parallel()

	fakes := defaultFakes(t)
	p := newTestPipeline(t, fakes)
	if err := os.RemoveAll(p.Layout.InputDir); err != nil {
		t.Fatalf("remove input dir: %v", err)
	}

	if err := p.Run(context.Background()); err == nil {
		t.Fatal("expected fatal error for missing input directory")
	}
}

func readJSONForTest(t *testing.T, path string, v any) {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
}
