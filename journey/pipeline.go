package journey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/voyagelens/journey-mapper/journey/fileutils"
)

// Pipeline executes the six stages of one run in fixed order:
// chunk, summarize, aggregate, synthesize taxonomy, map, plot.
// Execution is strictly sequential; chunk i+1 is never summarized before
// chunk i's attempt completes. Each stage reads only the latest output of
// its predecessor, so stages stay independently restartable.
type Pipeline struct {
	Layout    Layout
	ChunkSize int
	MaxChunks int
	Pretty    bool

	Log        *logrus.Logger
	Summarizer Summarizer
	Generator  TaxonomyGenerator
	Classifier Classifier

	// Now is the timestamp source for artifact names and provenance.
	// Defaults to time.Now.
	Now func() time.Time
}

// Run performs one full pipeline run from a fresh workspace. The failure
// policy differs per stage: a failed summarization skips that chunk only,
// while every later stage aborts the run on the first error.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.check(); err != nil {
		return err
	}

	inputFile, err := FindInputFile(p.Layout.InputDir)
	if err != nil {
		return err
	}
	baseName := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))

	if err := p.Layout.Initialize(); err != nil {
		return fmt.Errorf("initialize workspace: %w", err)
	}

	reviews, err := LoadReviews(inputFile)
	if err != nil {
		return err
	}
	p.Log.Infof("loaded %d reviews from %s", len(reviews), inputFile)

	chunkFiles, err := p.chunkStage(reviews, baseName)
	if err != nil {
		return err
	}
	if err := p.summarizeStage(ctx, chunkFiles); err != nil {
		return err
	}
	if err := p.aggregateStage(); err != nil {
		return err
	}
	if err := p.synthesizeStage(ctx); err != nil {
		return err
	}
	if err := p.mapStage(ctx); err != nil {
		return err
	}
	if err := p.plotStage(); err != nil {
		return err
	}

	p.Log.Info("pipeline run complete")
	return nil
}

func (p *Pipeline) check() error {
	if p.Summarizer == nil || p.Generator == nil || p.Classifier == nil {
		return errors.New("pipeline: all three capabilities must be set")
	}
	if p.ChunkSize <= 0 {
		return errors.New("pipeline: ChunkSize must be > 0")
	}
	if p.MaxChunks <= 0 {
		return errors.New("pipeline: MaxChunks must be > 0")
	}
	if p.Log == nil {
		p.Log = logrus.New()
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return nil
}

func (p *Pipeline) chunkStage(reviews []RawReview, baseName string) ([]string, error) {
	chunks, err := ChunkReviews(reviews, p.ChunkSize, p.MaxChunks)
	if err != nil {
		return nil, err
	}
	written, err := WriteChunks(p.Layout.ChunksDir, baseName, chunks, p.Pretty)
	if err != nil {
		return nil, err
	}
	p.Log.Infof("wrote %d chunks of up to %d reviews each", len(written), p.ChunkSize)
	return written, nil
}

// summarizeStage sends each chunk to the summarizer in ascending chunk
// order. A failed chunk (transport error, empty output, bad write) is
// logged and skipped; it simply never appears in the aggregated output.
func (p *Pipeline) summarizeStage(ctx context.Context, chunkFiles []string) error {
	for _, chunkPath := range chunkFiles {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := filepath.Base(chunkPath)
		if err := p.summarizeChunk(ctx, chunkPath); err != nil {
			p.Log.Warnf("skipping chunk %s: %v", name, err)
			continue
		}
		p.Log.Infof("summarized %s", name)
	}
	return nil
}

func (p *Pipeline) summarizeChunk(ctx context.Context, chunkPath string) error {
	b, err := os.ReadFile(chunkPath)
	if err != nil {
		return fmt.Errorf("read chunk: %w", err)
	}
	var reviews []RawReview
	if err := json.Unmarshal(b, &reviews); err != nil {
		return fmt.Errorf("parse chunk: %w", err)
	}

	raw, err := p.Summarizer.SummarizeBatch(ctx, RenderReviewBatch(reviews))
	if err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		return errors.New("empty response from summarizer")
	}

	summary := ChunkSummary{
		Response:  CleanMarkdown(raw),
		Timestamp: p.Now().Format(provenanceTimeLayout),
	}
	outPath := filepath.Join(p.Layout.AnalyzedDir, analyzedFilePrefix+filepath.Base(chunkPath))
	return fileutils.WriteJSONFileAtomic(outPath, summary, p.Pretty)
}

func (p *Pipeline) aggregateStage() error {
	agg, err := CompileSummaries(p.Layout.AnalyzedDir, p.Now())
	if err != nil {
		return err
	}
	outPath := filepath.Join(p.Layout.SummaryDir,
		summaryFilePrefix+p.Now().Format(artifactTimeLayout)+".json")
	if err := fileutils.WriteJSONFileAtomic(outPath, agg, p.Pretty); err != nil {
		return err
	}
	p.Log.Infof("aggregated %d chunk summaries into %s", agg.Metadata.TotalFiles, outPath)
	return nil
}

func (p *Pipeline) synthesizeStage(ctx context.Context) error {
	latest, err := fileutils.LatestFile(p.Layout.SummaryDir, summaryFilePrefix)
	if err != nil {
		return err
	}
	b, err := os.ReadFile(latest)
	if err != nil {
		return fmt.Errorf("read aggregated summary: %w", err)
	}

	raw, err := p.Generator.GenerateJourney(ctx, string(b))
	if err != nil {
		return fmt.Errorf("generate journey steps: %w", err)
	}
	steps, err := ParseTaxonomyResponse(raw)
	if err != nil {
		return err
	}

	taxonomy := JourneyTaxonomy{
		SourceFile:   latest,
		Timestamp:    p.Now().Format(provenanceTimeLayout),
		JourneySteps: steps,
	}
	outPath := filepath.Join(p.Layout.JourneyDir,
		journeyFilePrefix+p.Now().Format(artifactTimeLayout)+".json")
	if err := fileutils.WriteJSONFileAtomic(outPath, taxonomy, p.Pretty); err != nil {
		return err
	}
	p.Log.Infof("journey taxonomy saved to %s", outPath)
	return nil
}

// mapStage delegates classification and then re-validates every returned
// assignment. Nothing is persisted unless the whole batch validates.
func (p *Pipeline) mapStage(ctx context.Context) error {
	latestSummary, err := fileutils.LatestFile(p.Layout.SummaryDir, summaryFilePrefix)
	if err != nil {
		return err
	}
	latestJourney, err := fileutils.LatestFile(p.Layout.JourneyDir, journeyFilePrefix)
	if err != nil {
		return err
	}

	summaryJSON, err := os.ReadFile(latestSummary)
	if err != nil {
		return fmt.Errorf("read aggregated summary: %w", err)
	}
	journeyJSON, err := os.ReadFile(latestJourney)
	if err != nil {
		return fmt.Errorf("read journey taxonomy: %w", err)
	}
	var taxonomy JourneyTaxonomy
	if err := json.Unmarshal(journeyJSON, &taxonomy); err != nil {
		return fmt.Errorf("parse journey taxonomy %s: %w", latestJourney, err)
	}
	if len(taxonomy.JourneySteps) == 0 {
		return fmt.Errorf("journey taxonomy %s has no journey_steps", latestJourney)
	}

	raw, err := p.Classifier.MapReviews(ctx, string(journeyJSON), string(summaryJSON))
	if err != nil {
		return fmt.Errorf("map reviews: %w", err)
	}
	assignments, err := ValidateAssignments(raw, taxonomy)
	if err != nil {
		return err
	}

	mapped := MappedReviews{
		Metadata: MappedMetadata{
			SummarySource: latestSummary,
			JourneySource: latestJourney,
			Timestamp:     p.Now().Format(provenanceTimeLayout),
		},
		Reviews: assignments,
	}
	outPath := filepath.Join(p.Layout.MappedDir,
		mappedFilePrefix+p.Now().Format(artifactTimeLayout)+".json")
	if err := fileutils.WriteJSONFileAtomic(outPath, mapped, p.Pretty); err != nil {
		return err
	}
	p.Log.Infof("mapped %d reviews to journey steps, saved to %s", len(assignments), outPath)
	return nil
}

func (p *Pipeline) plotStage() error {
	latestMapped, err := fileutils.LatestFile(p.Layout.MappedDir, mappedFilePrefix)
	if err != nil {
		return err
	}
	latestJourney, err := fileutils.LatestFile(p.Layout.JourneyDir, journeyFilePrefix)
	if err != nil {
		return err
	}

	var mapped MappedReviews
	if err := readJSONFile(latestMapped, &mapped); err != nil {
		return err
	}
	var taxonomy JourneyTaxonomy
	if err := readJSONFile(latestJourney, &taxonomy); err != nil {
		return err
	}
	if len(taxonomy.JourneySteps) == 0 {
		return fmt.Errorf("journey taxonomy %s has no journey_steps", latestJourney)
	}

	averages := AverageByStep(mapped.Reviews, taxonomy.JourneySteps)

	if err := os.MkdirAll(p.Layout.ChartsDir, 0o755); err != nil {
		return fmt.Errorf("mkdir charts dir: %w", err)
	}
	outPath := filepath.Join(p.Layout.ChartsDir,
		chartFilePrefix+p.Now().Format(artifactTimeLayout)+".html")
	if err := RenderRatingsChart(averages, outPath); err != nil {
		return err
	}
	p.Log.Infof("chart saved to %s", outPath)
	return nil
}

func readJSONFile(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
