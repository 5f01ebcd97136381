package journey

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Artifact naming. Filenames embed a sortable timestamp or sequence index;
// "latest" selection is always maximum-by-name within a fixed prefix.
const (
	analyzedFilePrefix = "analyzed_"
	summaryFilePrefix  = "summarized_reviews_"
	journeyFilePrefix  = "customer_journey_"
	mappedFilePrefix   = "journey_mapped_reviews_"
	chartFilePrefix    = "ratings_by_step_"

	artifactTimeLayout   = "20060102_150405"
	provenanceTimeLayout = "2006-01-02 15:04:05"
)

// Layout names the artifact directories of a run. Each directory is written
// by exactly one stage.
type Layout struct {
	InputDir    string // raw review collections (never wiped)
	ChunksDir   string // chunk files
	AnalyzedDir string // per-chunk summaries
	SummaryDir  string // aggregated summaries
	JourneyDir  string // journey taxonomies
	MappedDir   string // validated step assignments
	ChartsDir   string // rendered charts (never wiped)
}

// DefaultLayout places all artifact directories under baseDir.
func DefaultLayout(baseDir string) Layout {
	return Layout{
		InputDir:    filepath.Join(baseDir, "raw-reviews"),
		ChunksDir:   filepath.Join(baseDir, "data-chunks"),
		AnalyzedDir: filepath.Join(baseDir, "analyzed-chunks"),
		SummaryDir:  filepath.Join(baseDir, "summarized-reviews"),
		JourneyDir:  filepath.Join(baseDir, "journey-steps"),
		MappedDir:   filepath.Join(baseDir, "reviews-by-journey-step"),
		ChartsDir:   filepath.Join(baseDir, "visualizations"),
	}
}

// Initialize wipes and recreates the working directories so every run
// starts fresh. The input and chart directories are left alone.
func (l Layout) Initialize() error {
	for _, dir := range []string{l.ChunksDir, l.AnalyzedDir, l.SummaryDir, l.JourneyDir, l.MappedDir} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("remove %s: %w", dir, err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	return nil
}

// FindInputFile returns the first .json file in sorted order in dir. A
// missing directory or a directory with no JSON files is fatal for the run.
func FindInputFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read input dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no JSON files found in %s", dir)
	}
	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}

// LoadReviews reads one raw review collection.
func LoadReviews(path string) ([]RawReview, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	var reviews []RawReview
	if err := json.Unmarshal(b, &reviews); err != nil {
		return nil, fmt.Errorf("parse input file %s: %w", path, err)
	}
	return reviews, nil
}
