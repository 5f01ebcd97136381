package journey

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// CompileSummaries reads every per-chunk summary in filename order and
// wraps them as one ordered AggregatedSummary with provenance. Unlike the
// summarization stage, this stage has no per-item tolerance: a missing or
// empty directory, or any file that cannot be parsed, is fatal.
func CompileSummaries(analyzedDir string, now time.Time) (AggregatedSummary, error) {
	entries, err := os.ReadDir(analyzedDir)
	if err != nil {
		return AggregatedSummary{}, fmt.Errorf("read summaries dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), analyzedFilePrefix) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return AggregatedSummary{}, fmt.Errorf("no chunk summaries found in %s", analyzedDir)
	}
	sort.Strings(names)

	analyses := make([]ChunkAnalysis, 0, len(names))
	for _, name := range names {
		b, err := os.ReadFile(filepath.Join(analyzedDir, name))
		if err != nil {
			return AggregatedSummary{}, fmt.Errorf("read chunk summary %s: %w", name, err)
		}
		var cs ChunkSummary
		if err := json.Unmarshal(b, &cs); err != nil {
			return AggregatedSummary{}, fmt.Errorf("parse chunk summary %s: %w", name, err)
		}
		analyses = append(analyses, ChunkAnalysis{File: name, Analysis: cs.Response})
	}

	return AggregatedSummary{
		Metadata: AggregatedMetadata{
			TotalFiles:  len(names),
			Timestamp:   now.Format(provenanceTimeLayout),
			SourceFiles: names,
		},
		Analyses: analyses,
	}, nil
}
