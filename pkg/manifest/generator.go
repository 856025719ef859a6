package manifest

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/dtnitsch/veritas/models"
	"github.com/dtnitsch/veritas/pkg/mapreduce"
	"github.com/dtnitsch/veritas/pkg/storage"
)

// topTagCount is how many modifier tags a manifest lists.
const topTagCount = 10

// Outcome is the result of analysing a single URL in a batch.
type Outcome struct {
	URL        string
	Result     *models.AnalysisResult
	Error      error
	ErrorType  string
	ReportPath string
	FromCache  bool
}

// Build aggregates outcomes into a RunManifest, in input order.
func Build(outcomes []Outcome, now time.Time) RunManifest {
	m := RunManifest{
		GeneratedAt: now.UTC().Format(time.RFC3339),
		TotalURLs:   len(outcomes),
		Results:     make([]RunEntry, 0, len(outcomes)),
	}

	total := 0
	var tagCounts []map[string]int
	for _, o := range outcomes {
		entry := RunEntry{URL: o.URL, FromCache: o.FromCache}
		if o.Error != nil || o.Result == nil {
			m.Failed++
			entry.Status = "error"
			entry.ErrorType = o.ErrorType
			if o.Error != nil {
				entry.ErrorMessage = o.Error.Error()
			}
		} else {
			m.Successful++
			entry.Status = "success"
			entry.Score = o.Result.Score
			entry.SiteType = string(o.Result.Data.SiteType)
			entry.ReportPath = o.ReportPath
			total += o.Result.Score
			tagCounts = append(tagCounts, mapreduce.Map(*o.Result))
		}
		m.Results = append(m.Results, entry)
	}
	if m.Successful > 0 {
		m.AverageScore = math.Round(float64(total)/float64(m.Successful)*100) / 100
		m.TopTags = mapreduce.TopTags(mapreduce.Reduce(tagCounts), topTagCount)
	}
	return m
}

// Generate builds the manifest and saves it as JSON under dir. It returns
// the written path.
func Generate(outcomes []Outcome, dir string, s *storage.Storage) (string, error) {
	now := time.Now()
	m := Build(outcomes, now)

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshalling manifest: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("summary-%s.json", now.Format("2006-01-02T150405")))
	if err := s.SaveFile(path, data); err != nil {
		return "", fmt.Errorf("error saving manifest: %w", err)
	}
	return path, nil
}
