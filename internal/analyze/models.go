package analyze

import (
	"github.com/dtnitsch/veritas/models"
	"github.com/dtnitsch/veritas/pkg/db"
	"github.com/dtnitsch/veritas/pkg/manifest"
)

// Error types recorded per input.
const (
	ErrorTypeHTTP    = "http_error"
	ErrorTypeNetwork = "network_error"
	ErrorTypeParse   = "parse_error"
	ErrorTypeScore   = "score_error"
)

// Job defines a URL for a worker to analyse.
type Job struct {
	Index int
	URL   string
}

// Result holds the outcome of one analysed input.
type Result struct {
	Index       int
	URL         string
	Analysis    *models.AnalysisResult
	ContentHash string
	Fetched     bool
	FromCache   bool
	StatusCode  int
	Error       error
	ErrorType   string
	ReportPath  string
}

func (r Result) outcome() manifest.Outcome {
	return manifest.Outcome{
		URL:        r.URL,
		Result:     r.Analysis,
		Error:      r.Error,
		ErrorType:  r.ErrorType,
		ReportPath: r.ReportPath,
		FromCache:  r.FromCache,
	}
}

// Report is what a command prints for one analysis.
type Report struct {
	Result  models.AnalysisResult `json:"result" yaml:"result"`
	Summary map[string]any        `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// BatchOutput is printed for a multi-URL run without --out.
type BatchOutput struct {
	Manifest manifest.RunManifest `json:"manifest" yaml:"manifest"`
	Reports  []Report             `json:"reports" yaml:"reports"`
}

// HistoryEntry is one stored analysis in `history` output.
type HistoryEntry struct {
	AnalysisID int64  `json:"analysis_id" yaml:"analysis_id"`
	RunID      int64  `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	CreatedAt  string `json:"created_at" yaml:"created_at"`
	Source     string `json:"source" yaml:"source"`
	URL        string `json:"url,omitempty" yaml:"url,omitempty"`
	Score      int    `json:"score" yaml:"score"`
	SiteType   string `json:"site_type" yaml:"site_type"`
	Author     string `json:"author,omitempty" yaml:"author,omitempty"`
	Lexicon    string `json:"lexicon_version,omitempty" yaml:"lexicon_version,omitempty"`
}

// HistoryRun is one stored run in `history --runs` output.
type HistoryRun struct {
	RunID     int64  `json:"run_id" yaml:"run_id"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
	Command   string `json:"command" yaml:"command"`
	Inputs    int    `json:"inputs" yaml:"inputs"`
	Succeeded int    `json:"succeeded" yaml:"succeeded"`
	Failed    int    `json:"failed" yaml:"failed"`
}

// HistoryTag is a modifier tag with how often it fired.
type HistoryTag struct {
	Tag   string `json:"tag" yaml:"tag"`
	Count int    `json:"count" yaml:"count"`
}

type HistoryOutput struct {
	Analyses []HistoryEntry `json:"analyses" yaml:"analyses"`
	Runs     []HistoryRun   `json:"runs,omitempty" yaml:"runs,omitempty"`
	TopTags  []HistoryTag   `json:"top_tags,omitempty" yaml:"top_tags,omitempty"`
}

const historyTimeLayout = "2006-01-02 15:04:05"

func toHistoryEntry(r db.AnalysisRecord) HistoryEntry {
	return HistoryEntry{
		AnalysisID: r.AnalysisID,
		RunID:      r.RunID,
		CreatedAt:  r.CreatedAt.Format(historyTimeLayout),
		Source:     r.Source,
		URL:        r.URL,
		Score:      r.Score,
		SiteType:   r.SiteType,
		Author:     r.Author,
		Lexicon:    r.LexiconVersion,
	}
}

func toHistoryRun(r db.Run) HistoryRun {
	return HistoryRun{
		RunID:     r.RunID,
		CreatedAt: r.CreatedAt.Format(historyTimeLayout),
		Command:   r.Command,
		Inputs:    r.InputCount,
		Succeeded: r.SuccessCount,
		Failed:    r.FailedCount,
	}
}
