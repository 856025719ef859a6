// Package manifest builds the outputs handed to collaborators outside the
// scoring core: the run summary for batch analyses and the signal map given
// to an AI summarizer.
package manifest

// RunManifest is a lightweight overview of one batch run: per-URL status and
// score without the full AnalysisResult.
type RunManifest struct {
	GeneratedAt  string     `json:"generated_at" yaml:"generated_at"`
	TotalURLs    int        `json:"total_urls" yaml:"total_urls"`
	Successful   int        `json:"successful" yaml:"successful"`
	Failed       int        `json:"failed" yaml:"failed"`
	AverageScore float64    `json:"average_score" yaml:"average_score"`
	TopTags      []string   `json:"top_tags,omitempty" yaml:"top_tags,omitempty"` // "tag:count"
	Results      []RunEntry `json:"results" yaml:"results"`
}

// RunEntry summarises one analysed URL.
type RunEntry struct {
	URL          string `json:"url" yaml:"url"`
	Status       string `json:"status" yaml:"status"` // "success" or "error"
	ErrorType    string `json:"error_type,omitempty" yaml:"error_type,omitempty"`
	ErrorMessage string `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	Score        int    `json:"score,omitempty" yaml:"score,omitempty"`
	SiteType     string `json:"site_type,omitempty" yaml:"site_type,omitempty"`
	ReportPath   string `json:"report_path,omitempty" yaml:"report_path,omitempty"`
	FromCache    bool   `json:"from_cache,omitempty" yaml:"from_cache,omitempty"`
}
