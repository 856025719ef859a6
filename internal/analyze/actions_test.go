package analyze

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtnitsch/veritas/models"
	"github.com/dtnitsch/veritas/pkg/scoring"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const articleHTML = `<!DOCTYPE html>
<html><head>
<title>City council approves new budget</title>
<meta name="author" content="Jane Smith">
<meta property="article:published_time" content="2024-03-01T09:00:00Z">
</head><body>
<article>
<h1>City council approves new budget</h1>
<p>The city council voted on Tuesday to approve the annual budget after a long debate.
Members said the plan funds schools, roads and parks. The vote passed seven to two.</p>
<p>According to <a href="https://records.example.org/budget">public records</a>, spending rises slightly.</p>
<a href="/corrections">Corrections</a>
</article>
</body></html>`

// runApp runs the CLI with --quiet and returns stdout.
func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	app := NewApp()
	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut
	app.Reader = strings.NewReader(stdin)
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"veritas", "--quiet"}, args...))
	return out.String(), err
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return -1
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func decodeReport(t *testing.T, out string) Report {
	t.Helper()
	var r Report
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("output is not a JSON report: %v\n%s", err, out)
	}
	return r
}

func TestTextAction(t *testing.T) {
	text := "By Maria Lopez. Researchers published a study on river pollution this week. " +
		"The team measured water samples at twelve sites. Sources are listed at https://example.org/data."

	out, err := runApp(t, text, "--summary", "text", "--stdin")
	if err != nil {
		t.Fatalf("text --stdin error = %v", err)
	}

	r := decodeReport(t, out)
	if r.Result.Data.URL != "manual-text" {
		t.Errorf("URL = %q, want manual-text", r.Result.Data.URL)
	}
	if r.Result.Data.AuthorName() != "Maria Lopez" {
		t.Errorf("author = %q", r.Result.Data.AuthorName())
	}
	if r.Result.Score < 0 || r.Result.Score > 100 {
		t.Errorf("score %d out of range", r.Result.Score)
	}
	if r.Summary["Author"] != "Maria Lopez" {
		t.Errorf("summary author = %v", r.Summary["Author"])
	}
}

func TestTextActionFromFile(t *testing.T) {
	path := writeFile(t, "note.txt", "A short note about nothing in particular.")
	out, err := runApp(t, "", "text", "--path", path)
	if err != nil {
		t.Fatalf("text --path error = %v", err)
	}
	if r := decodeReport(t, out); r.Summary != nil {
		t.Error("summary present without --summary")
	}
}

func TestTextActionUsageErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"no source", "", []string{"text"}},
		{"empty input", "   \n", []string{"text", "--stdin"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, tt.stdin, tt.args...)
			if code := exitCode(err); code != 1 {
				t.Errorf("exit code = %d, want 1 (err = %v)", code, err)
			}
		})
	}
}

func TestFileAction(t *testing.T) {
	path := writeFile(t, "page.html", articleHTML)

	out, err := runApp(t, "", "file", "--path", path, "--url", "https://www.citynews.com/budget")
	if err != nil {
		t.Fatalf("file error = %v", err)
	}

	d := decodeReport(t, out).Result.Data
	if d.SiteType != models.SiteTypeNews {
		t.Errorf("site type = %q, want News", d.SiteType)
	}
	if d.AuthorName() != "Jane Smith" {
		t.Errorf("author = %q", d.AuthorName())
	}
	if d.ExternalLinkCount != 1 || !d.CorrectionsPolicyFound {
		t.Errorf("external = %d, corrections = %v", d.ExternalLinkCount, d.CorrectionsPolicyFound)
	}
}

func TestFileActionMissingFile(t *testing.T) {
	_, err := runApp(t, "", "file", "--path", filepath.Join(t.TempDir(), "none.html"), "--url", "https://a.com")
	if code := exitCode(err); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestScoreAction(t *testing.T) {
	author := "Jane Smith"
	data := models.AnalysisData{
		URL:                    "https://news.example.com/a",
		Title:                  "Budget passes",
		Author:                 &author,
		SiteType:               models.SiteTypeNews,
		LinkCount:              3,
		ExternalLinkCount:      2,
		InternalLinkCount:      1,
		CorrectionsPolicyFound: true,
		ReadabilityScore:       55,
	}
	want, err := scoring.Score(data)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	path := writeFile(t, "data.json", string(raw))

	t.Run("json", func(t *testing.T) {
		out, err := runApp(t, "", "score", "--path", path)
		if err != nil {
			t.Fatalf("score error = %v", err)
		}
		r := decodeReport(t, out)
		if r.Result.Score != want.Score || len(r.Result.Modifiers) != len(want.Modifiers) {
			t.Errorf("score = %d with %d modifiers, want %d with %d",
				r.Result.Score, len(r.Result.Modifiers), want.Score, len(want.Modifiers))
		}
	})

	t.Run("yaml output", func(t *testing.T) {
		out, err := runApp(t, "", "--format", "yaml", "score", "--path", path)
		if err != nil {
			t.Fatalf("score error = %v", err)
		}
		var r Report
		if err := yaml.Unmarshal([]byte(out), &r); err != nil {
			t.Fatalf("output is not YAML: %v", err)
		}
		if r.Result.Score != want.Score {
			t.Errorf("score = %d, want %d", r.Result.Score, want.Score)
		}
	})

	t.Run("report file", func(t *testing.T) {
		outPath := filepath.Join(t.TempDir(), "reports", "a.json")
		stdout, err := runApp(t, "", "score", "--path", path, "--out", outPath)
		if err != nil {
			t.Fatalf("score error = %v", err)
		}
		if stdout != "" {
			t.Errorf("stdout = %q, want nothing when --out is set", stdout)
		}
		written, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("report not written: %v", err)
		}
		if r := decodeReport(t, string(written)); r.Result.Score != want.Score {
			t.Errorf("written score = %d, want %d", r.Result.Score, want.Score)
		}
	})
}

func TestScoreActionRejectsInvalidData(t *testing.T) {
	path := writeFile(t, "bad.yaml", "url: https://a.com\nsite_type: Magazine\nlink_count: -2\n")

	_, err := runApp(t, "", "score", "--path", path)
	if code := exitCode(err); code != 1 {
		t.Fatalf("exit code = %d, want 1 (err = %v)", code, err)
	}
	if !strings.Contains(err.Error(), "Magazine") {
		t.Errorf("error %q should name the bad site type", err)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "note.txt", "Some text.")
	_, err := runApp(t, "", "--format", "xml", "text", "--path", path)
	if code := exitCode(err); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func newPageServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/story":
			_, _ = w.Write([]byte(articleHTML))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestURLActionBatch(t *testing.T) {
	srv := newPageServer(t)
	dbPath := filepath.Join(t.TempDir(), "history.db")

	out, err := runApp(t, "", "--record", "--db", dbPath,
		"url", "--no-cache", "--workers", "2", "--urls", srv.URL+"/story,"+srv.URL+"/missing")
	if code := exitCode(err); code != 1 {
		t.Fatalf("exit code = %d, want 1 for a partial failure (err = %v)", code, err)
	}

	var batch BatchOutput
	if err := json.Unmarshal([]byte(out), &batch); err != nil {
		t.Fatalf("output is not a batch: %v\n%s", err, out)
	}
	m := batch.Manifest
	if m.TotalURLs != 2 || m.Successful != 1 || m.Failed != 1 {
		t.Errorf("manifest counts = (%d, %d, %d)", m.TotalURLs, m.Successful, m.Failed)
	}
	if m.Results[0].Status != "success" || m.Results[1].ErrorType != ErrorTypeHTTP {
		t.Errorf("manifest entries out of order or wrong: %+v", m.Results)
	}
	if len(batch.Reports) != 1 || batch.Reports[0].Result.Data.URL != srv.URL+"/story" {
		t.Errorf("reports = %+v", batch.Reports)
	}

	hist, err := runApp(t, "", "--db", dbPath, "history", "--runs", "--tags", "3")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	var h HistoryOutput
	if err := json.Unmarshal([]byte(hist), &h); err != nil {
		t.Fatalf("history output: %v\n%s", err, hist)
	}
	if len(h.Analyses) != 1 || h.Analyses[0].URL != srv.URL+"/story" || h.Analyses[0].Source != "page" {
		t.Errorf("analyses = %+v", h.Analyses)
	}
	if len(h.Runs) != 1 || h.Runs[0].Command != "url" || h.Runs[0].Succeeded != 1 || h.Runs[0].Failed != 1 {
		t.Errorf("runs = %+v", h.Runs)
	}
	if len(h.TopTags) == 0 {
		t.Error("no top tags")
	}
}

func TestURLActionSingleAndCache(t *testing.T) {
	srv := newPageServer(t)
	cacheDir := filepath.Join(t.TempDir(), "cache")

	for i := 0; i < 2; i++ {
		out, err := runApp(t, "", "url", "--cache-dir", cacheDir, srv.URL+"/story")
		if err != nil {
			t.Fatalf("run %d: url error = %v", i, err)
		}
		if r := decodeReport(t, out); r.Result.Data.AuthorName() != "Jane Smith" {
			t.Errorf("run %d: author = %q", i, r.Result.Data.AuthorName())
		}
	}

	entries, err := os.ReadDir(cacheDir)
	if err != nil || len(entries) != 1 {
		t.Errorf("cache entries = %d (err = %v), want 1", len(entries), err)
	}
}

func TestURLActionOutDir(t *testing.T) {
	srv := newPageServer(t)
	outDir := t.TempDir()

	out, err := runApp(t, "", "url", "--no-cache", "--out", outDir, srv.URL+"/story")
	if err != nil {
		t.Fatalf("url error = %v", err)
	}
	if !strings.Contains(out, "1/1 URLs analysed") || !strings.Contains(out, "Manifest:") {
		t.Errorf("stdout = %q", out)
	}

	if _, err := os.Stat(filepath.Join(outDir, "001-127-0-0-1.json")); err != nil {
		t.Errorf("report not written: %v", err)
	}
	manifests, _ := filepath.Glob(filepath.Join(outDir, "summary-*.json"))
	if len(manifests) != 1 {
		t.Errorf("manifests = %v, want one", manifests)
	}
}

func TestURLActionConfigOutDir(t *testing.T) {
	srv := newPageServer(t)
	outDir := filepath.Join(t.TempDir(), "reports")
	cfgPath := writeFile(t, "veritas.yaml", "output:\n  dir: "+outDir+"\n")

	out, err := runApp(t, "", "--config", cfgPath, "url", "--no-cache", srv.URL+"/story")
	if err != nil {
		t.Fatalf("url error = %v", err)
	}
	if !strings.Contains(out, "Manifest:") {
		t.Errorf("stdout = %q, want the manifest path", out)
	}
	if _, err := os.Stat(filepath.Join(outDir, "001-127-0-0-1.json")); err != nil {
		t.Errorf("report not written to output.dir: %v", err)
	}

	override := t.TempDir()
	if _, err := runApp(t, "", "--config", cfgPath, "url", "--no-cache", "--out", override, srv.URL+"/story"); err != nil {
		t.Fatalf("url error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(override, "001-127-0-0-1.json")); err != nil {
		t.Errorf("--out did not override output.dir: %v", err)
	}
}

func TestURLActionErrors(t *testing.T) {
	srv := newPageServer(t)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no urls", []string{"url"}, 1},
		{"malformed url", []string{"url", "ftp://example.com/file"}, 1},
		{"every url fails", []string{"url", "--no-cache", srv.URL + "/missing"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, "", tt.args...)
			if code := exitCode(err); code != tt.want {
				t.Errorf("exit code = %d, want %d (err = %v)", code, tt.want, err)
			}
		})
	}
}

func TestQuickstartAction(t *testing.T) {
	out, err := runApp(t, "", "quickstart")
	if err != nil {
		t.Fatalf("quickstart error = %v", err)
	}
	if !strings.HasPrefix(out, "# veritas Quick Start") {
		t.Errorf("unexpected quickstart output: %.40q", out)
	}
}

func TestReportFileName(t *testing.T) {
	tests := []struct {
		index  int
		url    string
		format string
		want   string
	}{
		{0, "https://www.example.com/a", "json", "001-www-example-com.json"},
		{11, "https://news.example.org", "yaml", "012-news-example-org.yaml"},
		{2, "::bad", "json", "003-page.json"},
	}
	for _, tt := range tests {
		if got := reportFileName(tt.index, tt.url, tt.format); got != tt.want {
			t.Errorf("reportFileName(%d, %q) = %q, want %q", tt.index, tt.url, got, tt.want)
		}
	}
}
