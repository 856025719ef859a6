package analyze

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/dtnitsch/veritas/internal/common"
	"github.com/dtnitsch/veritas/models"
	"github.com/dtnitsch/veritas/pkg/caching"
	"github.com/dtnitsch/veritas/pkg/db"
	"github.com/dtnitsch/veritas/pkg/fetcher"
	"github.com/dtnitsch/veritas/pkg/help"
	"github.com/dtnitsch/veritas/pkg/manifest"
	"github.com/dtnitsch/veritas/pkg/storage"
	"github.com/urfave/cli/v2"
)

// URLAction fetches and scores one or more URLs.
func URLAction(c *cli.Context) error {
	rawURLs := append(common.SplitURLs(c.String("urls")), c.Args().Slice()...)
	if len(rawURLs) == 0 {
		fmt.Fprintln(c.App.ErrWriter, "Error: No URLs provided")
		fmt.Fprintln(c.App.ErrWriter, "")
		fmt.Fprintln(c.App.ErrWriter, "Usage:")
		fmt.Fprintln(c.App.ErrWriter, `  veritas url --urls "https://example.com/story,https://example.org/post"`)
		fmt.Fprintln(c.App.ErrWriter, `  veritas url https://example.com/story`)
		return cli.Exit("", 1)
	}

	urls, invalidURLs := common.SanitizeAndValidateURLs(rawURLs)
	if len(invalidURLs) > 0 {
		fmt.Fprintf(c.App.ErrWriter, "Error: %d URL(s) are malformed (even after cleanup):\n", len(invalidURLs))
		for _, badURL := range invalidURLs {
			fmt.Fprintf(c.App.ErrWriter, "  - %s\n", badURL)
		}
		return cli.Exit("", 1)
	}

	e, err := newEnv(c, false)
	if err != nil {
		return err
	}
	defer e.close()

	batch := &models.BatchConfig{
		URLs:        urls,
		WorkerCount: e.cfg.Fetch.Workers,
		UseCache:    !c.Bool("no-cache") && e.cfg.Fetch.CacheTTL > 0,
	}
	if c.IsSet("workers") {
		batch.WorkerCount = c.Int("workers")
	}
	if batch.WorkerCount < 1 {
		return cli.Exit("Error: --workers must be at least 1", 1)
	}

	p := &pipeline{
		logger:    e.logger,
		fetcher:   fetcher.NewFetcher(e.cfg.FetcherOptions()),
		assembler: e.assembler,
		engine:    e.engine,
	}
	if batch.UseCache {
		cacheDir := e.cfg.Fetch.CacheDir
		if c.IsSet("cache-dir") {
			cacheDir = c.String("cache-dir")
		}
		p.cache, err = caching.NewCache(cacheDir, e.cfg.Fetch.CacheTTL)
		if err != nil {
			e.logger.Error("failed to initialize cache", "error", err)
			return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
		}
		if c.Bool("prune-cache") {
			removed, err := p.cache.Prune()
			if err != nil {
				e.logger.Warn("Failed to prune cache", "error", err)
			}
			e.logger.Info("Cache pruned", "removed", removed)
		}
	}

	runID := e.startRun("url", len(urls))
	results := p.run(c.Context, batch)

	success, failed := 0, 0
	for _, r := range results {
		if r.Error != nil {
			failed++
		} else {
			success++
		}
		e.recordResult(runID, db.SourcePage, r)
	}
	e.finishRun(runID, success, failed)

	if err := e.writeBatch(results, e.batchDir(c)); err != nil {
		e.logger.Error("failed to write output", "error", err)
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}

	if failed == len(results) {
		return cli.Exit("", 2)
	}
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

// writeBatch prints a single report for one URL, otherwise a manifest with
// every report. With outDir set, reports and the manifest go to files.
func (e *env) writeBatch(results []Result, outDir string) error {
	if outDir == "" {
		if len(results) == 1 && results[0].Analysis != nil {
			return e.emit(e.report(*results[0].Analysis), "")
		}
		out := BatchOutput{Reports: []Report{}}
		outcomes := make([]manifest.Outcome, len(results))
		for i, r := range results {
			outcomes[i] = r.outcome()
			if r.Analysis != nil {
				out.Reports = append(out.Reports, e.report(*r.Analysis))
			}
		}
		out.Manifest = manifest.Build(outcomes, time.Now())
		return e.emit(out, "")
	}

	outcomes := make([]manifest.Outcome, len(results))
	for i := range results {
		r := &results[i]
		if r.Analysis != nil {
			path := filepath.Join(outDir, reportFileName(i, r.URL, e.format))
			if err := e.store.WriteReport(path, e.report(*r.Analysis), e.format); err != nil {
				return err
			}
			r.ReportPath = path
		}
		outcomes[i] = r.outcome()
	}
	manifestPath, err := manifest.Generate(outcomes, outDir, e.store)
	if err != nil {
		return err
	}
	e.logger.Info("Manifest written", "path", manifestPath)

	success := 0
	for _, r := range results {
		if r.Error == nil {
			success++
		}
	}
	fmt.Fprintf(e.out, "%d/%d URLs analysed\nManifest: %s\n", success, len(results), manifestPath)
	return nil
}

// reportFileName is "<n>-<host>.<format>", numbered from 1 in input order.
func reportFileName(index int, rawURL, format string) string {
	host := "page"
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		host = strings.ReplaceAll(u.Hostname(), ".", "-")
	}
	return fmt.Sprintf("%03d-%s.%s", index+1, host, format)
}

// FileAction scores saved markup.
func FileAction(c *cli.Context) error {
	e, err := newEnv(c, false)
	if err != nil {
		return err
	}
	defer e.close()

	path := c.String("path")
	rawHTML, err := e.store.ReadFile(path)
	if err != nil {
		e.logger.Error("failed to read markup", "path", path, "error", err)
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	pageURL := c.String("url")
	r := analyzePage(e.assembler, e.engine, rawHTML, pageURL)
	return e.finishSingle("file", db.SourcePage, r, c.String("out"))
}

// TextAction scores pasted text read from --path or --stdin.
func TextAction(c *cli.Context) error {
	if c.IsSet("path") == c.Bool("stdin") {
		return cli.Exit("Error: provide exactly one of --path or --stdin", 1)
	}

	e, err := newEnv(c, false)
	if err != nil {
		return err
	}
	defer e.close()

	var raw []byte
	if c.Bool("stdin") {
		raw, err = io.ReadAll(c.App.Reader)
	} else {
		raw, err = e.store.ReadFile(c.String("path"))
	}
	if err != nil {
		e.logger.Error("failed to read text", "error", err)
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return cli.Exit("Error: no text to analyse", 1)
	}

	data := e.assembler.FromText(string(raw))
	r := Result{URL: data.URL, ContentHash: common.ContentHash(raw)}
	scored, err := e.engine.Score(data)
	if err != nil {
		r.Error, r.ErrorType = err, ErrorTypeScore
	} else {
		r.Analysis = &scored
	}
	return e.finishSingle("text", db.SourceText, r, c.String("out"))
}

// ScoreAction rescores a serialized AnalysisData record.
func ScoreAction(c *cli.Context) error {
	e, err := newEnv(c, false)
	if err != nil {
		return err
	}
	defer e.close()

	path := c.String("path")
	raw, err := e.store.ReadFile(path)
	if err != nil {
		e.logger.Error("failed to read analysis data", "path", path, "error", err)
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	var data models.AnalysisData
	if err := storage.Unmarshal(raw, storage.FormatFromPath(path), &data); err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	r := Result{URL: data.URL, ContentHash: common.ContentHash(raw)}
	scored, err := e.engine.Score(data)
	if err != nil {
		r.Error, r.ErrorType = err, ErrorTypeScore
	} else {
		r.Analysis = &scored
	}
	return e.finishSingle("score", db.SourceData, r, c.String("out"))
}

// batchDir is --out when given, otherwise output.dir from the config. Empty
// means stdout.
func (e *env) batchDir(c *cli.Context) string {
	if c.IsSet("out") {
		return c.String("out")
	}
	return e.cfg.Output.Dir
}

// finishSingle records and prints a single-input analysis. Invalid analysis
// data is a usage error; any other failure is a runtime error.
func (e *env) finishSingle(command, source string, r Result, outPath string) error {
	runID := e.startRun(command, 1)
	e.recordResult(runID, source, r)

	if r.Error != nil {
		e.finishRun(runID, 0, 1)
		e.logger.Error("analysis failed", "url", r.URL, "error_type", r.ErrorType, "error", r.Error)
		code := 2
		if errors.Is(r.Error, models.ErrInvalidAnalysisData) {
			code = 1
		}
		return cli.Exit(fmt.Sprintf("Error: %v", r.Error), code)
	}
	e.finishRun(runID, 1, 0)

	e.logger.Info("Analysis complete", "url", r.URL, "score", r.Analysis.Score, "modifiers", len(r.Analysis.Modifiers))
	if err := e.emit(e.report(*r.Analysis), outPath); err != nil {
		e.logger.Error("failed to write output", "error", err)
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	return nil
}

// HistoryAction lists stored analyses.
func HistoryAction(c *cli.Context) error {
	e, err := newEnv(c, true)
	if err != nil {
		return err
	}
	defer e.close()

	records, err := e.database.ListAnalyses(c.String("url"), c.Int("limit"))
	if err != nil {
		e.logger.Error("failed to list analyses", "error", err)
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}

	out := HistoryOutput{Analyses: make([]HistoryEntry, 0, len(records))}
	for _, r := range records {
		out.Analyses = append(out.Analyses, toHistoryEntry(r))
	}

	if c.Bool("runs") {
		runs, err := e.database.ListRuns(c.Int("limit"))
		if err != nil {
			e.logger.Error("failed to list runs", "error", err)
			return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
		}
		for _, r := range runs {
			out.Runs = append(out.Runs, toHistoryRun(r))
		}
	}

	if n := c.Int("tags"); n > 0 {
		tags, err := e.database.TopModifierTags(n)
		if err != nil {
			e.logger.Error("failed to count modifier tags", "error", err)
			return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
		}
		for _, t := range tags {
			out.TopTags = append(out.TopTags, HistoryTag{Tag: t.Tag, Count: t.Count})
		}
	}

	if err := e.emit(out, c.String("out")); err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	return nil
}

// QuickstartAction prints the quick-start guide.
func QuickstartAction(c *cli.Context) error {
	_, err := fmt.Fprint(c.App.Writer, help.QuickstartYAML)
	return err
}
