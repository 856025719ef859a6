package analyze

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/dtnitsch/veritas/internal/common"
	"github.com/dtnitsch/veritas/models"
	"github.com/dtnitsch/veritas/pkg/caching"
	"github.com/dtnitsch/veritas/pkg/fetcher"
	"github.com/dtnitsch/veritas/pkg/scoring"
	"github.com/dtnitsch/veritas/pkg/signals"
)

// pipeline fetches, extracts and scores URLs on a fixed pool of workers.
// Workers share the assembler and the engine; both are safe for concurrent
// use. Persistence happens after the pool drains.
type pipeline struct {
	logger    *slog.Logger
	fetcher   *fetcher.Fetcher
	cache     *caching.Cache // nil when caching is off
	assembler *signals.Assembler
	engine    *scoring.Engine
}

// run returns one Result per URL, in input order.
func (p *pipeline) run(ctx context.Context, cfg *models.BatchConfig) []Result {
	workers := max(1, min(cfg.WorkerCount, len(cfg.URLs)))
	p.logger.Info("Starting concurrent analysis", "url_count", len(cfg.URLs), "workers", workers, "cache", p.cache != nil)

	var wg sync.WaitGroup
	jobs := make(chan Job, len(cfg.URLs))
	results := make(chan Result, len(cfg.URLs))

	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go p.worker(ctx, w, &wg, jobs, results)
	}

	for i, rawURL := range cfg.URLs {
		jobs <- Job{Index: i, URL: rawURL}
	}
	close(jobs)

	wg.Wait()
	close(results)
	p.logger.Info("All analysis workers finished")

	all := make([]Result, len(cfg.URLs))
	for r := range results {
		all[r.Index] = r
	}
	return all
}

// worker is a goroutine that processes jobs from the jobs channel
// and sends results to the results channel.
func (p *pipeline) worker(ctx context.Context, id int, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		p.logger.Info("Worker started job", "worker_id", id, "url", job.URL)
		results <- p.process(ctx, id, job)
	}
}

func (p *pipeline) process(ctx context.Context, id int, job Job) Result {
	result := Result{Index: job.Index, URL: job.URL, Fetched: true}

	rawHTML, fromCache, err := p.load(ctx, job.URL)
	if err != nil {
		p.logger.Error("Error fetching HTML", "worker_id", id, "url", job.URL, "error", err)
		result.Error = err
		result.ErrorType = ErrorTypeNetwork
		var se *fetcher.StatusError
		if errors.As(err, &se) {
			result.ErrorType = ErrorTypeHTTP
			result.StatusCode = se.StatusCode
		}
		return result
	}
	result.FromCache = fromCache
	result.StatusCode = http.StatusOK

	analyzed := analyzePage(p.assembler, p.engine, rawHTML, job.URL)
	analyzed.Index = result.Index
	analyzed.Fetched = true
	analyzed.FromCache = result.FromCache
	analyzed.StatusCode = result.StatusCode
	if analyzed.Error != nil {
		p.logger.Error("Error analysing page", "worker_id", id, "url", job.URL, "error", analyzed.Error)
		return analyzed
	}
	p.logger.Info("Worker finished processing", "worker_id", id, "url", job.URL, "score", analyzed.Analysis.Score)
	return analyzed
}

// load returns the page body from the cache when fresh, otherwise from the
// network, refreshing the cache.
func (p *pipeline) load(ctx context.Context, url string) ([]byte, bool, error) {
	if p.cache != nil {
		if data, ok := p.cache.Get(url); ok {
			p.logger.Debug("Raw HTML found in cache", "url", url)
			return data, true, nil
		}
	}

	rawHTML, err := p.fetcher.GetHtmlBytes(ctx, url)
	if err != nil {
		return nil, false, err
	}
	if p.cache != nil {
		if err := p.cache.Set(url, rawHTML); err != nil {
			p.logger.Warn("Failed to cache raw HTML", "url", url, "error", err)
		}
	}
	return rawHTML, false, nil
}

// analyzePage runs the core over one page: assemble signals, then score.
func analyzePage(a *signals.Assembler, e *scoring.Engine, rawHTML []byte, pageURL string) Result {
	result := Result{URL: pageURL, ContentHash: common.ContentHash(rawHTML)}

	data, err := a.FromPage(string(rawHTML), pageURL)
	if err != nil {
		result.Error = err
		result.ErrorType = ErrorTypeParse
		return result
	}

	scored, err := e.Score(data)
	if err != nil {
		result.Error = err
		result.ErrorType = ErrorTypeScore
		return result
	}
	result.Analysis = &scored
	return result
}
