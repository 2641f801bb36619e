// Package aggregate fans one search request out to every registered job
// board, then merges the results into a single deduplicated list. A board
// failing, timing out or returning garbage only shrinks the merged list;
// it never fails the collection as a whole.
package aggregate

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"jobcrawler/internal/domain"
	"jobcrawler/internal/source"
)

// Report records how one board behaved during a collection. The scrape
// cycle logs these and the manual trigger endpoint surfaces them, so a
// silently dying board is visible without grepping logs.
type Report struct {
	Source domain.SourceName
	Count  int
	Err    error
}

// Aggregator runs all registered sources concurrently for one request.
type Aggregator struct {
	registry *source.Registry
	logger   *slog.Logger
	stagger  time.Duration
}

// New builds an aggregator over the given registry. stagger spaces out
// the start of each board's fetch so the outbound bursts of concurrent
// sources do not line up.
func New(registry *source.Registry, logger *slog.Logger, stagger time.Duration) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{registry: registry, logger: logger, stagger: stagger}
}

// Collect fetches req from every source concurrently and returns the
// merged postings plus a per-source report. The merged list is
// deduplicated by apply link (first source wins), shuffled so no single
// board dominates the top of the feed, and capped at req.MaxResults.
func (a *Aggregator) Collect(ctx context.Context, req source.Request) ([]domain.JobPosting, []Report) {
	sources := a.registry.All()
	results := make([][]domain.JobPosting, len(sources))
	reports := make([]Report, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := a.wait(ctx, time.Duration(i)*a.stagger); err != nil {
				reports[i] = Report{Source: src.Name(), Err: err}
				return nil
			}
			jobs, err := src.Fetch(ctx, req)
			reports[i] = Report{Source: src.Name(), Count: len(jobs), Err: err}
			if err != nil {
				a.logger.Warn("source fetch failed",
					"source", src.Name(), "query", req.Query, "location", req.Location, "error", err)
				return nil
			}
			results[i] = jobs
			return nil
		})
	}
	_ = g.Wait() // goroutines report errors through reports, never through the group

	merged := merge(results, req.MaxResults)
	return merged, reports
}

func (a *Aggregator) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func merge(results [][]domain.JobPosting, maxResults int) []domain.JobPosting {
	seen := make(map[string]struct{})
	var merged []domain.JobPosting
	for _, jobs := range results {
		for _, job := range jobs {
			if job.ApplyLink == "" {
				continue
			}
			if _, ok := seen[job.ApplyLink]; ok {
				continue
			}
			seen[job.ApplyLink] = struct{}{}
			merged = append(merged, job)
		}
	}

	rand.Shuffle(len(merged), func(i, j int) {
		merged[i], merged[j] = merged[j], merged[i]
	})

	if maxResults > 0 && len(merged) > maxResults {
		merged = merged[:maxResults]
	}
	return merged
}
