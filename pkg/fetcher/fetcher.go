package fetcher

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/toddkasper/outage-query/pkg/model"
	"github.com/toddkasper/outage-query/pkg/storage"
	"github.com/toddkasper/outage-query/pkg/twitter"
)

// SearchClient is the slice of the twitter client the fetcher needs.
type SearchClient interface {
	Search(ctx context.Context, r twitter.SearchRequest) (*twitter.SearchResponse, error)
}

// Config contains the fetch tunables.
type Config struct {
	// Keyword is the search term, e.g. the watched hashtag.
	Keyword string
	// Window is how far back the first page queries.
	Window time.Duration
	// PageSize is the per-page result limit (API maximum is 100).
	PageSize int
}

// Report summarizes a single fetch run.
type Report struct {
	Pages   int
	Results int
	Stored  int
	Skipped int
}

// Fetcher pages through the recent search API and persists every mention it
// has not seen before. Runs are stateless: each run re-queries the same
// trailing window and relies on the upsert to deduplicate.
type Fetcher struct {
	client SearchClient
	store  storage.MentionStore
	cfg    Config

	now func() time.Time
}

// New creates a Fetcher on top of the given search client and mention store.
func New(client SearchClient, store storage.MentionStore, cfg Config) *Fetcher {
	return &Fetcher{
		client: client,
		store:  store,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Run fetches all mentions created within the lookback window and upserts
// them. A page with zero results ends the run normally. Any search or store
// error aborts the run; already applied upserts stay in place and the next
// scheduled run covers the same window again.
func (f *Fetcher) Run(ctx context.Context) (*Report, error) {
	startTime := f.now().Add(-f.cfg.Window)
	report := &Report{}

	nextToken := ""
	for {
		res, err := f.client.Search(ctx, twitter.SearchRequest{
			Query:      f.cfg.Keyword,
			MaxResults: f.cfg.PageSize,
			StartTime:  startTime,
			NextToken:  nextToken,
		})
		if err != nil {
			return report, err
		}
		report.Pages++

		if res.Meta.ResultCount == 0 {
			log.WithField("keyword", f.cfg.Keyword).Info("Search returned no results")
			return report, nil
		}

		for _, t := range res.Data {
			report.Results++

			createdAt, err := time.Parse(time.RFC3339, t.CreatedAt)
			if err != nil {
				// One bad timestamp must not sink the page.
				log.WithFields(log.Fields{
					"id":         t.ID,
					"created_at": t.CreatedAt,
				}).Warn("Skipping mention with malformed timestamp")
				report.Skipped++
				continue
			}

			if err := f.store.Upsert(&model.Mention{ID: t.ID, CreatedAt: createdAt}); err != nil {
				return report, err
			}
			report.Stored++
		}

		if res.Meta.NextToken == "" {
			break
		}
		nextToken = res.Meta.NextToken
	}

	log.WithFields(log.Fields{
		"keyword": f.cfg.Keyword,
		"pages":   report.Pages,
		"results": report.Results,
		"stored":  report.Stored,
		"skipped": report.Skipped,
	}).Info("Fetch run completed")

	return report, nil
}
