package cli

import (
	"context"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/toddkasper/outage-query/config"
	"github.com/toddkasper/outage-query/pkg/fetcher"
	"github.com/toddkasper/outage-query/pkg/storage/postgres"
	"github.com/toddkasper/outage-query/pkg/twitter"
)

type FetchHandler struct {
	c *config.Config
}

func newFetchHandler(c *config.Config) *FetchHandler {
	return &FetchHandler{c: c}
}

// Run performs a single fetch pass against the search API and exits.
func (h *FetchHandler) Run(cmd *cobra.Command, args []string) {
	db, err := sqlx.Open("postgres", h.c.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database: ", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Error("failed to connect to database: ", err)
		os.Exit(1)
	}

	store := postgres.NewStore(db)
	client := twitter.NewClient(h.c.TwitterAPIURL, h.c.TwitterBearerToken, nil)

	f := fetcher.New(client, store.Mentions(), fetcher.Config{
		Keyword:  h.c.WatchKeyword,
		Window:   time.Duration(h.c.FetchWindowHours) * time.Hour,
		PageSize: h.c.FetchPageSize,
	})

	report, err := f.Run(context.Background())
	if err != nil {
		log.Error("fetch run failed: ", err)
		os.Exit(1)
	}

	log.WithFields(log.Fields{
		"pages":  report.Pages,
		"stored": report.Stored,
	}).Info("Fetch completed")
}
