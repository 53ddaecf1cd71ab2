package cli

import (
	"context"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	nats "github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/toddkasper/outage-query/config"
	"github.com/toddkasper/outage-query/pkg/analyzer"
	"github.com/toddkasper/outage-query/pkg/notify/natsio"
	"github.com/toddkasper/outage-query/pkg/storage/postgres"
)

type AnalyzeHandler struct {
	c *config.Config
}

func newAnalyzeHandler(c *config.Config) *AnalyzeHandler {
	return &AnalyzeHandler{c: c}
}

// Run performs a single detection pass and exits.
func (h *AnalyzeHandler) Run(cmd *cobra.Command, args []string) {
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

	nc, err := nats.Connect(h.c.NATSServerURL, nats.DrainTimeout(10*time.Second))
	if err != nil {
		log.Error("failed to connect to NATS: ", err)
		os.Exit(1)
	}
	defer nc.Drain()

	store := postgres.NewStore(db)
	notifier := natsio.NewNotifier(nc, h.c.AlertSubject)

	d := analyzer.New(store, notifier, analyzer.Config{
		Keyword:   h.c.WatchKeyword,
		Window:    time.Duration(h.c.ScanWindowHours) * time.Hour,
		BinWidth:  time.Duration(h.c.BinWidthSeconds) * time.Second,
		Threshold: h.c.StdevThreshold,
		Cooldown:  time.Duration(h.c.CooldownHours) * time.Hour,
	})

	report, err := d.Run(context.Background())
	if err != nil {
		log.Error("analyze run failed: ", err)
		os.Exit(1)
	}

	log.WithFields(log.Fields{
		"outcome":      report.Outcome,
		"distribution": report.Distribution,
	}).Info("Analyze completed")
}
