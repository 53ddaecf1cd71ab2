package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	nats "github.com/nats-io/nats.go"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/toddkasper/outage-query/config"
	"github.com/toddkasper/outage-query/pkg/analyzer"
	"github.com/toddkasper/outage-query/pkg/api"
	"github.com/toddkasper/outage-query/pkg/fetcher"
	"github.com/toddkasper/outage-query/pkg/notify/natsio"
	"github.com/toddkasper/outage-query/pkg/storage/postgres"
	"github.com/toddkasper/outage-query/pkg/twitter"
)

type watcherServer struct {
	c      *config.Config
	quitCh chan bool
	doneCh chan bool

	db   *sqlx.DB
	nc   *nats.Conn
	cron *cron.Cron

	fetcher  *fetcher.Fetcher
	detector *analyzer.Detector
}

func init() {
	formatter := &log.TextFormatter{
		FullTimestamp: true,
	}
	log.SetFormatter(formatter)

	// Output to stdout instead of the default stderr
	log.SetOutput(os.Stdout)

	log.SetLevel(log.InfoLevel)
}

func newWatcherServer(c *config.Config) (*watcherServer, error) {
	s := &watcherServer{
		c:      c,
		quitCh: make(chan bool),
		doneCh: make(chan bool),
	}

	db, err := sqlx.Open("postgres", c.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	s.db = db

	nc, err := nats.Connect(c.NATSServerURL,
		nats.DrainTimeout(10*time.Second),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Error("nats error: ", err)
		}))
	if err != nil {
		return nil, err
	}
	s.nc = nc

	store := postgres.NewStore(db)
	client := twitter.NewClient(c.TwitterAPIURL, c.TwitterBearerToken, nil)

	s.fetcher = fetcher.New(client, store.Mentions(), fetcher.Config{
		Keyword:  c.WatchKeyword,
		Window:   time.Duration(c.FetchWindowHours) * time.Hour,
		PageSize: c.FetchPageSize,
	})

	s.detector = analyzer.New(store, natsio.NewNotifier(nc, c.AlertSubject), analyzer.Config{
		Keyword:   c.WatchKeyword,
		Window:    time.Duration(c.ScanWindowHours) * time.Hour,
		BinWidth:  time.Duration(c.BinWidthSeconds) * time.Second,
		Threshold: c.StdevThreshold,
		Cooldown:  time.Duration(c.CooldownHours) * time.Hour,
	})

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(c.FetchSchedule, s.runFetch); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc(c.AnalyzeSchedule, s.runAnalyze); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *watcherServer) runFetch() {
	if _, err := s.fetcher.Run(context.Background()); err != nil {
		// Upserts already applied stay valid; the next run covers the
		// same window again.
		log.Error("scheduled fetch run failed: ", err)
	}
}

func (s *watcherServer) runAnalyze() {
	if _, err := s.detector.Run(context.Background()); err != nil {
		log.Error("scheduled analyze run failed: ", err)
	}
}

func (s *watcherServer) Serve() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(logger())

	// Register API endpoints
	store := postgres.NewStore(s.db)
	apiHandler := api.NewHandler(s.nc, store, s.detector, s.c.AlertSubject)
	apiHandler.RegisterRoutes(e)

	s.cron.Start()
	log.WithFields(log.Fields{
		"fetch_schedule":   s.c.FetchSchedule,
		"analyze_schedule": s.c.AnalyzeSchedule,
	}).Info("Watch schedules started")

	go func() {
		log.WithFields(log.Fields{
			"host": s.c.BindHost,
			"port": s.c.BindPort,
		}).Info("Starting server")

		if err := e.Start(fmt.Sprintf("%s:%d", s.c.BindHost, s.c.BindPort)); err != nil {
			e.Logger.Info("Shutting down the server")
		}
	}()

	// Wait until receiving the quit signal
	<-s.quitCh
	log.Info("Shutdown signal received")

	cronCtx := s.cron.Stop()
	<-cronCtx.Done()

	// Create a 10 second timeout context
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown the echo web server
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Error(err)
	}

	// We've done!
	s.doneCh <- true
}

// Logger returns a middleware that logs HTTP requests.
func logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			var err error
			if err = next(c); err != nil {
				c.Error(err)
			}
			stop := time.Now()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = res.Header().Get(echo.HeaderXRequestID)
			}
			reqSizeStr := req.Header.Get(echo.HeaderContentLength)
			if reqSizeStr == "" {
				reqSizeStr = "0"
			}
			reqSize, err := strconv.ParseInt(reqSizeStr, 10, 0)
			if err != nil {
				reqSize = -1
			}
			errMsg := ""
			if err != nil {
				errMsg = err.Error()
			}

			log.WithFields(log.Fields{
				"timestamp":     stop.Format(time.RFC3339),
				"id":            id,
				"remote_ip":     c.RealIP(),
				"host":          req.Host,
				"method":        req.Method,
				"uri":           req.RequestURI,
				"protocol":      req.Proto,
				"user_agent":    req.UserAgent(),
				"status":        res.Status,
				"status_text":   http.StatusText(res.Status),
				"referer":       req.Referer(),
				"error":         errMsg,
				"bytes_in":      reqSize,
				"bytes_out":     res.Size,
				"latency":       stop.Sub(start).Nanoseconds(),
				"latency_human": stop.Sub(start).String(),
			}).Infof("%s %s %s %d %s", req.Method, req.RequestURI, req.Proto,
				res.Status, strconv.FormatInt(res.Size, 10))

			return err
		}
	}
}

func (s *watcherServer) Shutdown() {
	if s.nc != nil {
		s.nc.Drain()
	}

	// Send the quit signal to the server.Serve() routine
	s.quitCh <- true

	// Wait up to 10 seconds
	select {
	case <-s.doneCh:
		log.Info("Shutdown server successful")
	case <-time.After(10 * time.Second):
		log.Error("Shutdown server failed")
	}

	if s.db != nil {
		s.db.Close()
	}
}

func RunServeWatcher(c *config.Config) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		s, err := newWatcherServer(c)
		if err != nil {
			log.Error("failed to create new server instance: ", err)
			os.Exit(1)
		}

		go s.Serve()

		// Wait for interrupt signal to gracefully shutdown the server
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt)
		<-quit

		// Shutdown the server
		s.Shutdown()
	}
}
