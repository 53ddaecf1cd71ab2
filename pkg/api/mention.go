package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo"
	"github.com/pkg/errors"
	"github.com/toddkasper/outage-query/pkg/analyzer"
	"github.com/toddkasper/outage-query/pkg/api/resource"
	"github.com/toddkasper/outage-query/pkg/storage"
)

func (h *Handler) handleFetchMentions(c echo.Context) error {
	// Defaults to the last 24 hours when no range is given.
	max := time.Now()
	min := max.Add(-24 * time.Hour)

	var err error
	if min, err = parseEpochParam(c, "from", min); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if max, err = parseEpochParam(c, "to", max); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	m, err := h.store.Mentions().ScanRange(min, max)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, resource.NewMentionList(m))
}

func (h *Handler) handleGetStatus(c echo.Context) error {
	count, err := h.store.Mentions().Count()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	out := &resource.StatusResource{
		Keyword:     h.detector.Config().Keyword,
		StoredCount: count,
	}

	lastSent, err := h.store.Checkpoints().Read(analyzer.CheckpointLastAlert)
	if err != nil && err != storage.ErrNotFound {
		return c.JSON(http.StatusInternalServerError, err)
	}
	if err == nil {
		out.LastAlertSent = &lastSent
	}

	return c.JSON(http.StatusOK, out)
}

func (h *Handler) handleGetDistribution(c echo.Context) error {
	report, err := h.detector.Snapshot()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	cfg := h.detector.Config()
	return c.JSON(http.StatusOK, &resource.DistributionResource{
		Distribution: report.Distribution,
		Stdev:        report.Stdev,
		WindowHours:  cfg.Window.Hours(),
		Threshold:    cfg.Threshold,
	})
}

func parseEpochParam(c echo.Context, name string, fallback time.Time) (time.Time, error) {
	param := c.QueryParam(name)
	if param == "" {
		return fallback, nil
	}

	sec, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return time.Time{}, errors.Errorf("query parameter %s must be an epoch timestamp in seconds", name)
	}

	return time.Unix(sec, 0).UTC(), nil
}
