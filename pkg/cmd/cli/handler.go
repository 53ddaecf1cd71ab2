package cli

import "github.com/toddkasper/outage-query/config"

type Handler struct {
	Migration *MigrateHandler
	Fetch     *FetchHandler
	Analyze   *AnalyzeHandler
}

func NewHandler(c *config.Config) *Handler {
	return &Handler{
		Migration: newMigrateHandler(c),
		Fetch:     newFetchHandler(c),
		Analyze:   newAnalyzeHandler(c),
	}
}
