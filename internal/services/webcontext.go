package services

import (
	"context"
	"strings"

	"github.com/miyannishar/eco-logic-backend/internal/platform/httpx"
	"github.com/miyannishar/eco-logic-backend/internal/platform/logger"
	"github.com/miyannishar/eco-logic-backend/internal/platform/tavily"
)

// WebContextGatherer runs a batch of search queries and concatenates the
// returned snippets into one context blob for the analysis prompts.
type WebContextGatherer interface {
	Gather(ctx context.Context, queries []string) string
}

type webContextGatherer struct {
	log    *logger.Logger
	search tavily.Client
}

func NewWebContextGatherer(log *logger.Logger, search tavily.Client) WebContextGatherer {
	return &webContextGatherer{
		log:    log.With("service", "WebContextGatherer"),
		search: search,
	}
}

// Gather searches one query at a time, in order. A failed or empty query is
// skipped, not fatal; when every query comes back empty the result is the
// empty string and the caller proceeds with no web context.
func (g *webContextGatherer) Gather(ctx context.Context, queries []string) string {
	var snippets []string
	for _, query := range queries {
		results, err := g.search.Search(ctx, query)
		if err != nil {
			// A client status means the request itself is wrong (bad key,
			// malformed query) and the remaining queries will fail the same
			// way; still skip rather than abort, the analyses can run dry.
			if httpx.IsClientHTTPStatus(httpx.StatusFromError(err)) {
				g.log.Error("Web search rejected query", "query", query, "error", err)
			} else {
				g.log.Warn("Web search failed, skipping query", "query", query, "error", err)
			}
			continue
		}
		if len(results) == 0 {
			g.log.Debug("Web search returned no results", "query", query)
			continue
		}
		snippets = append(snippets, results...)
	}
	return strings.Join(snippets, "\n\n")
}
