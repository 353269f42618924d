// Package wiring builds the shared fetcher, cache and clients from a Config.
// Both binaries go through it so every client shares one rate limiter.
package wiring

import (
	"go.uber.org/zap"

	"mtgmcp/internal/adapters/archidekt"
	"mtgmcp/internal/adapters/edhrec"
	"mtgmcp/internal/adapters/filecache"
	"mtgmcp/internal/adapters/httpfetch"
	mcpadapter "mtgmcp/internal/adapters/mcp"
	"mtgmcp/internal/adapters/scryfall"
	"mtgmcp/internal/config"
)

// Services holds the wired clients
type Services struct {
	Cache     *filecache.Cache
	Fetcher   *httpfetch.Fetcher
	Scryfall  *scryfall.Client
	EDHREC    *edhrec.Client
	Archidekt *archidekt.Client
}

// New wires every client around a single fetcher
func New(cfg *config.Config, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}

	cache := filecache.New(cfg.CacheDir, cfg.SimilarTTL, logger)
	fetcher := httpfetch.NewFetcher(cfg.UserAgent,
		httpfetch.WithInterval(cfg.FetchInterval),
		httpfetch.WithTimeout(cfg.HTTPTimeout),
		httpfetch.WithLogger(logger.Named("http")),
	)

	cards := scryfall.NewClient(fetcher, cache.Cards,
		scryfall.WithBaseURL(cfg.ScryfallURL),
		scryfall.WithLogger(logger.Named("scryfall")),
	)

	return &Services{
		Cache:    cache,
		Fetcher:  fetcher,
		Scryfall: cards,
		EDHREC: edhrec.NewClient(fetcher, cache.Similar,
			edhrec.WithBaseURL(cfg.EDHRECURL),
			edhrec.WithLogger(logger.Named("edhrec")),
		),
		Archidekt: archidekt.NewClient(fetcher, cards,
			archidekt.WithBaseURL(cfg.ArchidektURL),
			archidekt.WithLogger(logger.Named("archidekt")),
		),
	}
}

// ToolDeps returns the collaborators for the MCP tools
func (s *Services) ToolDeps() mcpadapter.Deps {
	return mcpadapter.Deps{
		Cache:       s.Cache,
		Cards:       s.Scryfall,
		Recommender: s.EDHREC,
		Decks:       s.Archidekt,
	}
}
