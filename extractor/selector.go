package extractor

import (
	"context"
	"time"

	"qmatch/logger"
	"qmatch/models"
)

// Strategy is one self-contained extraction algorithm. Run returns
// the raw candidates it recovered; an empty list is a normal outcome.
// Errors are contained by the selector and treated as empty results,
// so a failing strategy never blocks the ones after it.
type Strategy struct {
	Name string
	Run  func() ([]models.Candidate, error)
}

// Engine turns rendered page content into a ranked seller snapshot by
// trying extraction strategies in a fixed priority order.
type Engine struct {
	classifier *Classifier
	feed       FeedFetcher
	log        *logger.Logger
}

// NewEngine builds an extraction engine. feed may be nil, in which
// case the structured-feed strategy always yields nothing.
func NewEngine(classifier *Classifier, feed FeedFetcher) *Engine {
	return &Engine{
		classifier: classifier,
		feed:       feed,
		log:        logger.ForComponent("extractor"),
	}
}

// Classifier exposes the engine's token classifier.
func (e *Engine) Classifier() *Classifier {
	return e.classifier
}

// Strategies returns the runners for one catalog in priority order:
// text-section scan (official section merged in), structural DOM
// scan, embedded-script scan, structured feed, and the whole-body
// line scan as final fallback.
func (e *Engine) Strategies(ctx context.Context, catalogNo int64, content *PageContent) []Strategy {
	return []Strategy{
		{Name: "text-section", Run: func() ([]models.Candidate, error) {
			return textSectionCandidates(e.classifier, content), nil
		}},
		{Name: "dom-elements", Run: func() ([]models.Candidate, error) {
			return domCandidates(e.classifier, content)
		}},
		{Name: "embedded-script", Run: func() ([]models.Candidate, error) {
			return scriptCandidates(e.classifier, content)
		}},
		{Name: "seller-feed", Run: func() ([]models.Candidate, error) {
			return e.feedCandidates(ctx, catalogNo)
		}},
		{Name: "whole-body", Run: func() ([]models.Candidate, error) {
			return wholeBodyCandidates(e.classifier, content), nil
		}},
	}
}

// SelectCandidates runs strategies in order and returns the first
// non-empty candidate list along with the winning strategy name.
// Later strategies are not attempted once one succeeds.
func SelectCandidates(strategies []Strategy, log *logger.Logger) ([]models.Candidate, string) {
	for _, strategy := range strategies {
		candidates, err := strategy.Run()
		if err != nil {
			if log != nil {
				log.Warn().
					Str("strategy", strategy.Name).
					Err(err).
					Msg("strategy failed, trying next")
			}
			continue
		}
		if len(candidates) > 0 {
			return candidates, strategy.Name
		}
	}
	return nil, ""
}

// Extract runs the full pipeline for one catalog's rendered content:
// strategy selection, then merge/dedup/rank. When every strategy
// comes back empty the returned snapshot is empty and the error is
// ErrNoSellersFound, which callers treat as a normal outcome.
func (e *Engine) Extract(ctx context.Context, catalogNo int64, content *PageContent) (*models.Snapshot, error) {
	candidates, winner := SelectCandidates(e.Strategies(ctx, catalogNo, content), e.log)

	snapshot := &models.Snapshot{
		CatalogNo: catalogNo,
		Offers:    Merge(candidates),
		ScrapedAt: time.Now(),
	}

	if snapshot.IsEmpty() {
		return snapshot, ErrNoSellersFound
	}

	e.log.Debug().
		Int64("catalog_no", catalogNo).
		Str("strategy", winner).
		Int("sellers", len(snapshot.Offers)).
		Msg("extraction succeeded")
	return snapshot, nil
}

func (e *Engine) feedCandidates(ctx context.Context, catalogNo int64) ([]models.Candidate, error) {
	if e.feed == nil {
		return nil, nil
	}
	raw, err := e.feed.FetchCatalogSellers(ctx, catalogNo)
	if err != nil {
		return nil, err
	}
	return parseFeed(e.classifier, raw)
}
