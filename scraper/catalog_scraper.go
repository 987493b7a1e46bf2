package scraper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"qmatch/config"
	"qmatch/extractor"
	"qmatch/logger"
	"qmatch/models"
)

// CatalogScraper runs the full extraction pipeline for one catalog:
// render, strategy selection, merge. The shared browser is a single
// resource, so extractions are serialized: the mutex is held for the
// whole of one catalog's run, navigation through merge.
type CatalogScraper struct {
	mu       sync.Mutex
	renderer *Renderer
	engine   *extractor.Engine
	cfg      *config.Config
	log      *logger.Logger
}

// NewCatalogScraper wires the pipeline and prepares the diagnostic
// directory.
func NewCatalogScraper(renderer *Renderer, engine *extractor.Engine, cfg *config.Config) (*CatalogScraper, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %v", err)
	}
	return &CatalogScraper{
		renderer: renderer,
		engine:   engine,
		cfg:      cfg,
		log:      logger.ForComponent("scraper"),
	}, nil
}

// ScrapeCatalog extracts the ranked seller snapshot for one catalog.
// Failures are contained: a render failure or an all-strategies-empty
// run returns an empty snapshot together with the sentinel error, and
// a diagnostic screenshot is captured. The error never crosses to
// other catalogs in a batch.
func (s *CatalogScraper) ScrapeCatalog(ctx context.Context, catalogNo int64) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	url := s.cfg.CatalogURL(catalogNo)
	log := s.log.WithField("catalog_no", catalogNo)
	log.Info().Str("url", url).Msg("scraping catalog")

	res, err := s.renderer.Render(url)
	if res != nil {
		defer res.Close()
	}
	if err != nil {
		s.capture(res, catalogNo, "error")
		log.Error().Err(err).Msg("render failed")
		return &models.Snapshot{CatalogNo: catalogNo}, err
	}

	snapshot, err := s.engine.Extract(ctx, catalogNo, res.Content)
	if errors.Is(err, extractor.ErrNoSellersFound) {
		s.capture(res, catalogNo, "debug")
		log.Warn().Msg("no sellers recovered")
		return snapshot, err
	}
	if err != nil {
		s.capture(res, catalogNo, "error")
		log.Error().Err(err).Msg("extraction failed")
		return &models.Snapshot{CatalogNo: catalogNo}, err
	}

	log.Info().Int("sellers", len(snapshot.Offers)).Msg("scrape complete")
	return snapshot, nil
}

// ScreenshotPath returns the stored diagnostic capture for a catalog,
// if one exists. Debug captures (empty results) take precedence over
// error captures.
func (s *CatalogScraper) ScreenshotPath(catalogNo int64) (string, bool) {
	for _, prefix := range []string{"debug", "error"} {
		path := filepath.Join(s.cfg.DataDir, fmt.Sprintf("%s_%d.png", prefix, catalogNo))
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

func (s *CatalogScraper) capture(res *RenderResult, catalogNo int64, tag string) {
	path := filepath.Join(s.cfg.DataDir, fmt.Sprintf("%s_%d.png", tag, catalogNo))
	if err := res.Screenshot(path); err != nil {
		s.log.Debug().Int64("catalog_no", catalogNo).Err(err).Msg("screenshot capture failed")
		return
	}
	s.log.Info().Int64("catalog_no", catalogNo).Str("path", path).Msg("diagnostic captured")
}
