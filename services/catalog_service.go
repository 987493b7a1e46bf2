package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"qmatch/extractor"
	"qmatch/logger"
	"qmatch/models"
	"qmatch/repository"
	"qmatch/scraper"
	"qmatch/services/cache"
	"qmatch/services/publisher"
)

// CatalogService owns the check flow for one catalog: cooldown guard,
// scrape, snapshot persistence, change detection and event publishing.
// Both the HTTP handlers and the scheduler go through it.
type CatalogService struct {
	scraper     *scraper.CatalogScraper
	catalogRepo *repository.CatalogRepository
	snapRepo    *repository.SnapshotRepository
	changeRepo  *repository.ChangeRepository
	cache       cache.CacheService
	publisher   publisher.Publisher
	cooldown    time.Duration
	batchPause  time.Duration
	log         *logger.Logger
}

// NewCatalogService wires the check flow.
func NewCatalogService(
	catalogScraper *scraper.CatalogScraper,
	catalogRepo *repository.CatalogRepository,
	snapRepo *repository.SnapshotRepository,
	changeRepo *repository.ChangeRepository,
	cacheSvc cache.CacheService,
	pub publisher.Publisher,
	cooldown, batchPause time.Duration,
) *CatalogService {
	return &CatalogService{
		scraper:     catalogScraper,
		catalogRepo: catalogRepo,
		snapRepo:    snapRepo,
		changeRepo:  changeRepo,
		cache:       cacheSvc,
		publisher:   pub,
		cooldown:    cooldown,
		batchPause:  batchPause,
		log:         logger.ForComponent("catalog_service"),
	}
}

// CheckCatalog extracts the current seller snapshot for one catalog.
// A catalog inside its cooldown window is served from the stored
// latest snapshot instead of being re-rendered. The returned error is
// nil for the normal zero-seller outcome; only resource failures
// surface as errors.
func (s *CatalogService) CheckCatalog(ctx context.Context, catalogNo int64) (*models.Snapshot, bool, error) {
	if snapshot := s.fromCooldown(catalogNo); snapshot != nil {
		return snapshot, true, nil
	}

	snapshot, err := s.scraper.ScrapeCatalog(ctx, catalogNo)
	if mErr := s.catalogRepo.MarkScraped(catalogNo); mErr != nil {
		s.log.Warn().Int64("catalog_no", catalogNo).Err(mErr).Msg("failed to mark catalog scraped")
	}

	if err != nil {
		if errors.Is(err, extractor.ErrNoSellersFound) {
			return snapshot, false, nil
		}
		return snapshot, false, err
	}

	previous, pErr := s.snapRepo.GetLatestSnapshot(catalogNo)
	if pErr != nil {
		s.log.Warn().Int64("catalog_no", catalogNo).Err(pErr).Msg("failed to load previous snapshot")
	}

	if sErr := s.snapRepo.SaveSnapshot(snapshot); sErr != nil {
		return snapshot, false, sErr
	}

	if event := extractor.DetectChange(catalogNo, previous, snapshot); event != nil {
		event.Reason = "observed lowest-price transition"
		s.recordAndPublish(event)
	}

	s.setCooldown(catalogNo)
	return snapshot, false, nil
}

// CheckBatch processes several catalogs sequentially with a fixed
// pause between fetches. One catalog's failure never aborts the rest.
func (s *CatalogService) CheckBatch(ctx context.Context, catalogNos []int64) map[int64]models.ScrapeResult {
	results := make(map[int64]models.ScrapeResult, len(catalogNos))

	for i, catalogNo := range catalogNos {
		if i > 0 {
			select {
			case <-ctx.Done():
				results[catalogNo] = models.ScrapeResult{Success: false, Error: ctx.Err().Error()}
				continue
			case <-time.After(s.batchPause):
			}
		}

		snapshot, cached, err := s.CheckCatalog(ctx, catalogNo)
		if err != nil {
			results[catalogNo] = models.ScrapeResult{
				Success: false,
				Sellers: []models.SellerOffer{},
				Error:   err.Error(),
			}
			continue
		}
		results[catalogNo] = models.ScrapeResult{
			Success: true,
			Sellers: snapshot.Offers,
			Count:   len(snapshot.Offers),
			Cached:  cached,
		}
	}

	return results
}

// RecordExternalChange records a price change asserted by a pricing
// component outside the extraction pipeline, publishing applied
// events downstream.
func (s *CatalogService) RecordExternalChange(req *models.RecordChangeRequest) (*models.PriceChangeEvent, error) {
	event := &models.PriceChangeEvent{
		CatalogNo: req.CatalogNo,
		OldPrice:  req.OldPrice,
		NewPrice:  req.NewPrice,
		Reason:    req.Reason,
		Applied:   req.Applied,
	}

	stored, err := s.changeRepo.RecordChange(event)
	if err != nil {
		return nil, err
	}
	if stored.Applied {
		if pErr := s.publisher.PublishChange(stored); pErr != nil {
			s.log.Warn().Int64("catalog_no", stored.CatalogNo).Err(pErr).Msg("failed to publish price change")
		}
	}
	return stored, nil
}

func (s *CatalogService) recordAndPublish(event *models.PriceChangeEvent) {
	stored, err := s.changeRepo.RecordChange(event)
	if err != nil {
		s.log.Error().Int64("catalog_no", event.CatalogNo).Err(err).Msg("failed to record price change")
		return
	}
	if err := s.publisher.PublishChange(stored); err != nil {
		s.log.Warn().Int64("catalog_no", event.CatalogNo).Err(err).Msg("failed to publish price change")
	}
}

func (s *CatalogService) fromCooldown(catalogNo int64) *models.Snapshot {
	if s.cache == nil || s.cooldown <= 0 {
		return nil
	}
	if _, err := s.cache.Get(cooldownKey(catalogNo)); err != nil {
		return nil
	}
	snapshot, err := s.snapRepo.GetLatestSnapshot(catalogNo)
	if err != nil || snapshot == nil {
		return nil
	}
	s.log.Debug().Int64("catalog_no", catalogNo).Msg("serving snapshot from cooldown window")
	return snapshot
}

func (s *CatalogService) setCooldown(catalogNo int64) {
	if s.cache == nil || s.cooldown <= 0 {
		return
	}
	if err := s.cache.Set(cooldownKey(catalogNo), []byte("1"), s.cooldown); err != nil {
		s.log.Debug().Int64("catalog_no", catalogNo).Err(err).Msg("failed to set cooldown")
	}
}

func cooldownKey(catalogNo int64) string {
	return fmt.Sprintf("scrape_cooldown:%d", catalogNo)
}
