package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"

	"qmatch/logger"
	"qmatch/repository"
	"qmatch/services"
)

// PriceChecker periodically re-scrapes every tracked catalog. Catalogs
// are checked one at a time; the render slot is a shared single
// browser, so there is no per-catalog goroutine fan-out.
type PriceChecker struct {
	cron        *cron.Cron
	catalogRepo *repository.CatalogRepository
	service     *services.CatalogService
	spec        string
	log         *logger.Logger
}

func NewPriceChecker(catalogRepo *repository.CatalogRepository, service *services.CatalogService, spec string) *PriceChecker {
	return &PriceChecker{
		cron:        cron.New(cron.WithSeconds()),
		catalogRepo: catalogRepo,
		service:     service,
		spec:        spec,
		log:         logger.ForComponent("price_checker"),
	}
}

// Start schedules the periodic check.
func (pc *PriceChecker) Start() {
	_, err := pc.cron.AddFunc(pc.spec, pc.checkAllCatalogs)
	if err != nil {
		pc.log.Error().Err(err).Str("spec", pc.spec).Msg("failed to schedule price checker")
		return
	}

	pc.cron.Start()
	pc.log.Info().Str("spec", pc.spec).Msg("price checker scheduled")
}

// Stop stops the scheduler. A check already in flight finishes.
func (pc *PriceChecker) Stop() {
	if pc.cron != nil {
		pc.cron.Stop()
	}
}

func (pc *PriceChecker) checkAllCatalogs() {
	catalogs, err := pc.catalogRepo.GetTrackedCatalogs()
	if err != nil {
		pc.log.Error().Err(err).Msg("failed to get tracked catalogs")
		return
	}
	if len(catalogs) == 0 {
		pc.log.Debug().Msg("no catalogs to check")
		return
	}

	pc.log.Info().Int("count", len(catalogs)).Msg("starting scheduled catalog check")

	catalogNos := make([]int64, len(catalogs))
	for i, catalog := range catalogs {
		catalogNos[i] = catalog.CatalogNo
	}

	results := pc.service.CheckBatch(context.Background(), catalogNos)

	succeeded := 0
	for catalogNo, result := range results {
		if result.Success {
			succeeded++
			continue
		}
		pc.log.Warn().Int64("catalog_no", catalogNo).Str("error", result.Error).Msg("scheduled check failed")
	}
	pc.log.Info().Int("succeeded", succeeded).Int("total", len(results)).Msg("scheduled catalog check finished")
}
