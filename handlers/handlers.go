package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"qmatch/models"
	"qmatch/repository"
	"qmatch/scraper"
	"qmatch/services"
)

type Handlers struct {
	catalogRepo *repository.CatalogRepository
	snapRepo    *repository.SnapshotRepository
	changeRepo  *repository.ChangeRepository
	scraper     *scraper.CatalogScraper
	service     *services.CatalogService
}

func NewHandlers(
	catalogRepo *repository.CatalogRepository,
	snapRepo *repository.SnapshotRepository,
	changeRepo *repository.ChangeRepository,
	catalogScraper *scraper.CatalogScraper,
	service *services.CatalogService,
) *Handlers {
	return &Handlers{
		catalogRepo: catalogRepo,
		snapRepo:    snapRepo,
		changeRepo:  changeRepo,
		scraper:     catalogScraper,
		service:     service,
	}
}

// HealthCheck reports service liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service":   "qmatch",
		"status":    "healthy",
		"timestamp": time.Now(),
	})
}

// AddCatalog registers a catalog number for tracking. Re-adding a
// previously deactivated catalog reactivates it.
func (h *Handlers) AddCatalog(w http.ResponseWriter, r *http.Request) {
	var req models.AddCatalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CatalogNo <= 0 {
		writeError(w, http.StatusBadRequest, "catalogNo is required")
		return
	}

	catalog, err := h.catalogRepo.AddCatalog(req.CatalogNo, req.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to add catalog")
		return
	}
	writeJSON(w, http.StatusCreated, catalog)
}

// GetCatalogs lists the active tracked catalogs.
func (h *Handlers) GetCatalogs(w http.ResponseWriter, r *http.Request) {
	catalogs, err := h.catalogRepo.GetTrackedCatalogs()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get tracked catalogs")
		return
	}
	writeJSON(w, http.StatusOK, catalogs)
}

// DeleteCatalog deactivates a tracked catalog. Stored snapshots and
// change events are kept.
func (h *Handlers) DeleteCatalog(w http.ResponseWriter, r *http.Request) {
	catalogNo, ok := catalogNoFromPath(w, r)
	if !ok {
		return
	}

	if err := h.catalogRepo.DeactivateCatalog(catalogNo); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete catalog")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Catalog deactivated"})
}

// ScrapeCatalog runs the extraction pipeline for one catalog and
// returns the resulting ranked snapshot. Zero sellers is a successful
// outcome with an empty list.
func (h *Handlers) ScrapeCatalog(w http.ResponseWriter, r *http.Request) {
	catalogNo, ok := catalogNoFromPath(w, r)
	if !ok {
		return
	}

	snapshot, cached, err := h.service.CheckCatalog(r.Context(), catalogNo)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, models.ScrapeResult{
			Success: false,
			Sellers: []models.SellerOffer{},
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, models.ScrapeResult{
		Success: true,
		Sellers: snapshot.Offers,
		Count:   len(snapshot.Offers),
		Cached:  cached,
	})
}

// ScrapeBatch scrapes several catalogs sequentially, one render at a
// time, and returns the outcome per catalog number.
func (h *Handlers) ScrapeBatch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Catalogs) == 0 {
		writeError(w, http.StatusBadRequest, "catalogs list is required")
		return
	}

	results := h.service.CheckBatch(r.Context(), req.Catalogs)

	keyed := make(map[string]models.ScrapeResult, len(results))
	for catalogNo, result := range results {
		keyed[strconv.FormatInt(catalogNo, 10)] = result
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"results": keyed,
		"count":   len(keyed),
	})
}

// GetSnapshot returns the latest stored snapshot for a catalog.
func (h *Handlers) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	catalogNo, ok := catalogNoFromPath(w, r)
	if !ok {
		return
	}

	snapshot, err := h.snapRepo.GetLatestSnapshot(catalogNo)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get snapshot")
		return
	}
	if snapshot == nil {
		writeError(w, http.StatusNotFound, "No snapshot recorded for catalog")
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// GetChangeHistory returns the price-change events of the last N days
// (default 7).
func (h *Handlers) GetChangeHistory(w http.ResponseWriter, r *http.Request) {
	catalogNo, ok := catalogNoFromPath(w, r)
	if !ok {
		return
	}

	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid days parameter")
			return
		}
		days = parsed
	}

	since := time.Now().AddDate(0, 0, -days)
	changes, err := h.changeRepo.GetChangesSince(catalogNo, since)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get change history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"catalog_no": catalogNo,
		"days":       days,
		"changes":    changes,
		"count":      len(changes),
	})
}

// RecordPriceChange stores a caller-asserted price change event.
func (h *Handlers) RecordPriceChange(w http.ResponseWriter, r *http.Request) {
	var req models.RecordChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CatalogNo <= 0 {
		writeError(w, http.StatusBadRequest, "catalogNo is required")
		return
	}
	if req.NewPrice <= 0 {
		writeError(w, http.StatusBadRequest, "newPrice must be positive")
		return
	}

	event, err := h.service.RecordExternalChange(&req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record price change")
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// GetRecentDrops returns the count of applied price drops for a
// catalog in the last 24 hours.
func (h *Handlers) GetRecentDrops(w http.ResponseWriter, r *http.Request) {
	catalogNo, ok := catalogNoFromPath(w, r)
	if !ok {
		return
	}

	count, err := h.changeRepo.CountRecentDrops(catalogNo)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count recent drops")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"catalog_no": catalogNo,
		"drops_24h":  count,
	})
}

// GetDebugScreenshot serves the most recent diagnostic screenshot
// captured for a catalog.
func (h *Handlers) GetDebugScreenshot(w http.ResponseWriter, r *http.Request) {
	catalogNo, ok := catalogNoFromPath(w, r)
	if !ok {
		return
	}

	path, found := h.scraper.ScreenshotPath(catalogNo)
	if !found {
		writeError(w, http.StatusNotFound, "No screenshot captured for catalog")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	http.ServeFile(w, r, path)
}

func catalogNoFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	catalogNo, err := strconv.ParseInt(vars["catalogNo"], 10, 64)
	if err != nil || catalogNo <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid catalog number")
		return 0, false
	}
	return catalogNo, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
