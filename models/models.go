package models

import (
	"time"
)

// Candidate is the raw, pre-merge output of one extraction strategy.
// It carries no rank and no uniqueness guarantee; noise entries are
// expected and filtered during merge.
type Candidate struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	ItemCode string `json:"itemCode"`
}

// SellerOffer is one deduplicated, ranked entry of a snapshot.
// Identity within a snapshot is the normalized seller name.
type SellerOffer struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	ItemCode string `json:"itemCode,omitempty"`
	Rank     int    `json:"rank"`
}

// Snapshot is the canonical ranked seller list for one catalog at one
// extraction time. It is immutable once produced and persisted
// append-only.
type Snapshot struct {
	CatalogNo int64         `json:"catalog_no"`
	Offers    []SellerOffer `json:"sellers"`
	ScrapedAt time.Time     `json:"scraped_at"`
}

// IsEmpty reports whether the snapshot recovered no sellers.
func (s *Snapshot) IsEmpty() bool {
	return len(s.Offers) == 0
}

// LowestPrice returns the rank-1 price, or 0 for an empty snapshot.
func (s *Snapshot) LowestPrice() int {
	if len(s.Offers) == 0 {
		return 0
	}
	return s.Offers[0].Price
}

// PriceChangeEvent records a transition (actual or proposed) of a
// catalog's effective lowest price. Events are never edited or
// deleted; Applied is set once at creation time.
type PriceChangeEvent struct {
	ID        int       `json:"id"`
	CatalogNo int64     `json:"catalog_no"`
	OldPrice  *int      `json:"old_price"`
	NewPrice  int       `json:"new_price"`
	Reason    string    `json:"reason,omitempty"`
	Applied   bool      `json:"applied"`
	CreatedAt time.Time `json:"created_at"`
}

// IsDrop reports whether the event lowered the price.
func (e *PriceChangeEvent) IsDrop() bool {
	return e.OldPrice != nil && e.NewPrice < *e.OldPrice
}

// TrackedCatalog is a catalog registered for periodic re-scraping.
type TrackedCatalog struct {
	ID            int        `json:"id" db:"id"`
	CatalogNo     int64      `json:"catalog_no" db:"catalog_no"`
	Name          string     `json:"name" db:"name"`
	IsActive      bool       `json:"is_active" db:"is_active"`
	LastScrapedAt *time.Time `json:"last_scraped_at" db:"last_scraped_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// AddCatalogRequest registers a catalog for tracking.
type AddCatalogRequest struct {
	CatalogNo int64  `json:"catalogNo"`
	Name      string `json:"name"`
}

// BatchScrapeRequest asks for a sequential scrape of several catalogs.
type BatchScrapeRequest struct {
	Catalogs []int64 `json:"catalogs"`
}

// RecordChangeRequest records a price change asserted by a caller,
// typically a pricing decision made outside the extraction pipeline.
type RecordChangeRequest struct {
	CatalogNo int64  `json:"catalogNo"`
	OldPrice  *int   `json:"oldPrice"`
	NewPrice  int    `json:"newPrice"`
	Reason    string `json:"reason"`
	Applied   bool   `json:"applied"`
}

// ScrapeResult is the per-catalog outcome of a scrape call.
type ScrapeResult struct {
	Success bool          `json:"success"`
	Sellers []SellerOffer `json:"sellers"`
	Count   int           `json:"count"`
	Cached  bool          `json:"cached,omitempty"`
	Error   string        `json:"error,omitempty"`
}
