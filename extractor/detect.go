package extractor

import (
	"time"

	"qmatch/models"
)

// DetectChange compares the newest snapshot against the previous one
// for the same catalog and returns the lowest-price transition, or
// nil when nothing moved. A first observation (no previous snapshot)
// yields an event with a nil old price. Detected events carry
// Applied=false: they record what the market did, not a pricing
// decision.
func DetectChange(catalogNo int64, prev, next *models.Snapshot) *models.PriceChangeEvent {
	if next == nil || next.IsEmpty() {
		return nil
	}
	newPrice := next.LowestPrice()

	if prev == nil || prev.IsEmpty() {
		return &models.PriceChangeEvent{
			CatalogNo: catalogNo,
			OldPrice:  nil,
			NewPrice:  newPrice,
			Applied:   false,
			CreatedAt: time.Now(),
		}
	}

	oldPrice := prev.LowestPrice()
	if oldPrice == newPrice {
		return nil
	}

	return &models.PriceChangeEvent{
		CatalogNo: catalogNo,
		OldPrice:  &oldPrice,
		NewPrice:  newPrice,
		Applied:   false,
		CreatedAt: time.Now(),
	}
}
