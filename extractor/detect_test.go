package extractor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"qmatch/models"
)

func snapshotWithLowest(catalogNo int64, price int) *models.Snapshot {
	return &models.Snapshot{
		CatalogNo: catalogNo,
		Offers: []models.SellerOffer{
			{Name: "ShopA", Price: price, Rank: 1},
			{Name: "ShopB", Price: price + 500, Rank: 2},
		},
		ScrapedAt: time.Now(),
	}
}

func TestDetectChangeDrop(t *testing.T) {
	prev := snapshotWithLowest(1001, 1200)
	next := snapshotWithLowest(1001, 1000)

	event := DetectChange(1001, prev, next)
	assert.NotNil(t, event)
	assert.Equal(t, int64(1001), event.CatalogNo)
	assert.NotNil(t, event.OldPrice)
	assert.Equal(t, 1200, *event.OldPrice)
	assert.Equal(t, 1000, event.NewPrice)
	assert.True(t, event.IsDrop())
	assert.False(t, event.Applied)
}

func TestDetectChangeRise(t *testing.T) {
	prev := snapshotWithLowest(1001, 1000)
	next := snapshotWithLowest(1001, 1300)

	event := DetectChange(1001, prev, next)
	assert.NotNil(t, event)
	assert.Equal(t, 1300, event.NewPrice)
	assert.False(t, event.IsDrop())
}

func TestDetectChangeNoMovement(t *testing.T) {
	prev := snapshotWithLowest(1001, 1200)
	next := snapshotWithLowest(1001, 1200)

	assert.Nil(t, DetectChange(1001, prev, next))
}

func TestDetectChangeFirstObservation(t *testing.T) {
	next := snapshotWithLowest(1001, 1200)

	event := DetectChange(1001, nil, next)
	assert.NotNil(t, event)
	assert.Nil(t, event.OldPrice)
	assert.Equal(t, 1200, event.NewPrice)
	assert.False(t, event.IsDrop())
}

func TestDetectChangeEmptyNextSnapshot(t *testing.T) {
	prev := snapshotWithLowest(1001, 1200)
	empty := &models.Snapshot{CatalogNo: 1001, ScrapedAt: time.Now()}

	assert.Nil(t, DetectChange(1001, prev, empty))
	assert.Nil(t, DetectChange(1001, prev, nil))
}

func TestDetectChangeEmptyPreviousTreatedAsFirst(t *testing.T) {
	prev := &models.Snapshot{CatalogNo: 1001, ScrapedAt: time.Now()}
	next := snapshotWithLowest(1001, 1200)

	event := DetectChange(1001, prev, next)
	assert.NotNil(t, event)
	assert.Nil(t, event.OldPrice)
}
