package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"qmatch/models"
)

func TestParseFeedBareList(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	raw := []byte(`[
		{"SellerName":"ShopA","Price":1200,"GoodsCode":"ABC123"},
		{"SellerName":"ShopB","Price":2000}
	]`)

	candidates, err := parseFeed(c, raw)
	assert.NoError(t, err)
	assert.Equal(t, []models.Candidate{
		{Name: "ShopA", Price: 1200, ItemCode: "ABC123"},
		{Name: "ShopB", Price: 2000},
	}, candidates)
}

func TestParseFeedWrapperShapes(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	for _, raw := range []string{
		`{"Items":[{"ShopName":"ShopA","SellPrice":1500}]}`,
		`{"ResultObject":[{"sellerNick":"ShopA","goodsPrice":1500}]}`,
	} {
		candidates, err := parseFeed(c, []byte(raw))
		assert.NoError(t, err, "raw %s", raw)
		assert.Equal(t, []models.Candidate{{Name: "ShopA", Price: 1500}}, candidates, "raw %s", raw)
	}
}

func TestParseFeedStringPrices(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	raw := []byte(`[{"SellerName":"ShopA","Price":"1,500"}]`)

	candidates, err := parseFeed(c, raw)
	assert.NoError(t, err)
	assert.Equal(t, []models.Candidate{{Name: "ShopA", Price: 1500}}, candidates)
}

func TestParseFeedSkipsBadRecords(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	raw := []byte(`[
		{"SellerName":"ShopA","Price":30},
		{"SellerName":"","Price":1200},
		{"Price":1200},
		{"SellerName":"ShopB"},
		{"SellerName":"ShopC","Price":1800}
	]`)

	candidates, err := parseFeed(c, raw)
	assert.NoError(t, err)
	assert.Equal(t, []models.Candidate{{Name: "ShopC", Price: 1800}}, candidates)
}

func TestParseFeedMalformed(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	_, err := parseFeed(c, []byte(`{"unexpected`))
	assert.ErrorIs(t, err, ErrMalformedFeed)

	_, err = parseFeed(c, []byte(`{"NoList":true,"Status":200}`))
	assert.ErrorIs(t, err, ErrMalformedFeed)
}

func TestParseFeedEmptyBody(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	for _, raw := range [][]byte{nil, []byte(``), []byte(`[]`), []byte(`null`)} {
		candidates, err := parseFeed(c, raw)
		assert.NoError(t, err)
		assert.Nil(t, candidates)
	}
}
