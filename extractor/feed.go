package extractor

import (
	"context"
	"encoding/json"
	"fmt"

	"qmatch/models"
)

// FeedFetcher retrieves the structured seller feed for a catalog.
// A nil or empty response means the feed had nothing to say; it is
// not an error.
type FeedFetcher interface {
	FetchCatalogSellers(ctx context.Context, catalogNo int64) ([]byte, error)
}

// Key synonyms used by the seller feed, in priority order.
var (
	feedNameKeys  = []string{"SellerName", "ShopName", "sellerName", "shopName", "sellerNick"}
	feedPriceKeys = []string{"Price", "SellPrice", "SellingPrice", "price", "sellPrice", "goodsPrice"}
	feedCodeKeys  = []string{"GoodsCode", "goodsCode", "ItemCode", "itemCode"}
)

// parseFeed decodes the seller feed into candidates. The feed is
// either a bare record list or a wrapper object carrying the list
// under Items or ResultObject. String-typed prices are tolerated.
func parseFeed(c *Classifier, raw []byte) ([]models.Candidate, error) {
	if len(raw) <= 5 {
		return nil, nil
	}

	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
	}

	items, ok := feedItems(decoded)
	if !ok {
		return nil, fmt.Errorf("%w: unrecognized feed shape", ErrMalformedFeed)
	}

	var candidates []models.Candidate
	for _, item := range items {
		record, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		price, ok := feedPrice(c, record)
		if !ok {
			continue
		}
		name, ok := c.CleanName(feedString(record, feedNameKeys))
		if !ok {
			continue
		}

		candidates = append(candidates, models.Candidate{
			Name:     name,
			Price:    price,
			ItemCode: feedString(record, feedCodeKeys),
		})
	}

	return candidates, nil
}

func feedItems(decoded interface{}) ([]interface{}, bool) {
	switch v := decoded.(type) {
	case []interface{}:
		return v, true
	case map[string]interface{}:
		for _, key := range []string{"Items", "ResultObject"} {
			if list, ok := v[key].([]interface{}); ok {
				return list, true
			}
		}
	}
	return nil, false
}

func feedString(record map[string]interface{}, keys []string) string {
	for _, key := range keys {
		if s, ok := record[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func feedPrice(c *Classifier, record map[string]interface{}) (int, bool) {
	for _, key := range feedPriceKeys {
		switch v := record[key].(type) {
		case float64:
			if c.InRange(int(v)) {
				return int(v), true
			}
		case string:
			if price, ok := c.ParseAmount(v); ok {
				return price, true
			}
		}
	}
	return 0, false
}
