package extractor

import (
	"sort"
	"strings"

	"qmatch/models"
)

// Merge folds raw candidates into the canonical offer list: group by
// normalized name (trim + case-fold), keep the lowest price per group
// with first-seen order breaking ties, sort ascending by price
// (stable), assign dense 1-based ranks. Merging the same candidate
// list twice yields identical output.
func Merge(candidates []models.Candidate) []models.SellerOffer {
	type group struct {
		name     string // display name from the first-seen candidate
		price    int
		itemCode string
		order    int
	}

	groups := make(map[string]*group)
	var keys []string

	for _, cand := range candidates {
		if cand.Price <= 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(cand.Name))
		if key == "" {
			continue
		}
		g, seen := groups[key]
		if !seen {
			groups[key] = &group{
				name:     strings.TrimSpace(cand.Name),
				price:    cand.Price,
				itemCode: cand.ItemCode,
				order:    len(keys),
			}
			keys = append(keys, key)
			continue
		}
		if cand.Price < g.price {
			g.price = cand.Price
		}
		if g.itemCode == "" {
			g.itemCode = cand.ItemCode
		}
	}

	offers := make([]models.SellerOffer, 0, len(keys))
	for _, key := range keys {
		g := groups[key]
		offers = append(offers, models.SellerOffer{
			Name:     g.name,
			Price:    g.price,
			ItemCode: g.itemCode,
		})
	}

	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].Price < offers[j].Price
	})
	for i := range offers {
		offers[i].Rank = i + 1
	}

	return offers
}
