package repository

import (
	"fmt"
	"time"

	"qmatch/database"
	"qmatch/models"
)

type ChangeRepository struct{}

func NewChangeRepository() *ChangeRepository {
	return &ChangeRepository{}
}

// RecordChange appends one price-change event. Events form an audit
// trail and are never edited afterwards.
func (r *ChangeRepository) RecordChange(event *models.PriceChangeEvent) (*models.PriceChangeEvent, error) {
	query := `
		INSERT INTO price_changes (catalog_no, old_price, new_price, reason, applied, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	stored := *event
	err := database.DB.QueryRow(query,
		event.CatalogNo, event.OldPrice, event.NewPrice, event.Reason, event.Applied, createdAt,
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record price change: %v", err)
	}

	return &stored, nil
}

// GetChangesSince returns the change events for a catalog within a
// trailing window, newest first.
func (r *ChangeRepository) GetChangesSince(catalogNo int64, since time.Time) ([]models.PriceChangeEvent, error) {
	query := `
		SELECT id, catalog_no, old_price, new_price, reason, applied, created_at
		FROM price_changes
		WHERE catalog_no = $1 AND created_at >= $2
		ORDER BY created_at DESC
	`

	rows, err := database.DB.Query(query, catalogNo, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get price changes: %v", err)
	}
	defer rows.Close()

	var events []models.PriceChangeEvent
	for rows.Next() {
		var event models.PriceChangeEvent
		err := rows.Scan(
			&event.ID, &event.CatalogNo, &event.OldPrice, &event.NewPrice,
			&event.Reason, &event.Applied, &event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price change: %v", err)
		}
		events = append(events, event)
	}

	return events, nil
}

// CountRecentDrops counts applied price reductions for a catalog in
// the trailing 24 hours. Pricing components use it to throttle
// repeated automatic cuts.
func (r *ChangeRepository) CountRecentDrops(catalogNo int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM price_changes
		WHERE catalog_no = $1
		AND applied = true
		AND old_price IS NOT NULL
		AND new_price < old_price
		AND created_at >= $2
	`

	var count int
	since := time.Now().Add(-24 * time.Hour)
	if err := database.DB.QueryRow(query, catalogNo, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count recent drops: %v", err)
	}

	return count, nil
}
