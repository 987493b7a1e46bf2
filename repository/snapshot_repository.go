package repository

import (
	"database/sql"
	"fmt"

	"qmatch/database"
	"qmatch/models"
)

type SnapshotRepository struct{}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{}
}

// SaveSnapshot appends a full snapshot in one transaction. Either
// every offer row lands or none do; a snapshot is never partially
// persisted.
func (r *SnapshotRepository) SaveSnapshot(snapshot *models.Snapshot) error {
	if snapshot.IsEmpty() {
		return nil
	}

	tx, err := database.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %v", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO seller_offers (catalog_no, seller_name, price, item_code, rank, scraped_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, offer := range snapshot.Offers {
		_, err := tx.Exec(query,
			snapshot.CatalogNo, offer.Name, offer.Price, offer.ItemCode, offer.Rank, snapshot.ScrapedAt)
		if err != nil {
			return fmt.Errorf("failed to save seller offer: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %v", err)
	}
	return nil
}

// GetLatestSnapshot returns the most recent snapshot for a catalog,
// or nil when the catalog has no history yet.
func (r *SnapshotRepository) GetLatestSnapshot(catalogNo int64) (*models.Snapshot, error) {
	query := `
		SELECT seller_name, price, item_code, rank, scraped_at
		FROM seller_offers
		WHERE catalog_no = $1
		AND scraped_at = (SELECT MAX(scraped_at) FROM seller_offers WHERE catalog_no = $1)
		ORDER BY rank ASC
	`

	rows, err := database.DB.Query(query, catalogNo)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshot: %v", err)
	}
	defer rows.Close()

	snapshot := &models.Snapshot{CatalogNo: catalogNo}
	for rows.Next() {
		var offer models.SellerOffer
		var itemCode sql.NullString
		err := rows.Scan(&offer.Name, &offer.Price, &itemCode, &offer.Rank, &snapshot.ScrapedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan seller offer: %v", err)
		}
		offer.ItemCode = itemCode.String
		snapshot.Offers = append(snapshot.Offers, offer)
	}

	if snapshot.IsEmpty() {
		return nil, nil
	}
	return snapshot, nil
}
