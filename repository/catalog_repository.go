package repository

import (
	"database/sql"
	"fmt"
	"time"

	"qmatch/database"
	"qmatch/models"
)

type CatalogRepository struct{}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// AddCatalog registers a catalog for tracking. Re-adding an existing
// catalog reactivates it.
func (r *CatalogRepository) AddCatalog(catalogNo int64, name string) (*models.TrackedCatalog, error) {
	query := `
		INSERT INTO tracked_catalogs (catalog_no, name, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (catalog_no) DO UPDATE SET name = $2, is_active = TRUE, updated_at = $3
		RETURNING id, catalog_no, name, is_active, last_scraped_at, created_at, updated_at
	`

	var catalog models.TrackedCatalog
	now := time.Now()
	err := database.DB.QueryRow(query, catalogNo, name, now).Scan(
		&catalog.ID, &catalog.CatalogNo, &catalog.Name,
		&catalog.IsActive, &catalog.LastScrapedAt, &catalog.CreatedAt, &catalog.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add catalog: %v", err)
	}

	return &catalog, nil
}

// GetTrackedCatalogs returns all active catalogs.
func (r *CatalogRepository) GetTrackedCatalogs() ([]models.TrackedCatalog, error) {
	query := `
		SELECT id, catalog_no, name, is_active, last_scraped_at, created_at, updated_at
		FROM tracked_catalogs
		WHERE is_active = true
		ORDER BY created_at DESC
	`

	rows, err := database.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get tracked catalogs: %v", err)
	}
	defer rows.Close()

	var catalogs []models.TrackedCatalog
	for rows.Next() {
		var catalog models.TrackedCatalog
		err := rows.Scan(
			&catalog.ID, &catalog.CatalogNo, &catalog.Name,
			&catalog.IsActive, &catalog.LastScrapedAt, &catalog.CreatedAt, &catalog.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog: %v", err)
		}
		catalogs = append(catalogs, catalog)
	}

	return catalogs, nil
}

// GetCatalogByNo returns one active catalog by its catalog number.
func (r *CatalogRepository) GetCatalogByNo(catalogNo int64) (*models.TrackedCatalog, error) {
	query := `
		SELECT id, catalog_no, name, is_active, last_scraped_at, created_at, updated_at
		FROM tracked_catalogs
		WHERE catalog_no = $1 AND is_active = true
	`

	var catalog models.TrackedCatalog
	err := database.DB.QueryRow(query, catalogNo).Scan(
		&catalog.ID, &catalog.CatalogNo, &catalog.Name,
		&catalog.IsActive, &catalog.LastScrapedAt, &catalog.CreatedAt, &catalog.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("catalog not found")
		}
		return nil, fmt.Errorf("failed to get catalog: %v", err)
	}

	return &catalog, nil
}

// DeactivateCatalog removes a catalog from tracking without deleting
// its history.
func (r *CatalogRepository) DeactivateCatalog(catalogNo int64) error {
	query := `UPDATE tracked_catalogs SET is_active = false, updated_at = $2 WHERE catalog_no = $1`
	if _, err := database.DB.Exec(query, catalogNo, time.Now()); err != nil {
		return fmt.Errorf("failed to deactivate catalog: %v", err)
	}
	return nil
}

// MarkScraped records the time of the latest extraction attempt.
func (r *CatalogRepository) MarkScraped(catalogNo int64) error {
	query := `UPDATE tracked_catalogs SET last_scraped_at = $2, updated_at = $2 WHERE catalog_no = $1`
	if _, err := database.DB.Exec(query, catalogNo, time.Now()); err != nil {
		return fmt.Errorf("failed to mark catalog scraped: %v", err)
	}
	return nil
}
