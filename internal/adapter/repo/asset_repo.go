package repo

import (
	"context"
	"fmt"
	"time"

	"myshop/internal/domain"
	"myshop/internal/infra"
	"myshop/internal/sqlinline"
)

// AssetRepositoryPG implements domain.AssetRepository on PostgreSQL.
type AssetRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewAssetRepository creates a new asset repository backed by PostgreSQL.
func NewAssetRepository(sql infra.SQLExecutor) *AssetRepositoryPG {
	return &AssetRepositoryPG{sql: sql}
}

// Migrate creates the library table when it does not exist yet.
func (r *AssetRepositoryPG) Migrate(ctx context.Context) error {
	if _, err := r.sql.Exec(ctx, sqlinline.QCreateLibraryAssets); err != nil {
		return fmt.Errorf("migrate library_assets: %w", err)
	}
	return nil
}

// Create inserts the asset or replaces the asset with the same id.
func (r *AssetRepositoryPG) Create(ctx context.Context, asset *domain.Asset) error {
	createdAt := asset.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.sql.Exec(ctx, sqlinline.QUpsertLibraryAsset,
		asset.ID,
		asset.Name,
		asset.URL,
		asset.Category,
		asset.StoreID,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("upsert asset %s: %w", asset.ID, err)
	}
	return nil
}

// Seed inserts assets that are not stored yet. Existing rows are left as they are.
func (r *AssetRepositoryPG) Seed(ctx context.Context, assets []domain.Asset) error {
	now := time.Now().UTC()
	for _, asset := range assets {
		if _, err := r.sql.Exec(ctx, sqlinline.QSeedLibraryAsset,
			asset.ID, asset.Name, asset.URL, asset.Category, asset.StoreID, now,
		); err != nil {
			return fmt.Errorf("seed asset %s: %w", asset.ID, err)
		}
	}
	return nil
}

// GetByID fetches an asset by its identifier.
func (r *AssetRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectLibraryAsset, id)
	var asset domain.Asset
	if err := row.Scan(&asset.ID, &asset.Name, &asset.URL, &asset.Category, &asset.StoreID, &asset.CreatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, fmt.Errorf("asset %q: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &asset, nil
}

// List returns assets filtered by store and category.
func (r *AssetRepositoryPG) List(ctx context.Context, storeID, category string) ([]domain.Asset, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListLibraryAssets, storeID, category)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()
	out := []domain.Asset{}
	for rows.Next() {
		var asset domain.Asset
		if err := rows.Scan(&asset.ID, &asset.Name, &asset.URL, &asset.Category, &asset.StoreID, &asset.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		out = append(out, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return out, nil
}

// Update overwrites the mutable fields of an existing asset.
func (r *AssetRepositoryPG) Update(ctx context.Context, asset *domain.Asset) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QUpdateLibraryAsset, asset.ID, asset.Name, asset.URL, asset.Category, asset.StoreID)
	if err != nil {
		return fmt.Errorf("update asset %s: %w", asset.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("asset %q: %w", asset.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes an asset.
func (r *AssetRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteLibraryAsset, id)
	if err != nil {
		return fmt.Errorf("delete asset %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("asset %q: %w", id, domain.ErrNotFound)
	}
	return nil
}

var _ domain.AssetRepository = (*AssetRepositoryPG)(nil)
