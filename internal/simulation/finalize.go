package simulation

import (
	"strings"

	"myshop/internal/domain"
)

const (
	// DefaultLibraryID identifies the single asset library of the demo.
	DefaultLibraryID = "library_default"
	// DefaultCategory is used for promoted assets whose category cannot be derived.
	DefaultCategory = "products"
)

// FinalizeResult summarizes a finalized ingestion.
type FinalizeResult struct {
	AssetLibraryID string `json:"assetLibraryId"`
	TotalAssets    int    `json:"totalAssets"`
}

// ForceComplete marks rec completed with every step done, whatever its
// current status.
func ForceComplete(rec *domain.Ingestion) {
	complete(rec)
}

// SelectedAssets returns the grouped assets that are part of the selection,
// either through the id set or through their own Selected flag.
func SelectedAssets(rec *domain.Ingestion) []domain.IngestionAsset {
	var out []domain.IngestionAsset
	for _, group := range rec.AssetGroups {
		for _, asset := range group.Assets {
			_, inSet := rec.SelectedAssetIDs[asset.ID]
			if inSet || asset.Selected {
				out = append(out, asset)
			}
		}
	}
	return out
}

// CategoryFor derives the library category of an ingestion asset.
func CategoryFor(asset domain.IngestionAsset) string {
	if asset.Category != "" {
		return asset.Category
	}
	if prefix, _, ok := strings.Cut(asset.ID, "_"); ok && prefix != "" {
		return prefix
	}
	return DefaultCategory
}

// Promote converts the selected assets of rec into library assets owned by
// the ingested store.
func Promote(rec *domain.Ingestion) []domain.Asset {
	selected := SelectedAssets(rec)
	out := make([]domain.Asset, 0, len(selected))
	for _, asset := range selected {
		out = append(out, domain.Asset{
			ID:       asset.ID,
			Name:     asset.Name,
			URL:      asset.URL,
			Category: CategoryFor(asset),
			StoreID:  rec.StoreID,
		})
	}
	return out
}
