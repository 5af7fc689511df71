package simulation

import (
	"fmt"

	"myshop/internal/domain"
)

var discoveryImages = []string{
	"https://images.unsplash.com/photo-1504674900247-0877df9cc836?q=80&w=800",
	"https://images.unsplash.com/photo-1509042239860-f550ce710b93?q=80&w=800",
	"https://images.unsplash.com/photo-1504674900247-0877df9cc836?q=80&w=800",
	"https://images.unsplash.com/photo-1487412720507-e7ab37603c6f?q=80&w=800",
}

var discoveryCategories = []struct {
	id   string
	name string
}{
	{"logo", "Store Logo"},
	{"menu", "Menu"},
	{"products", "Product Images"},
	{"interior", "Interior"},
}

const variantsPerCategory = 2

// discoveredAssets builds the candidate groups of a new ingestion. Every
// category gets two variants and the first one starts selected.
func discoveredAssets(storeID string) []domain.AssetGroup {
	groups := make([]domain.AssetGroup, 0, len(discoveryCategories))
	for idx, category := range discoveryCategories {
		assets := make([]domain.IngestionAsset, 0, variantsPerCategory)
		for variant := 1; variant <= variantsPerCategory; variant++ {
			assets = append(assets, domain.IngestionAsset{
				ID:       fmt.Sprintf("%s_%d_%s", category.id, variant, storeID),
				Name:     fmt.Sprintf("%s %d", category.name, variant),
				URL:      discoveryImages[(idx+variant)%len(discoveryImages)],
				Selected: variant == 1,
			})
		}
		groups = append(groups, domain.AssetGroup{ID: category.id, Name: category.name, Assets: assets})
	}
	return groups
}
