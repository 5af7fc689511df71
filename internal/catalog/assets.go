package catalog

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"myshop/internal/domain"
)

var seedCategories = []string{"logo", "menu", "products", "interior"}

// AssetStore is the in-memory asset library. Assets are listed in the order
// they were first created.
type AssetStore struct {
	mu     sync.RWMutex
	assets map[string]domain.Asset
	order  []string
}

// NewAssetStore returns an empty asset library.
func NewAssetStore() *AssetStore {
	return &AssetStore{assets: make(map[string]domain.Asset)}
}

// SeedAssets returns one asset per category for the first two demo stores.
func SeedAssets() []domain.Asset {
	title := cases.Title(language.English)
	var out []domain.Asset
	for _, store := range seedStores[:2] {
		for idx, category := range seedCategories {
			out = append(out, domain.Asset{
				ID:       fmt.Sprintf("%s_%s", category, store.ID),
				Name:     fmt.Sprintf("%s %s", store.Name, title.String(category)),
				URL:      fmt.Sprintf("https://images.unsplash.com/photo-1504674900247-0877df9cc836?q=80&w=%d", 800+idx*50),
				Category: category,
				StoreID:  store.ID,
			})
		}
	}
	return out
}

// NewSeededAssetStore returns a library pre-filled with SeedAssets.
func NewSeededAssetStore() *AssetStore {
	s := NewAssetStore()
	for _, asset := range SeedAssets() {
		s.put(asset)
	}
	return s
}

func (s *AssetStore) put(asset domain.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[asset.ID]; !ok {
		s.order = append(s.order, asset.ID)
	}
	s.assets[asset.ID] = asset
}

// Create stores asset, replacing any asset with the same id.
func (s *AssetStore) Create(_ context.Context, asset *domain.Asset) error {
	if asset == nil || asset.ID == "" {
		return fmt.Errorf("create asset: %w", domain.ErrInvalidPayload)
	}
	s.put(*asset)
	return nil
}

// GetByID returns the asset with the given id.
func (s *AssetStore) GetByID(_ context.Context, id string) (*domain.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	asset, ok := s.assets[id]
	if !ok {
		return nil, fmt.Errorf("asset %q: %w", id, domain.ErrNotFound)
	}
	return &asset, nil
}

// List filters by storeID and category; empty filters and the category "all"
// match everything.
func (s *AssetStore) List(_ context.Context, storeID, category string) ([]domain.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Asset{}
	for _, id := range s.order {
		asset := s.assets[id]
		if storeID != "" && asset.StoreID != storeID {
			continue
		}
		if category != "" && category != "all" && asset.Category != category {
			continue
		}
		out = append(out, asset)
	}
	return out, nil
}

// Update overwrites an existing asset.
func (s *AssetStore) Update(_ context.Context, asset *domain.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[asset.ID]; !ok {
		return fmt.Errorf("asset %q: %w", asset.ID, domain.ErrNotFound)
	}
	s.assets[asset.ID] = *asset
	return nil
}

// Delete removes the asset with the given id.
func (s *AssetStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[id]; !ok {
		return fmt.Errorf("asset %q: %w", id, domain.ErrNotFound)
	}
	delete(s.assets, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

var _ domain.AssetRepository = (*AssetStore)(nil)
