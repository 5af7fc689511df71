package domain

import "context"

// StoreRepository resolves storefronts.
type StoreRepository interface {
	GetByID(ctx context.Context, id string) (*Store, error)
	Search(ctx context.Context, query string) ([]Store, error)
}

// AssetRepository handles persistence for promoted assets.
type AssetRepository interface {
	// Create stores the asset, replacing any asset with the same id.
	Create(ctx context.Context, asset *Asset) error
	GetByID(ctx context.Context, id string) (*Asset, error)
	List(ctx context.Context, storeID, category string) ([]Asset, error)
	Update(ctx context.Context, asset *Asset) error
	Delete(ctx context.Context, id string) error
}

// UserStoreLinker maintains which stores each user can see.
type UserStoreLinker interface {
	LinkStore(ctx context.Context, userID, storeID string) error
	UserIDs(ctx context.Context) ([]string, error)
}
