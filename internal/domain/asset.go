package domain

import "time"

// Asset is a persisted, browsable media item that belongs to a store.
type Asset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Category  string    `json:"category"`
	StoreID   string    `json:"storeId"`
	CreatedAt time.Time `json:"-"`
}

// Store is a storefront known to the directory.
type Store struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Category string `json:"category"`
	ImageURL string `json:"imageUrl"`
}

// StyleReference is a preset look offered for poster generation.
type StyleReference struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PreviewURL  string `json:"previewUrl"`
	Description string `json:"description"`
}

// Preferences holds per-user UI settings.
type Preferences struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
}

// Upload is a pending direct upload slot handed to a client.
type Upload struct {
	AssetID   string    `json:"assetId"`
	UploadURL string    `json:"uploadUrl"`
	CreatedAt time.Time `json:"-"`
}

// DefaultAssetURL is served for assets created without an uploaded file.
const DefaultAssetURL = "https://images.unsplash.com/photo-1509042239860-f550ce710b93?q=80&w=900"
