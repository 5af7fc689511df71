// Package catalog holds the in-memory store directory, user store links,
// style references and asset library backing the demo API.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"myshop/internal/domain"
)

const uploadBaseURL = "https://uploads.example.com/"

var seedStores = []domain.Store{
	{
		ID:       "s1",
		Name:     "The Morning Brew",
		Address:  "123 Main St",
		Category: "Cafe",
		ImageURL: "https://images.unsplash.com/photo-1509042239860-f550ce710b93?q=80&w=1200",
	},
	{
		ID:       "s2",
		Name:     "Golden Spoon Diner",
		Address:  "22 Oak Avenue",
		Category: "Diner",
		ImageURL: "https://images.unsplash.com/photo-1467003909585-2f8a72700288?q=80&w=1200",
	},
	{
		ID:       "s3",
		Name:     "Lotus Garden",
		Address:  "8 Park Lane",
		Category: "Restaurant",
		ImageURL: "https://images.unsplash.com/photo-1504674900247-0877df9cc836?q=80&w=1200",
	},
	{
		ID:       "s4",
		Name:     "Neon Noodles",
		Address:  "77 Sunset Blvd",
		Category: "Street Food",
		ImageURL: "https://images.unsplash.com/photo-1504674900247-0877df9cc836?q=80&w=1200",
	},
}

var seedStyles = []domain.StyleReference{
	{
		ID:          "style_classic",
		Name:        "Classic Bistro",
		PreviewURL:  "https://images.unsplash.com/photo-1521017432531-fbd92d768814?q=80&w=1200",
		Description: "Warm colors, serif type, friendly texture.",
	},
	{
		ID:          "style_modern",
		Name:        "Modern Minimal",
		PreviewURL:  "https://images.unsplash.com/photo-1487412720507-e7ab37603c6f?q=80&w=1200",
		Description: "Bold sans-serif, high contrast, clean layout.",
	},
	{
		ID:          "style_bold",
		Name:        "Bold Neon",
		PreviewURL:  "https://images.unsplash.com/photo-1504674900247-0877df9cc836?q=80&w=1200",
		Description: "Electric palette with punchy gradients.",
	},
	{
		ID:          "style_organic",
		Name:        "Organic Fresh",
		PreviewURL:  "https://images.unsplash.com/photo-1487412720507-e7ab37603c6f?q=80&w=1200",
		Description: "Handwritten accents and leafy greens.",
	},
}

// PreferencesUpdate carries optional preference changes; nil fields are kept.
type PreferencesUpdate struct {
	Theme         *string `json:"theme"`
	Notifications *bool   `json:"notifications"`
}

type userState struct {
	prefs  domain.Preferences
	stores []string
}

// Directory is the in-memory store directory and per-user state.
type Directory struct {
	mu      sync.RWMutex
	stores  []domain.Store
	styles  []domain.StyleReference
	users   map[string]*userState
	uploads map[string]domain.Upload
	newID   func(prefix string) string
}

// NewDirectory returns a Directory seeded with the demo stores and styles.
func NewDirectory() *Directory {
	return &Directory{
		stores:  append([]domain.Store(nil), seedStores...),
		styles:  append([]domain.StyleReference(nil), seedStyles...),
		users:   make(map[string]*userState),
		uploads: make(map[string]domain.Upload),
		newID:   domain.NewID,
	}
}

// GetByID returns the store with the given id.
func (d *Directory) GetByID(_ context.Context, id string) (*domain.Store, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, store := range d.stores {
		if store.ID == id {
			s := store
			return &s, nil
		}
	}
	return nil, fmt.Errorf("store %q: %w", id, domain.ErrStoreNotFound)
}

// Search matches query case-insensitively against name, category and address.
// An empty query returns every store.
func (d *Directory) Search(_ context.Context, query string) ([]domain.Store, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	normalized := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Store, 0, len(d.stores))
	for _, store := range d.stores {
		if normalized == "" ||
			strings.Contains(strings.ToLower(store.Name), normalized) ||
			strings.Contains(strings.ToLower(store.Category), normalized) ||
			strings.Contains(strings.ToLower(store.Address), normalized) {
			out = append(out, store)
		}
	}
	return out, nil
}

// Styles returns the poster style references.
func (d *Directory) Styles() []domain.StyleReference {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]domain.StyleReference(nil), d.styles...)
}

// EnsureUser creates default state for userID when it is first seen: light
// theme, notifications on and a link to the first store.
func (d *Directory) EnsureUser(_ context.Context, userID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ensureUserLocked(userID)
}

func (d *Directory) ensureUserLocked(userID string) *userState {
	st, ok := d.users[userID]
	if !ok {
		st = &userState{prefs: domain.Preferences{Theme: "light", Notifications: true}}
		if len(d.stores) > 0 {
			st.stores = []string{d.stores[0].ID}
		}
		d.users[userID] = st
	}
	return st
}

// LinkStore makes storeID visible to userID.
func (d *Directory) LinkStore(_ context.Context, userID, storeID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	st := d.ensureUserLocked(userID)
	for _, id := range st.stores {
		if id == storeID {
			return nil
		}
	}
	st.stores = append(st.stores, storeID)
	return nil
}

// UnlinkStore hides storeID from userID.
func (d *Directory) UnlinkStore(_ context.Context, userID, storeID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	st := d.ensureUserLocked(userID)
	kept := st.stores[:0]
	for _, id := range st.stores {
		if id != storeID {
			kept = append(kept, id)
		}
	}
	st.stores = kept
	return nil
}

// UserStores returns the stores linked to userID in directory order.
func (d *Directory) UserStores(_ context.Context, userID string) ([]domain.Store, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	st := d.ensureUserLocked(userID)
	linked := make(map[string]struct{}, len(st.stores))
	for _, id := range st.stores {
		linked[id] = struct{}{}
	}
	out := []domain.Store{}
	for _, store := range d.stores {
		if _, ok := linked[store.ID]; ok {
			out = append(out, store)
		}
	}
	return out, nil
}

// DefaultStoreID returns the first store linked to userID, or "" if none.
func (d *Directory) DefaultStoreID(_ context.Context, userID string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	st := d.ensureUserLocked(userID)
	if len(st.stores) == 0 {
		return ""
	}
	return st.stores[0]
}

// UserIDs lists every user the directory has seen.
func (d *Directory) UserIDs(_ context.Context) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ids := make([]string, 0, len(d.users))
	for id := range d.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Preferences returns the preferences of userID.
func (d *Directory) Preferences(_ context.Context, userID string) domain.Preferences {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ensureUserLocked(userID).prefs
}

// UpdatePreferences applies the non-nil fields of update.
func (d *Directory) UpdatePreferences(_ context.Context, userID string, update PreferencesUpdate) domain.Preferences {
	d.mu.Lock()
	defer d.mu.Unlock()
	st := d.ensureUserLocked(userID)
	if update.Theme != nil {
		st.prefs.Theme = *update.Theme
	}
	if update.Notifications != nil {
		st.prefs.Notifications = *update.Notifications
	}
	return st.prefs
}

// CreateUpload reserves an asset id and a direct upload URL.
func (d *Directory) CreateUpload(_ context.Context) domain.Upload {
	assetID := d.newID("asset")
	upload := domain.Upload{AssetID: assetID, UploadURL: uploadBaseURL + assetID, CreatedAt: time.Now()}
	d.mu.Lock()
	d.uploads[assetID] = upload
	d.mu.Unlock()
	return upload
}

// TakeUpload removes and returns the pending upload for assetID.
func (d *Directory) TakeUpload(_ context.Context, assetID string) (domain.Upload, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	upload, ok := d.uploads[assetID]
	if ok {
		delete(d.uploads, assetID)
	}
	return upload, ok
}

var (
	_ domain.StoreRepository = (*Directory)(nil)
	_ domain.UserStoreLinker = (*Directory)(nil)
)
