package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"myshop/internal/domain"
)

// CreateUpload reserves an asset id and a direct upload URL.
func (a *App) CreateUpload(w http.ResponseWriter, r *http.Request) {
	upload := a.Directory.CreateUpload(r.Context())
	a.json(w, http.StatusOK, upload)
}

func (a *App) ListAssets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	assets, err := a.Assets.List(r.Context(), q.Get("storeId"), q.Get("category"))
	if err != nil {
		a.internal(w, r, err, "list assets failed")
		return
	}
	if assets == nil {
		assets = []domain.Asset{}
	}
	a.json(w, http.StatusOK, map[string]any{"results": assets})
}

// CreateAsset registers an asset. When assetId names a pending upload and no
// url is given, the upload URL is used.
func (a *App) CreateAsset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := a.currentUserID(r)
	body, err := decodeObject(r)
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_payload", "Request body must be a JSON object.")
		return
	}
	name, _ := stringField(body, "name")
	if name == "" {
		name = "Uploaded Asset"
	}
	category, _ := stringField(body, "category")
	if category == "" {
		a.error(w, http.StatusBadRequest, "missing_category", "category is required.")
		return
	}
	storeID, _ := stringField(body, "storeId")
	if storeID == "" {
		storeID = a.Directory.DefaultStoreID(ctx, userID)
	}
	if storeID == "" {
		a.error(w, http.StatusBadRequest, "missing_store", "A storeId is required.")
		return
	}
	if _, err := a.Directory.GetByID(ctx, storeID); err != nil {
		a.storeError(w, r, err)
		return
	}

	assetID, _ := stringField(body, "assetId")
	url, _ := stringField(body, "url")
	if assetID != "" {
		if upload, ok := a.Directory.TakeUpload(ctx, assetID); ok && url == "" {
			url = upload.UploadURL
		}
	} else {
		assetID = domain.NewID("asset")
	}
	if url == "" {
		url = domain.DefaultAssetURL
	}
	if err := a.Directory.LinkStore(ctx, userID, storeID); err != nil {
		a.internal(w, r, err, "link store failed")
		return
	}

	asset := &domain.Asset{
		ID:        assetID,
		Name:      name,
		URL:       url,
		Category:  category,
		StoreID:   storeID,
		CreatedAt: a.now(),
	}
	if err := a.Assets.Create(ctx, asset); err != nil {
		a.internal(w, r, err, "create asset failed")
		return
	}
	a.json(w, http.StatusCreated, asset)
}

func (a *App) GetAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := a.Assets.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.assetError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, asset)
}

// PatchAsset updates the name and, when non-empty, the category of an asset.
func (a *App) PatchAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := a.Assets.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.assetError(w, r, err)
		return
	}
	body, err := decodeObject(r)
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_payload", "Request body must be a JSON object.")
		return
	}
	if raw, ok := body["name"]; ok {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			a.error(w, http.StatusBadRequest, "invalid_payload", "name must be a string.")
			return
		}
		asset.Name = name
	}
	if category, ok := stringField(body, "category"); ok && category != "" {
		asset.Category = category
	}
	if err := a.Assets.Update(r.Context(), asset); err != nil {
		a.assetError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, asset)
}

func (a *App) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := a.Assets.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.assetError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DownloadAsset redirects to the asset's URL.
func (a *App) DownloadAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := a.Assets.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.assetError(w, r, err)
		return
	}
	w.Header().Set("Location", asset.URL)
	w.WriteHeader(http.StatusFound)
}

func (a *App) assetError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "asset_not_found", "Asset was not found.")
		return
	}
	a.internal(w, r, err, "asset request failed")
}
