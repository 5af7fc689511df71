package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"myshop/internal/domain"
)

func (a *App) SearchStores(w http.ResponseWriter, r *http.Request) {
	results, err := a.Directory.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		a.internal(w, r, err, "search stores failed")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"results": results})
}

// ListStores returns the stores linked to the current user.
func (a *App) ListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := a.Directory.UserStores(r.Context(), a.currentUserID(r))
	if err != nil {
		a.internal(w, r, err, "list user stores failed")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"results": stores})
}

// UnlinkStore removes a store from the current user's list.
func (a *App) UnlinkStore(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "id")
	if _, err := a.Directory.GetByID(r.Context(), storeID); err != nil {
		a.storeError(w, r, err)
		return
	}
	if err := a.Directory.UnlinkStore(r.Context(), a.currentUserID(r), storeID); err != nil {
		a.internal(w, r, err, "unlink store failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartIngestion links the store to the current user and begins ingesting it.
func (a *App) StartIngestion(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "id")
	if _, err := a.Directory.GetByID(r.Context(), storeID); err != nil {
		a.storeError(w, r, err)
		return
	}
	if err := a.Directory.LinkStore(r.Context(), a.currentUserID(r), storeID); err != nil {
		a.internal(w, r, err, "link store failed")
		return
	}
	rec, err := a.Sim.StartIngestion(r.Context(), storeID)
	if err != nil {
		a.storeError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"ingestionId": rec.ID, "status": rec.Status})
}

func (a *App) storeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrStoreNotFound) {
		a.error(w, http.StatusNotFound, "store_not_found", "Store was not found.")
		return
	}
	a.internal(w, r, err, "store lookup failed")
}
