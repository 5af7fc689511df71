package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"myshop/internal/domain"
	"myshop/internal/middleware"
)

type ingestionResponse struct {
	ID                        string                 `json:"id"`
	StoreID                   string                 `json:"storeId"`
	Status                    domain.IngestionStatus `json:"status"`
	Progress                  int                    `json:"progress"`
	Steps                     []domain.Step          `json:"steps"`
	EstimatedSecondsRemaining int                    `json:"estimatedSecondsRemaining"`
}

func (a *App) GetIngestion(w http.ResponseWriter, r *http.Request) {
	rec, err := a.Sim.GetIngestion(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.ingestionError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, ingestionResponse{
		ID:                        rec.ID,
		StoreID:                   rec.StoreID,
		Status:                    rec.Status,
		Progress:                  rec.Progress,
		Steps:                     localizeSteps(rec.Steps, middleware.LocaleFromContext(r.Context())),
		EstimatedSecondsRemaining: rec.EstimatedSecondsRemaining,
	})
}

func (a *App) CancelIngestion(w http.ResponseWriter, r *http.Request) {
	rec, err := a.Sim.CancelIngestion(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.ingestionError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": rec.ID, "status": rec.Status})
}

func (a *App) IngestionAssets(w http.ResponseWriter, r *http.Request) {
	storeID, groups, err := a.Sim.IngestionAssets(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.ingestionError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"storeId": storeID, "categories": groups})
}

// RecordSelection replaces the selected asset ids of an ingestion. The body
// must carry "selectedAssetIds" as an array of strings.
func (a *App) RecordSelection(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(r)
	var selected []string
	if err == nil {
		raw, ok := body["selectedAssetIds"]
		if !ok || json.Unmarshal(raw, &selected) != nil || selected == nil {
			err = domain.ErrInvalidPayload
		}
	}
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_payload", "selectedAssetIds must be a list of asset IDs.")
		return
	}
	ids, err := a.Sim.RecordSelection(r.Context(), chi.URLParam(r, "id"), selected)
	if err != nil {
		a.ingestionError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"selectedAssetIds": ids})
}

func (a *App) FinalizeIngestion(w http.ResponseWriter, r *http.Request) {
	result, err := a.Sim.FinalizeIngestion(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.ingestionError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, result)
}

func (a *App) ingestionError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "ingestion_not_found", "Ingestion was not found.")
		return
	}
	a.internal(w, r, err, "ingestion request failed")
}
