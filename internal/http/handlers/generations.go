package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"myshop/internal/domain"
	"myshop/internal/simulation"
)

type jobStartResponse struct {
	JobID  string           `json:"jobId"`
	Status domain.JobStatus `json:"status"`
}

type jobResponse struct {
	ID        string           `json:"id"`
	JobID     string           `json:"jobId"`
	Status    domain.JobStatus `json:"status"`
	ResultURL *string          `json:"resultUrl"`
	Error     *string          `json:"error"`
}

var jobLabels = map[domain.JobKind]string{
	domain.JobKindPoster:    "Poster",
	domain.JobKindMenuBoard: "Menu board",
}

// StartJob returns a handler that queues a generation job of kind.
func (a *App) StartJob(kind domain.JobKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload simulation.JobPayload
		var err error
		switch kind {
		case domain.JobKindPoster:
			payload.Poster = &domain.PosterPayload{}
			err = decodeJobPayload(r, payload.Poster)
		case domain.JobKindMenuBoard:
			payload.MenuBoard = &domain.MenuBoardPayload{}
			err = decodeJobPayload(r, payload.MenuBoard)
		}
		if err != nil {
			a.error(w, http.StatusBadRequest, "invalid_payload", "Request body is not a valid generation request.")
			return
		}
		job, err := a.Sim.StartJob(r.Context(), kind, payload)
		if err != nil {
			a.jobError(w, r, kind, err)
			return
		}
		a.json(w, http.StatusOK, jobStartResponse{JobID: job.ID, Status: job.Status})
	}
}

// GetJob returns a handler reporting the state of a generation job of kind.
func (a *App) GetJob(kind domain.JobKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		job, err := a.Sim.GetJob(r.Context(), kind, chi.URLParam(r, "id"))
		if err != nil {
			a.jobError(w, r, kind, err)
			return
		}
		a.json(w, http.StatusOK, jobResponse{
			ID:        job.ID,
			JobID:     job.ID,
			Status:    job.Status,
			ResultURL: job.ResultURL,
			Error:     job.Error,
		})
	}
}

// SaveJob returns a handler that saves a finished generation job as an asset.
func (a *App) SaveJob(kind domain.JobKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assetID, err := a.Sim.SaveJob(r.Context(), kind, chi.URLParam(r, "id"))
		if err != nil {
			a.jobError(w, r, kind, err)
			return
		}
		a.json(w, http.StatusOK, map[string]string{"assetId": assetID})
	}
}

func (a *App) Styles(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"results": a.Directory.Styles()})
}

func (a *App) jobError(w http.ResponseWriter, r *http.Request, kind domain.JobKind, err error) {
	label := jobLabels[kind]
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "job_not_found", label+" job was not found.")
	case errors.Is(err, domain.ErrNotReady):
		a.error(w, http.StatusBadRequest, "job_not_ready", label+" job is not ready yet.")
	default:
		a.internal(w, r, err, "generation request failed")
	}
}

// decodeJobPayload decodes an optional JSON object body into dst.
func decodeJobPayload(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
