package handlers

import (
	"encoding/json"
	"net/http"

	"myshop/internal/catalog"
	"myshop/internal/domain"
)

type profileResponse struct {
	ID          string             `json:"id"`
	Email       string             `json:"email"`
	Name        string             `json:"name"`
	Preferences domain.Preferences `json:"preferences"`
	Stores      []domain.Store     `json:"stores"`
}

func (a *App) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := a.sessionUser(w, r, "You need to sign in to use this endpoint.")
	if !ok {
		return
	}
	a.Directory.EnsureUser(r.Context(), user.ID)
	a.writeProfile(w, r, user, a.Directory.Preferences(r.Context(), user.ID))
}

// PatchMe updates the display name and preferences of the current user.
func (a *App) PatchMe(w http.ResponseWriter, r *http.Request) {
	user, ok := a.sessionUser(w, r, "You need to sign in to use this endpoint.")
	if !ok {
		return
	}
	body, err := decodeObject(r)
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_payload", "Request body must be a JSON object.")
		return
	}
	ctx := r.Context()
	if raw, ok := body["name"]; ok {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			a.error(w, http.StatusBadRequest, "invalid_payload", "name must be a string.")
			return
		}
		if user, err = a.Accounts.Rename(ctx, user.ID, name); err != nil {
			a.internal(w, r, err, "rename user failed")
			return
		}
	}
	prefs := a.Directory.Preferences(ctx, user.ID)
	if raw, ok := body["preferences"]; ok {
		var update catalog.PreferencesUpdate
		if err := json.Unmarshal(raw, &update); err != nil {
			a.errorWithDetails(w, http.StatusBadRequest, "invalid_payload", "preferences is invalid.", err.Error())
			return
		}
		prefs = a.Directory.UpdatePreferences(ctx, user.ID, update)
	}
	a.writeProfile(w, r, user, prefs)
}

func (a *App) writeProfile(w http.ResponseWriter, r *http.Request, user domain.User, prefs domain.Preferences) {
	stores, err := a.Directory.UserStores(r.Context(), user.ID)
	if err != nil {
		a.internal(w, r, err, "list user stores failed")
		return
	}
	a.json(w, http.StatusOK, profileResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Preferences: prefs,
		Stores:      stores,
	})
}
